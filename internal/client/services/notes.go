package services

import (
	"context"
	"sort"

	"github.com/dmitrijs2005/keepnotes/internal/client/api"
	"github.com/dmitrijs2005/keepnotes/internal/client/models"
	"github.com/dmitrijs2005/keepnotes/internal/common"
)

// UserProvider reports the currently authenticated user; the notes
// controller uses it to gate all fetches. AuthService satisfies it.
type UserProvider interface {
	CurrentUser() *models.User
}

// NotesService maintains the client-side note list for the authenticated
// user. The list is only replaced after a confirmed successful re-fetch, so
// failures always leave a consistent previous state.
//
// Deletion is a two-stage gate: StageDelete marks a note, ConfirmDelete
// fires the request. ConfirmDelete without a staged note issues no request
// at all.
type NotesService interface {
	Refresh(ctx context.Context) error
	Notes() []models.Note
	Create(ctx context.Context, title, content string) error
	Update(ctx context.Context, id, title, content string) error
	StageDelete(id string)
	StagedDelete() string
	CancelDelete()
	ConfirmDelete(ctx context.Context) error
}

type notesService struct {
	client api.Client
	auth   UserProvider

	notes  []models.Note
	staged string
}

// NewNotesService constructs a NotesService gated on the given auth state.
func NewNotesService(client api.Client, auth UserProvider) NotesService {
	return &notesService{client: client, auth: auth}
}

func (s *notesService) Notes() []models.Note {
	return s.notes
}

// Refresh fetches all notes for the current user and publishes them ordered
// by last_update descending. Notes with identical timestamps keep the
// backend-provided relative order. A no-op when no user is authenticated;
// on failure the previous list is left untouched.
func (s *notesService) Refresh(ctx context.Context) error {
	if s.auth.CurrentUser() == nil {
		return nil
	}

	notes, err := s.client.ListNotes(ctx)
	if err != nil {
		return err
	}

	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].LastUpdate.Time.After(notes[j].LastUpdate.Time)
	})

	s.notes = notes
	return nil
}

// Create sends a creation request and, on success, re-fetches the full list.
func (s *notesService) Create(ctx context.Context, title, content string) error {
	if _, err := s.client.CreateNote(ctx, title, content); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// Update rewrites an existing note and, on success, re-fetches the full list.
func (s *notesService) Update(ctx context.Context, id, title, content string) error {
	if _, err := s.client.UpdateNote(ctx, id, title, content); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// StageDelete arms the confirmation gate for the given note.
func (s *notesService) StageDelete(id string) {
	s.staged = id
}

func (s *notesService) StagedDelete() string {
	return s.staged
}

func (s *notesService) CancelDelete() {
	s.staged = ""
}

// ConfirmDelete issues the staged deletion. Without a staged note it fails
// with common.ErrDeleteNotStaged and no request is made. On backend failure
// the gate stays armed so the user can retry.
func (s *notesService) ConfirmDelete(ctx context.Context) error {
	if s.staged == "" {
		return common.ErrDeleteNotStaged
	}

	if err := s.client.DeleteNote(ctx, s.staged); err != nil {
		return err
	}

	s.staged = ""
	return s.Refresh(ctx)
}
