package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/keepnotes/internal/server/models"
	"github.com/dmitrijs2005/keepnotes/internal/server/repositories/notes"
	"github.com/google/uuid"
)

// NoteService provides note CRUD scoped to the owning user. Ownership is
// enforced by the repository queries; a foreign id behaves exactly like a
// missing one.
type NoteService struct {
	notes notes.Repository
}

func NewNoteService(repo notes.Repository) *NoteService {
	return &NoteService{notes: repo}
}

func (s *NoteService) List(ctx context.Context, userID string) ([]*models.Note, error) {
	result, err := s.notes.SelectByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing notes: %w", err)
	}
	return result, nil
}

func (s *NoteService) Create(ctx context.Context, userID, title, content string) (*models.Note, error) {
	note := &models.Note{
		ID:      uuid.NewString(),
		UserID:  userID,
		Title:   title,
		Content: content,
	}

	created, err := s.notes.Create(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("error creating note: %w", err)
	}
	return created, nil
}

func (s *NoteService) Update(ctx context.Context, userID, id, title, content string) (*models.Note, error) {
	note := &models.Note{
		ID:      id,
		UserID:  userID,
		Title:   title,
		Content: content,
	}
	return s.notes.Update(ctx, note)
}

func (s *NoteService) Delete(ctx context.Context, userID, id string) error {
	return s.notes.Delete(ctx, id, userID)
}
