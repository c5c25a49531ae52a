package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/keepnotes/internal/client/models"
)

func (a *App) requireLogin() error {
	if !a.isLoggedIn() {
		return fmt.Errorf("not logged in")
	}
	return nil
}

func (a *App) findNote(id string) *models.Note {
	notes := a.notes.Notes()
	for i := range notes {
		if notes[i].ID == id {
			return &notes[i]
		}
	}
	return nil
}

// List refreshes and prints the note list, most recently modified first.
func (a *App) List(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	if err := a.notes.Refresh(ctx); err != nil {
		return err
	}

	notes := a.notes.Notes()
	if len(notes) == 0 {
		printlnFn("No notes yet.")
		return nil
	}

	for _, note := range notes {
		printlnFn(fmt.Sprintf("%s  %s  %s", note.ID, note.LastUpdate, note.Title))
	}
	return nil
}

// Add prompts for a title and a multi-line content and creates a note.
// On failure the entered data stays on screen so it can be retried.
func (a *App) Add(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	title, err := getSimpleText(a.reader, "Enter title", os.Stdout)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "Enter content", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.notes.Create(ctx, title, content); err != nil {
		return err
	}

	printlnFn("Note created.")
	return nil
}

// Show prints a single note.
func (a *App) Show(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	id, err := getSimpleText(a.reader, "Enter note id", os.Stdout)
	if err != nil {
		return err
	}

	note := a.findNote(id)
	if note == nil {
		return fmt.Errorf("no note with id %s", id)
	}

	printlnFn(note.Title)
	printlnFn(note.Content)
	printlnFn(fmt.Sprintf("created %s, updated %s", note.CreatedOn, note.LastUpdate))
	return nil
}

// Edit prompts for replacement title and content and updates the note.
func (a *App) Edit(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	id, err := getSimpleText(a.reader, "Enter note id", os.Stdout)
	if err != nil {
		return err
	}
	if a.findNote(id) == nil {
		return fmt.Errorf("no note with id %s", id)
	}

	title, err := getSimpleText(a.reader, "Enter title", os.Stdout)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "Enter content", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.notes.Update(ctx, id, title, content); err != nil {
		return err
	}

	printlnFn("Note updated.")
	return nil
}

// Delete walks the two-stage confirmation gate: the first answer stages the
// deletion, the second fires it. Declining either question leaves the note
// alone and sends nothing to the backend.
func (a *App) Delete(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	id, err := getSimpleText(a.reader, "Enter note id to delete", os.Stdout)
	if err != nil {
		return err
	}

	note := a.findNote(id)
	if note == nil {
		return fmt.Errorf("no note with id %s", id)
	}

	ok, err := getConfirmation(a.reader, fmt.Sprintf("Delete %q?", note.Title), os.Stdout)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	a.notes.StageDelete(id)

	ok, err = getConfirmation(a.reader, "This cannot be undone. Really delete?", os.Stdout)
	if err != nil {
		return err
	}
	if !ok {
		a.notes.CancelDelete()
		return nil
	}

	if err := a.notes.ConfirmDelete(ctx); err != nil {
		return err
	}

	printlnFn("Note deleted.")
	return nil
}
