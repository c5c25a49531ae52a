// Package notes provides persistence for user-owned notes. Every query is
// scoped to the owning user; a foreign or unknown id surfaces as
// common.ErrNotFound rather than leaking another user's data.
package notes

import (
	"context"

	"github.com/dmitrijs2005/keepnotes/internal/server/models"
)

type Repository interface {
	SelectByUser(ctx context.Context, userID string) ([]*models.Note, error)
	Create(ctx context.Context, note *models.Note) (*models.Note, error)
	Update(ctx context.Context, note *models.Note) (*models.Note, error)
	Delete(ctx context.Context, id string, userID string) error
}
