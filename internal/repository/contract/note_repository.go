package contract

import (
	"context"

	"notes-app-be/internal/entity"

	"github.com/google/uuid"
)

type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.Note, error)
	// FindAllByUserId returns the owner's notes, newest-created first.
	FindAllByUserId(ctx context.Context, userId uuid.UUID) ([]*entity.Note, error)
}
