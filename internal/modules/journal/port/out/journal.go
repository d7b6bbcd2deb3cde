package out

import (
	"context"

	"prayerlog/internal/modules/journal/domain"
)

type NoteStore interface {
	Save(ctx context.Context, note domain.Note) (string, error)
	FindByID(ctx context.Context, userID, id string) (domain.Note, error)
	List(ctx context.Context, userID string) ([]domain.Note, error)
	Delete(ctx context.Context, userID, id string) error
}
