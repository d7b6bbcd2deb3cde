package in

import (
	"context"

	"prayerlog/internal/modules/journal/dto"
)

type Usecase interface {
	Create(ctx context.Context, input dto.CreateInput) (dto.NoteOutput, error)
	Update(ctx context.Context, input dto.UpdateInput) (dto.UpdateOutput, error)
	Get(ctx context.Context, userID, id string) (dto.NoteOutput, error)
	List(ctx context.Context, userID string) ([]dto.NoteOutput, error)
	Search(ctx context.Context, userID, query string) ([]dto.NoteOutput, error)
	Delete(ctx context.Context, userID, id string) error
}
