package in

import (
	"context"

	"prayerlog/internal/modules/session/dto"
)

type Usecase interface {
	Create(ctx context.Context, input dto.CreateInput) (dto.RecordOutput, error)
	List(ctx context.Context, userID string) ([]dto.RecordOutput, error)
	ListMonth(ctx context.Context, input dto.ListMonthInput) (dto.MonthOutput, error)
	SetPrayerType(ctx context.Context, input dto.SetPrayerTypeInput) (dto.RecordOutput, error)
	Delete(ctx context.Context, input dto.DeleteInput) error
	Subscribe(ctx context.Context, userID string, handler dto.RecordSetHandler) (func(), error)
	Reindex(ctx context.Context) error
}
