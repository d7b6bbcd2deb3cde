package out

import (
	"context"

	"prayerlog/internal/modules/session/domain"
)

type RecordStore interface {
	Save(ctx context.Context, record domain.Record) (string, error)
	FindByID(ctx context.Context, userID, id string) (domain.Record, error)
	List(ctx context.Context, userID string) ([]domain.Record, error)
	ListAll(ctx context.Context) ([]domain.Record, error)
	Delete(ctx context.Context, userID, id string) error
}

type RecordIndexProjector interface {
	Reset(ctx context.Context) error
	UpsertRecord(ctx context.Context, record domain.Record) error
	RemoveRecord(ctx context.Context, userID, id string) error
	ListMonth(ctx context.Context, userID string, year, month int) ([]domain.Record, error)
}
