package in

import (
	"context"

	"prayerlog/internal/modules/capture/dto"
)

type Usecase interface {
	Start(ctx context.Context) (dto.StateOutput, error)
	Stop(ctx context.Context) (dto.StateOutput, error)
	Restart(ctx context.Context) (dto.StateOutput, error)
	OpenManual(ctx context.Context) (dto.StateOutput, error)
	SetManual(ctx context.Context, input dto.ManualInput) (dto.StateOutput, error)
	CancelManual(ctx context.Context) (dto.StateOutput, error)
	Save(ctx context.Context) (dto.SaveOutput, error)
	State(ctx context.Context) dto.StateOutput
	Close() error
}
