package in

import (
	"context"

	"prayerlog/internal/modules/reward/dto"
)

type Usecase interface {
	Start(ctx context.Context) error
	Status(ctx context.Context) dto.StatusOutput
	Levels(ctx context.Context) []dto.LevelOutput
	Acknowledge(ctx context.Context) (dto.AckOutput, error)
	OnChange(handler dto.StatusHandler)
	Close() error
}
