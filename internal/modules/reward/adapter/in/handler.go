package in

import (
	"context"

	"prayerlog/internal/modules/reward/dto"
	rewardin "prayerlog/internal/modules/reward/port/in"
)

type Handler struct {
	usecase rewardin.Usecase
}

func NewHandler(usecase rewardin.Usecase) Handler {
	return Handler{usecase: usecase}
}

func (h Handler) Status(ctx context.Context) dto.StatusOutput {
	return h.usecase.Status(ctx)
}

func (h Handler) Levels(ctx context.Context) []dto.LevelOutput {
	return h.usecase.Levels(ctx)
}

func (h Handler) Acknowledge(ctx context.Context) (dto.AckOutput, error) {
	return h.usecase.Acknowledge(ctx)
}

func (h Handler) OnChange(handler dto.StatusHandler) {
	h.usecase.OnChange(handler)
}
