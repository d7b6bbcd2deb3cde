package in

import (
	"context"

	"prayerlog/internal/modules/capture/dto"
	capturein "prayerlog/internal/modules/capture/port/in"
)

type TUIHandler struct {
	usecase capturein.Usecase
}

func NewTUIHandler(usecase capturein.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

// Toggle starts a stopped or idle stopwatch and stops a running one.
func (h TUIHandler) Toggle(ctx context.Context) (dto.StateOutput, error) {
	if h.usecase.State(ctx).Running {
		return h.usecase.Stop(ctx)
	}
	return h.usecase.Start(ctx)
}

func (h TUIHandler) Restart(ctx context.Context) (dto.StateOutput, error) {
	return h.usecase.Restart(ctx)
}

func (h TUIHandler) OpenManual(ctx context.Context) (dto.StateOutput, error) {
	return h.usecase.OpenManual(ctx)
}

func (h TUIHandler) SetManual(ctx context.Context, input dto.ManualInput) (dto.StateOutput, error) {
	return h.usecase.SetManual(ctx, input)
}

func (h TUIHandler) CancelManual(ctx context.Context) (dto.StateOutput, error) {
	return h.usecase.CancelManual(ctx)
}

func (h TUIHandler) Save(ctx context.Context) (dto.SaveOutput, error) {
	return h.usecase.Save(ctx)
}

func (h TUIHandler) State(ctx context.Context) dto.StateOutput {
	return h.usecase.State(ctx)
}

type CLIHandler struct {
	usecase capturein.Usecase
}

func NewCLIHandler(usecase capturein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// AddManual records a backfilled session through a manual draft. The draft is
// cancelled when validation or the save fails.
func (h CLIHandler) AddManual(ctx context.Context, input dto.ManualInput) (dto.SaveOutput, error) {
	if _, err := h.usecase.OpenManual(ctx); err != nil {
		return dto.SaveOutput{}, err
	}
	if _, err := h.usecase.SetManual(ctx, input); err != nil {
		_, _ = h.usecase.CancelManual(ctx)
		return dto.SaveOutput{}, err
	}
	out, err := h.usecase.Save(ctx)
	if err != nil {
		_, _ = h.usecase.CancelManual(ctx)
		return dto.SaveOutput{}, err
	}
	return out, nil
}
