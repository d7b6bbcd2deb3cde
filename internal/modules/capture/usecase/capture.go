package usecase

import (
	"context"

	"prayerlog/internal/modules/capture/domain"
	"prayerlog/internal/modules/capture/dto"
	capturein "prayerlog/internal/modules/capture/port/in"
	"prayerlog/internal/modules/capture/service"
	"prayerlog/internal/platform/duration"
	"prayerlog/internal/platform/identity"
)

type Interactor struct {
	stopwatch *service.Stopwatch
	identity  identity.Provider
}

func NewInteractor(stopwatch *service.Stopwatch, identity identity.Provider) capturein.Usecase {
	return &Interactor{stopwatch: stopwatch, identity: identity}
}

func (i *Interactor) Start(_ context.Context) (dto.StateOutput, error) {
	return toState(i.stopwatch.Start())
}

func (i *Interactor) Stop(_ context.Context) (dto.StateOutput, error) {
	return toState(i.stopwatch.Stop())
}

func (i *Interactor) Restart(_ context.Context) (dto.StateOutput, error) {
	return toState(i.stopwatch.Restart())
}

func (i *Interactor) OpenManual(_ context.Context) (dto.StateOutput, error) {
	return toState(i.stopwatch.OpenManual())
}

func (i *Interactor) SetManual(_ context.Context, input dto.ManualInput) (dto.StateOutput, error) {
	return toState(i.stopwatch.SetManual(input.Date, input.Hours, input.Minutes, input.Seconds))
}

func (i *Interactor) CancelManual(_ context.Context) (dto.StateOutput, error) {
	return toState(i.stopwatch.CancelManual())
}

func (i *Interactor) Save(ctx context.Context) (dto.SaveOutput, error) {
	userID, _ := i.identity.CurrentUserID(ctx)
	saved, pending, err := i.stopwatch.Save(ctx, userID)
	if err != nil {
		return dto.SaveOutput{}, err
	}
	return dto.SaveOutput{
		RecordID:          saved.ID,
		Date:              saved.Date,
		DurationSeconds:   saved.DurationSeconds,
		DurationFormatted: saved.DurationFormatted,
		NotePath:          saved.NotePath,
		Manual:            pending.Manual,
	}, nil
}

func (i *Interactor) State(_ context.Context) dto.StateOutput {
	return snapshotToState(i.stopwatch.Snapshot())
}

func (i *Interactor) Close() error {
	return i.stopwatch.Close()
}

func toState(snapshot service.Snapshot, err error) (dto.StateOutput, error) {
	return snapshotToState(snapshot), err
}

func snapshotToState(snapshot service.Snapshot) dto.StateOutput {
	return dto.StateOutput{
		Mode:             snapshot.Mode.String(),
		Running:          snapshot.Mode == domain.ModeRunning,
		Saving:           snapshot.Saving,
		ElapsedSeconds:   snapshot.Elapsed,
		ElapsedFormatted: duration.Format(snapshot.Elapsed),
		Manual: dto.ManualInput{
			Date:    snapshot.Draft.Date,
			Hours:   snapshot.Draft.Hours,
			Minutes: snapshot.Draft.Minutes,
			Seconds: snapshot.Draft.Seconds,
		},
	}
}
