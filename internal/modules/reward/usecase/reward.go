package usecase

import (
	"context"

	"prayerlog/internal/modules/reward/domain"
	"prayerlog/internal/modules/reward/dto"
	rewardin "prayerlog/internal/modules/reward/port/in"
	"prayerlog/internal/modules/reward/service"
	"prayerlog/internal/platform/duration"
)

type Interactor struct {
	tracker  *service.Tracker
	progress *service.ProgressService
}

func NewInteractor(tracker *service.Tracker, progress *service.ProgressService) rewardin.Usecase {
	return &Interactor{tracker: tracker, progress: progress}
}

func (i *Interactor) Start(ctx context.Context) error {
	return i.tracker.Start(ctx)
}

func (i *Interactor) Status(_ context.Context) dto.StatusOutput {
	return i.toStatus(i.tracker.Status())
}

func (i *Interactor) Levels(_ context.Context) []dto.LevelOutput {
	table := i.progress.Table()
	points := i.tracker.Status().Snapshot.TotalPoints
	levels := table.Levels()
	out := make([]dto.LevelOutput, 0, len(levels))
	for _, l := range levels {
		out = append(out, dto.LevelOutput{
			Level:          l.Level,
			TotalPoints:    l.TotalPoints,
			TimeEquivalent: l.TimeEquivalent,
			Title:          l.Title,
			Unlocked:       points >= l.TotalPoints,
			Progress:       toProgress(table.Progress(points, l.Level)),
		})
	}
	return out
}

func (i *Interactor) Acknowledge(ctx context.Context) (dto.AckOutput, error) {
	level, ok, err := i.tracker.Acknowledge(ctx)
	if err != nil {
		return dto.AckOutput{}, err
	}
	if !ok {
		return dto.AckOutput{}, nil
	}
	return dto.AckOutput{Cleared: true, Level: level, Title: i.title(level)}, nil
}

func (i *Interactor) OnChange(handler dto.StatusHandler) {
	i.tracker.OnChange(func(status service.Status) {
		handler(i.toStatus(status))
	})
}

func (i *Interactor) Close() error {
	return i.tracker.Close()
}

func (i *Interactor) toStatus(status service.Status) dto.StatusOutput {
	if !status.SignedIn {
		return dto.StatusOutput{TotalDurationFormatted: duration.Format(0), UnlockedLevels: []int{}}
	}
	snap := status.Snapshot
	table := i.progress.Table()
	out := dto.StatusOutput{
		SignedIn:               true,
		UserID:                 status.UserID,
		TotalSeconds:           snap.TotalSeconds,
		TotalDurationFormatted: duration.Format(snap.TotalSeconds),
		TotalPoints:            snap.TotalPoints,
		CurrentLevel:           snap.CurrentLevel,
		CurrentTitle:           i.title(snap.CurrentLevel),
		UnlockedLevels:         append([]int{}, snap.UnlockedLevels...),
		HasPendingLevelUp:      status.Ack.HasPending(),
	}
	if next, ok := table.Next(snap.CurrentLevel); ok {
		out.NextLevel = next.Level
		out.NextTitle = next.Title
		out.NextProgress = toProgress(table.Progress(snap.TotalPoints, next.Level))
	}
	if out.HasPendingLevelUp {
		out.PendingLevel = status.Ack.PendingLevel
		out.PendingTitle = i.title(status.Ack.PendingLevel)
	}
	return out
}

func (i *Interactor) title(level int) string {
	l, ok := i.progress.Table().Lookup(level)
	if !ok {
		return ""
	}
	return l.Title
}

func toProgress(p domain.Progress) dto.ProgressOutput {
	return dto.ProgressOutput{Current: p.Current, Required: p.Required, Percentage: p.Percentage}
}
