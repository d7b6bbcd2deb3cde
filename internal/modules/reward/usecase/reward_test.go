package usecase_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	captureout "prayerlog/internal/modules/capture/adapter/out"
	captureservice "prayerlog/internal/modules/capture/service"
	captureusecase "prayerlog/internal/modules/capture/usecase"
	rewardout "prayerlog/internal/modules/reward/adapter/out"
	"prayerlog/internal/modules/reward/domain"
	"prayerlog/internal/modules/reward/dto"
	"prayerlog/internal/modules/reward/service"
	"prayerlog/internal/modules/reward/usecase"
	sessionout "prayerlog/internal/modules/session/adapter/out"
	sessionservice "prayerlog/internal/modules/session/service"
	sessionusecase "prayerlog/internal/modules/session/usecase"
	"prayerlog/internal/platform/clock"
	"prayerlog/internal/platform/id"
	"prayerlog/internal/platform/identity"
	"prayerlog/internal/platform/logging"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type manualTicker struct{ ch chan time.Time }

func (m manualTicker) C() <-chan time.Time { return m.ch }
func (m manualTicker) Stop()               {}

func TestStopwatchSessionRaisesFirstLevel(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	vault := t.TempDir()
	dbPath := filepath.Join(vault, ".prayerlog", "prayerlog.db")
	user := identity.Static("u1")
	now := time.Date(2026, 10, 16, 6, 0, 0, 0, time.Local)

	index, err := sessionout.NewSQLiteRecordIndex(dbPath)
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	t.Cleanup(func() { _ = index.Close() })
	sessions := sessionusecase.NewInteractor(sessionservice.NewRecordService(id.UUIDv7{}, sessionout.NewVaultRecordStore(vault), index, time.Second, logging.Discard()))

	kv, err := rewardout.NewSQLiteKeyValueStore(dbPath)
	if err != nil {
		t.Fatalf("kv: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })
	progress := service.NewProgressService(domain.DefaultTable(), domain.DefaultSecondsPerPoint)
	tracker := service.NewTracker(user, rewardout.NewSessionFeed(sessions), progress, service.NewNotifier(kv, time.Second, nil), nil)
	rewards := usecase.NewInteractor(tracker, progress)

	var mu sync.Mutex
	var notifications []int
	rewards.OnChange(func(s dto.StatusOutput) {
		mu.Lock()
		defer mu.Unlock()
		if s.HasPendingLevelUp && (len(notifications) == 0 || notifications[len(notifications)-1] != s.PendingLevel) {
			notifications = append(notifications, s.PendingLevel)
		}
	})
	if err := rewards.Start(ctx); err != nil {
		t.Fatalf("start rewards: %v", err)
	}
	defer rewards.Close()
	if status := rewards.Status(ctx); status.CurrentLevel != 0 || status.HasPendingLevelUp {
		t.Fatalf("fresh user should start at level 0, got %+v", status)
	}

	ticker := manualTicker{ch: make(chan time.Time)}
	stopwatch := captureservice.NewStopwatch(fixedClock{now: now}, func(time.Duration) clock.Ticker { return ticker }, captureout.NewSessionSink(sessions), captureservice.Options{}, nil)
	capture := captureusecase.NewInteractor(stopwatch, user)
	defer capture.Close()

	if _, err := capture.Start(ctx); err != nil {
		t.Fatalf("start capture: %v", err)
	}
	for i := 0; i < 1900; i++ {
		ticker.ch <- now
	}
	deadline := time.Now().Add(2 * time.Second)
	for capture.State(ctx).ElapsedSeconds != 1900 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if _, err := capture.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}
	saved, err := capture.Save(ctx)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.DurationSeconds != 1900 || saved.DurationFormatted != "0:31:40" || saved.Date != "2026-10-16" {
		t.Fatalf("unexpected saved record %+v", saved)
	}

	status := rewards.Status(ctx)
	if status.TotalPoints != 1 || status.CurrentLevel != 1 || status.CurrentTitle != "The First Step" {
		t.Fatalf("unexpected status %+v", status)
	}
	if !status.HasPendingLevelUp || status.PendingLevel != 1 {
		t.Fatalf("expected level 1 notification, got %+v", status)
	}
	if status.NextLevel != 2 || status.NextProgress.Required != 3 {
		t.Fatalf("unexpected next level %+v", status)
	}
	mu.Lock()
	got := append([]int(nil), notifications...)
	mu.Unlock()
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("expected exactly one notification for level 1, got %v", got)
	}

	ack, err := rewards.Acknowledge(ctx)
	if err != nil || !ack.Cleared || ack.Level != 1 || ack.Title != "The First Step" {
		t.Fatalf("unexpected ack %+v err=%v", ack, err)
	}
	levels := rewards.Levels(ctx)
	if len(levels) != 7 || !levels[0].Unlocked || levels[1].Unlocked {
		t.Fatalf("unexpected level list %+v", levels)
	}
}
