package service

import (
	"context"
	"log/slog"
	"sync"

	"prayerlog/internal/modules/reward/domain"
	rewardout "prayerlog/internal/modules/reward/port/out"
	apperrors "prayerlog/internal/platform/errors"
	"prayerlog/internal/platform/identity"
	"prayerlog/internal/platform/logging"
)

// Status is the reward state of the signed-in user.
type Status struct {
	SignedIn bool
	UserID   string
	Snapshot domain.Snapshot
	Ack      domain.AckState
}

type StatusListener func(Status)

// Tracker recomputes the reward state from scratch on every record-set push.
type Tracker struct {
	identity identity.Provider
	feed     rewardout.RecordFeed
	progress *ProgressService
	notifier *Notifier
	logger   *slog.Logger

	mu          sync.Mutex
	status      Status
	unsubscribe func()
	listeners   []StatusListener
}

func NewTracker(identity identity.Provider, feed rewardout.RecordFeed, progress *ProgressService, notifier *Notifier, logger *slog.Logger) *Tracker {
	return &Tracker{
		identity: identity,
		feed:     feed,
		progress: progress,
		notifier: notifier,
		logger:   logging.OrDiscard(logger),
	}
}

// Start subscribes to the signed-in user's records. Without a user it leaves
// the zero status in place and subscribes to nothing.
func (t *Tracker) Start(ctx context.Context) error {
	userID, ok := t.identity.CurrentUserID(ctx)
	if !ok {
		t.mu.Lock()
		t.status = Status{}
		t.mu.Unlock()
		return nil
	}

	t.mu.Lock()
	if t.unsubscribe != nil {
		t.mu.Unlock()
		return nil
	}
	t.status = Status{SignedIn: true, UserID: userID}
	t.mu.Unlock()
	t.setAck(t.notifier.State(ctx, userID))

	applyCtx := context.WithoutCancel(ctx)
	unsubscribe, err := t.feed.Subscribe(ctx, userID, func(durations []int64) {
		t.Apply(applyCtx, userID, durations)
	})
	if err != nil {
		return err
	}
	t.mu.Lock()
	t.unsubscribe = unsubscribe
	t.mu.Unlock()
	t.logger.Debug("reward tracker started", "user_id", userID)
	return nil
}

// Apply recomputes from a complete duration set. It is safe to call with the
// same set any number of times.
func (t *Tracker) Apply(ctx context.Context, userID string, durations []int64) Status {
	snapshot := t.progress.Compute(durations)
	ack, _ := t.notifier.Observe(ctx, userID, snapshot.CurrentLevel)

	t.mu.Lock()
	t.status = Status{SignedIn: true, UserID: userID, Snapshot: snapshot, Ack: ack}
	status := t.status
	listeners := append([]StatusListener(nil), t.listeners...)
	t.mu.Unlock()

	for _, listener := range listeners {
		listener(status)
	}
	return status
}

func (t *Tracker) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

func (t *Tracker) HasPendingLevelUp() bool {
	return t.Status().Ack.HasPending()
}

func (t *Tracker) PendingLevel() (int, bool) {
	ack := t.Status().Ack
	return ack.PendingLevel, ack.HasPending()
}

// Acknowledge clears the pending level-up, if any, and returns its level.
func (t *Tracker) Acknowledge(ctx context.Context) (int, bool, error) {
	status := t.Status()
	if !status.SignedIn {
		return 0, false, apperrors.ErrNotSignedIn
	}
	level, ok := t.notifier.Acknowledge(ctx, status.UserID)
	if ok {
		t.setAck(t.notifier.State(ctx, status.UserID))
	}
	return level, ok, nil
}

// OnChange registers listener for every later status change.
func (t *Tracker) OnChange(listener StatusListener) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, listener)
}

func (t *Tracker) Close() error {
	t.mu.Lock()
	unsubscribe := t.unsubscribe
	t.unsubscribe = nil
	t.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}
	return nil
}

func (t *Tracker) setAck(ack domain.AckState) {
	t.mu.Lock()
	t.status.Ack = ack
	status := t.status
	listeners := append([]StatusListener(nil), t.listeners...)
	t.mu.Unlock()
	for _, listener := range listeners {
		listener(status)
	}
}
