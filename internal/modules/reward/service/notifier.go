package service

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"prayerlog/internal/modules/reward/domain"
	rewardout "prayerlog/internal/modules/reward/port/out"
	"prayerlog/internal/platform/logging"
)

const (
	lastProcessedPrefix = "lastProcessedLevel:"
	pendingPrefix       = "pendingLevelUp:"
	clearedPrefix       = "clearedLevel:"
)

// Notifier turns level changes into one-shot level-up notifications and keeps
// the acknowledgement state durable. Storage failures are logged and never
// returned: the worst case is a notification shown again after a restart.
type Notifier struct {
	store   rewardout.KeyValueStore
	timeout time.Duration
	logger  *slog.Logger

	mu     sync.Mutex
	states map[string]domain.AckState
}

func NewNotifier(store rewardout.KeyValueStore, timeout time.Duration, logger *slog.Logger) *Notifier {
	return &Notifier{
		store:   store,
		timeout: timeout,
		logger:  logging.OrDiscard(logger),
		states:  map[string]domain.AckState{},
	}
}

// Observe records currentLevel for userID and reports whether it raised a new
// notification. lastProcessedLevel is written before the pending level so a
// crash in between can never raise the same level twice.
func (n *Notifier) Observe(ctx context.Context, userID string, currentLevel int) (domain.AckState, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	state := n.loadLocked(ctx, userID)
	next, raised := domain.Detect(state, currentLevel)
	if !raised {
		return state, false
	}
	n.write(ctx, lastProcessedPrefix+userID, next.LastProcessedLevel)
	n.write(ctx, pendingPrefix+userID, next.PendingLevel)
	n.states[userID] = next
	n.logger.Info("level up detected", "user_id", userID, "level", next.PendingLevel)
	return next, true
}

func (n *Notifier) State(ctx context.Context, userID string) domain.AckState {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.loadLocked(ctx, userID)
}

// Acknowledge clears the pending notification and returns the cleared level.
func (n *Notifier) Acknowledge(ctx context.Context, userID string) (int, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	state := n.loadLocked(ctx, userID)
	next, ok := state.Acknowledge()
	if !ok {
		return 0, false
	}
	n.write(ctx, clearedPrefix+userID, next.ClearedLevel)
	n.remove(ctx, pendingPrefix+userID)
	n.states[userID] = next
	n.logger.Info("level up acknowledged", "user_id", userID, "level", state.PendingLevel)
	return state.PendingLevel, true
}

func (n *Notifier) loadLocked(ctx context.Context, userID string) domain.AckState {
	if state, ok := n.states[userID]; ok {
		return state
	}
	state := domain.AckState{
		LastProcessedLevel: n.read(ctx, lastProcessedPrefix+userID),
		PendingLevel:       n.read(ctx, pendingPrefix+userID),
		ClearedLevel:       n.read(ctx, clearedPrefix+userID),
	}.Sanitize()
	n.states[userID] = state
	return state
}

func (n *Notifier) read(ctx context.Context, key string) int {
	callCtx, cancel := n.withTimeout(ctx)
	defer cancel()
	raw, ok, err := n.store.Get(callCtx, key)
	if err != nil {
		n.logger.Warn("read level-up state", "key", key, "error", err)
		return 0
	}
	if !ok {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		n.logger.Warn("ignore malformed level-up state", "key", key, "value", raw)
		return 0
	}
	return v
}

func (n *Notifier) write(ctx context.Context, key string, value int) {
	callCtx, cancel := n.withTimeout(ctx)
	defer cancel()
	if err := n.store.Set(callCtx, key, strconv.Itoa(value)); err != nil {
		n.logger.Warn("write level-up state", "key", key, "error", err)
	}
}

func (n *Notifier) remove(ctx context.Context, key string) {
	callCtx, cancel := n.withTimeout(ctx)
	defer cancel()
	if err := n.store.Remove(callCtx, key); err != nil {
		n.logger.Warn("remove level-up state", "key", key, "error", err)
	}
}

func (n *Notifier) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if n.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, n.timeout)
}
