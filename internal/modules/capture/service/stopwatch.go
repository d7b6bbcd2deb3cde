package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"prayerlog/internal/modules/capture/domain"
	captureout "prayerlog/internal/modules/capture/port/out"
	"prayerlog/internal/platform/clock"
	apperrors "prayerlog/internal/platform/errors"
	"prayerlog/internal/platform/logging"
)

const TickInterval = time.Second

type Options struct {
	AllowFutureDates bool
	TickInterval     time.Duration
}

// Stopwatch drives one Capture. It owns at most one ticker goroutine at a
// time and lets only one save run at once.
type Stopwatch struct {
	mu      sync.Mutex
	capture domain.Capture
	saving  bool

	// gen invalidates ticks from a goroutine that was already told to stop.
	gen  uint64
	stop chan struct{}
	done chan struct{}

	clock     clock.Clock
	newTicker clock.TickerFactory
	sink      captureout.RecordSink
	opts      Options
	logger    *slog.Logger
}

func NewStopwatch(clk clock.Clock, newTicker clock.TickerFactory, sink captureout.RecordSink, opts Options, logger *slog.Logger) *Stopwatch {
	if newTicker == nil {
		newTicker = clock.NewSystemTicker
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = TickInterval
	}
	return &Stopwatch{
		clock:     clk,
		newTicker: newTicker,
		sink:      sink,
		opts:      opts,
		logger:    logging.OrDiscard(logger),
	}
}

// Snapshot is a copy of the capture state.
type Snapshot struct {
	Mode    domain.Mode
	Elapsed int64
	Draft   domain.ManualDraft
	Saving  bool
}

func (s *Stopwatch) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Stopwatch) snapshotLocked() Snapshot {
	return Snapshot{
		Mode:    s.capture.Mode(),
		Elapsed: s.capture.Elapsed(),
		Draft:   s.capture.Draft(),
		Saving:  s.saving,
	}
}

func (s *Stopwatch) Start() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saving {
		return s.snapshotLocked(), apperrors.ErrSaveInFlight
	}
	if err := s.capture.Start(); err != nil {
		return s.snapshotLocked(), err
	}
	s.startTickingLocked()
	return s.snapshotLocked(), nil
}

func (s *Stopwatch) Stop() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.capture.Stop(); err != nil {
		return s.snapshotLocked(), err
	}
	s.stopTickingLocked()
	return s.snapshotLocked(), nil
}

func (s *Stopwatch) Restart() (Snapshot, error) {
	return s.mutate(func(c *domain.Capture) error {
		if err := c.Restart(); err != nil {
			return err
		}
		s.stopTickingLocked()
		return nil
	})
}

func (s *Stopwatch) OpenManual() (Snapshot, error) {
	today := s.today()
	return s.mutate(func(c *domain.Capture) error { return c.OpenManual(today) })
}

// SetManual replaces the draft's date and duration. An empty date keeps the
// current one.
func (s *Stopwatch) SetManual(date string, hours, minutes, seconds int) (Snapshot, error) {
	today := s.today()
	return s.mutate(func(c *domain.Capture) error {
		if date != "" {
			if err := s.checkDate(date, today); err != nil {
				return err
			}
			if err := c.SetManualDate(date); err != nil {
				return err
			}
		}
		return c.SetManualDuration(hours, minutes, seconds)
	})
}

func (s *Stopwatch) CancelManual() (Snapshot, error) {
	return s.mutate(func(c *domain.Capture) error { return c.CancelManual() })
}

// Save persists the pending capture for userID. A save already in flight
// makes concurrent calls fail with ErrSaveInFlight. On failure the capture
// keeps its pre-save state.
func (s *Stopwatch) Save(ctx context.Context, userID string) (domain.SavedRecord, domain.Pending, error) {
	now := s.clock.Now()
	today := now.Format(domain.DateLayout)

	s.mu.Lock()
	if s.saving {
		s.mu.Unlock()
		return domain.SavedRecord{}, domain.Pending{}, apperrors.ErrSaveInFlight
	}
	if userID == "" {
		s.mu.Unlock()
		return domain.SavedRecord{}, domain.Pending{}, apperrors.ErrNotSignedIn
	}
	pending, err := s.capture.Pending(today)
	if err == nil && pending.Manual {
		err = s.checkDate(pending.Date, today)
	}
	if err != nil {
		s.mu.Unlock()
		return domain.SavedRecord{}, domain.Pending{}, err
	}
	s.saving = true
	s.mu.Unlock()

	saved, err := s.sink.Create(ctx, userID, pending, now)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.saving = false
	if err != nil {
		s.logger.Error("save capture", "user_id", userID, "date", pending.Date, "duration_seconds", pending.DurationSeconds, "error", err)
		return domain.SavedRecord{}, pending, err
	}
	s.capture.Complete()
	s.logger.Info("capture saved", "user_id", userID, "record_id", saved.ID, "date", saved.Date, "duration_seconds", saved.DurationSeconds)
	return saved, pending, nil
}

// Close stops the ticker goroutine, if any, and waits for it to exit.
func (s *Stopwatch) Close() error {
	s.mu.Lock()
	done := s.done
	s.stopTickingLocked()
	s.mu.Unlock()
	if done != nil {
		<-done
	}
	return nil
}

func (s *Stopwatch) mutate(fn func(c *domain.Capture) error) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saving {
		return s.snapshotLocked(), apperrors.ErrSaveInFlight
	}
	if err := fn(&s.capture); err != nil {
		return s.snapshotLocked(), err
	}
	return s.snapshotLocked(), nil
}

func (s *Stopwatch) startTickingLocked() {
	s.stopTickingLocked()
	s.gen++
	gen := s.gen
	ticker := s.newTicker(s.opts.TickInterval)
	stop := make(chan struct{})
	done := make(chan struct{})
	s.stop, s.done = stop, done

	go func() {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C():
				s.mu.Lock()
				if s.gen == gen {
					s.capture.Tick()
				}
				s.mu.Unlock()
			}
		}
	}()
}

func (s *Stopwatch) stopTickingLocked() {
	if s.stop == nil {
		return
	}
	close(s.stop)
	s.gen++
	s.stop, s.done = nil, nil
}

func (s *Stopwatch) today() string {
	return s.clock.Now().Format(domain.DateLayout)
}

func (s *Stopwatch) checkDate(date, today string) error {
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return fmt.Errorf("%w: date %q must be YYYY-MM-DD", apperrors.ErrValidation, date)
	}
	if s.opts.AllowFutureDates || date <= today {
		return nil
	}
	return fmt.Errorf("%w: date %s is in the future", apperrors.ErrValidation, date)
}
