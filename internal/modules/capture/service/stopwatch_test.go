package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"prayerlog/internal/modules/capture/domain"
	"prayerlog/internal/platform/clock"
	apperrors "prayerlog/internal/platform/errors"
	"prayerlog/internal/platform/logging"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeTicker struct {
	ch      chan time.Time
	stopped atomic.Bool
}

func (f *fakeTicker) C() <-chan time.Time { return f.ch }
func (f *fakeTicker) Stop()               { f.stopped.Store(true) }

type tickerFactory struct {
	mu      sync.Mutex
	tickers []*fakeTicker
}

func (f *tickerFactory) New(time.Duration) clock.Ticker {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := &fakeTicker{ch: make(chan time.Time)}
	f.tickers = append(f.tickers, t)
	return t
}

func (f *tickerFactory) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tickers)
}

func (f *tickerFactory) last() *fakeTicker {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tickers[len(f.tickers)-1]
}

type fakeSink struct {
	mu      sync.Mutex
	calls   []domain.Pending
	err     error
	block   chan struct{}
	entered chan struct{}
}

func (s *fakeSink) Create(_ context.Context, userID string, pending domain.Pending, createdAt time.Time) (domain.SavedRecord, error) {
	if s.entered != nil {
		s.entered <- struct{}{}
	}
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, pending)
	if s.err != nil {
		return domain.SavedRecord{}, s.err
	}
	return domain.SavedRecord{ID: "rec-1", Date: pending.Date, DurationSeconds: pending.DurationSeconds}, nil
}

func (s *fakeSink) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

var now = time.Date(2026, 10, 16, 21, 15, 0, 0, time.Local)

func newStopwatch(sink *fakeSink, factory *tickerFactory, opts Options) *Stopwatch {
	return NewStopwatch(fixedClock{now: now}, factory.New, sink, opts, logging.Discard())
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}

func TestDoubleStartKeepsSingleTickSource(t *testing.T) {
	t.Parallel()
	factory := &tickerFactory{}
	sw := newStopwatch(&fakeSink{}, factory, Options{})
	defer sw.Close()

	if _, err := sw.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := sw.Start(); !errors.Is(err, apperrors.ErrCaptureRunning) {
		t.Fatalf("expected running error, got %v", err)
	}
	if factory.count() != 1 {
		t.Fatalf("expected one ticker, got %d", factory.count())
	}
	ticker := factory.last()
	for i := 0; i < 5; i++ {
		ticker.ch <- now
	}
	waitFor(t, func() bool { return sw.Snapshot().Elapsed == 5 })
	time.Sleep(20 * time.Millisecond)
	if got := sw.Snapshot().Elapsed; got != 5 {
		t.Fatalf("expected 5 elapsed seconds, got %d", got)
	}
}

func TestStopCancelsTicker(t *testing.T) {
	t.Parallel()
	factory := &tickerFactory{}
	sw := newStopwatch(&fakeSink{}, factory, Options{})
	_, _ = sw.Start()
	first := factory.last()
	first.ch <- now
	waitFor(t, func() bool { return sw.Snapshot().Elapsed == 1 })

	snap, err := sw.Stop()
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if snap.Mode != domain.ModeStopped || snap.Elapsed != 1 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	waitFor(t, first.stopped.Load)

	// resuming creates a fresh ticker and keeps the frozen value
	_, _ = sw.Start()
	if factory.count() != 2 {
		t.Fatalf("expected a new ticker on resume, got %d", factory.count())
	}
	factory.last().ch <- now
	waitFor(t, func() bool { return sw.Snapshot().Elapsed == 2 })
	if err := sw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	waitFor(t, factory.last().stopped.Load)
}

func TestSaveStopwatchRecord(t *testing.T) {
	t.Parallel()
	factory := &tickerFactory{}
	sink := &fakeSink{}
	sw := newStopwatch(sink, factory, Options{})
	_, _ = sw.Start()
	for i := 0; i < 3; i++ {
		factory.last().ch <- now
	}
	waitFor(t, func() bool { return sw.Snapshot().Elapsed == 3 })
	_, _ = sw.Stop()

	if _, _, err := sw.Save(context.Background(), ""); !errors.Is(err, apperrors.ErrNotSignedIn) {
		t.Fatalf("expected not signed in, got %v", err)
	}
	saved, pending, err := sw.Save(context.Background(), "u1")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.ID != "rec-1" || pending.Date != "2026-10-16" || pending.DurationSeconds != 3 {
		t.Fatalf("unexpected save %+v %+v", saved, pending)
	}
	if snap := sw.Snapshot(); snap.Mode != domain.ModeIdle || snap.Elapsed != 0 {
		t.Fatalf("expected reset after save, got %+v", snap)
	}
}

func TestSaveFailureKeepsPreSaveState(t *testing.T) {
	t.Parallel()
	sink := &fakeSink{err: errors.New("backend unavailable")}
	sw := newStopwatch(sink, &tickerFactory{}, Options{})
	_, _ = sw.OpenManual()
	if _, err := sw.SetManual("2026-10-10", 0, 45, 0); err != nil {
		t.Fatalf("set manual: %v", err)
	}
	if _, _, err := sw.Save(context.Background(), "u1"); err == nil {
		t.Fatalf("expected save failure")
	}
	snap := sw.Snapshot()
	if snap.Mode != domain.ModeManualDraft || snap.Draft.Minutes != 45 || snap.Draft.Date != "2026-10-10" || snap.Saving {
		t.Fatalf("draft must survive a failed save, got %+v", snap)
	}

	sink.mu.Lock()
	sink.err = nil
	sink.mu.Unlock()
	if _, _, err := sw.Save(context.Background(), "u1"); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if sink.callCount() != 2 {
		t.Fatalf("expected two attempts, got %d", sink.callCount())
	}
}

func TestZeroManualEntryIsValidationError(t *testing.T) {
	t.Parallel()
	sink := &fakeSink{}
	sw := newStopwatch(sink, &tickerFactory{}, Options{})
	_, _ = sw.OpenManual()
	if _, _, err := sw.Save(context.Background(), "u1"); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if sink.callCount() != 0 {
		t.Fatalf("no record may be created")
	}
	if sw.Snapshot().Mode != domain.ModeManualDraft {
		t.Fatalf("draft must stay open")
	}
}

func TestFutureManualDate(t *testing.T) {
	t.Parallel()
	sw := newStopwatch(&fakeSink{}, &tickerFactory{}, Options{})
	_, _ = sw.OpenManual()
	if _, err := sw.SetManual("2026-10-17", 0, 10, 0); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected future date to be rejected, got %v", err)
	}
	if got := sw.Snapshot().Draft; got.Date != "2026-10-16" || got.Minutes != 0 {
		t.Fatalf("rejected input must not change the draft, got %+v", got)
	}

	allowing := newStopwatch(&fakeSink{}, &tickerFactory{}, Options{AllowFutureDates: true})
	_, _ = allowing.OpenManual()
	if _, err := allowing.SetManual("2026-10-17", 0, 10, 0); err != nil {
		t.Fatalf("future date should be allowed: %v", err)
	}
}

func TestConcurrentSaveIsSuppressed(t *testing.T) {
	t.Parallel()
	sink := &fakeSink{block: make(chan struct{}), entered: make(chan struct{}, 1)}
	sw := newStopwatch(sink, &tickerFactory{}, Options{})
	_, _ = sw.OpenManual()
	_, _ = sw.SetManual("", 0, 20, 0)

	errCh := make(chan error, 1)
	go func() {
		_, _, err := sw.Save(context.Background(), "u1")
		errCh <- err
	}()
	<-sink.entered

	if _, _, err := sw.Save(context.Background(), "u1"); !errors.Is(err, apperrors.ErrSaveInFlight) {
		t.Fatalf("expected in-flight error, got %v", err)
	}
	if _, err := sw.CancelManual(); !errors.Is(err, apperrors.ErrSaveInFlight) {
		t.Fatalf("expected mutations to wait for the save, got %v", err)
	}
	close(sink.block)
	if err := <-errCh; err != nil {
		t.Fatalf("first save: %v", err)
	}
	if sink.callCount() != 1 {
		t.Fatalf("expected exactly one record, got %d", sink.callCount())
	}
}
