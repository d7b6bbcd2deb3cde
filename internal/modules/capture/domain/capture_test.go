package domain

import (
	"errors"
	"testing"

	apperrors "prayerlog/internal/platform/errors"
)

func TestStartWhileRunningIsRejected(t *testing.T) {
	t.Parallel()
	var c Capture
	if err := c.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := c.Start(); !errors.Is(err, apperrors.ErrCaptureRunning) {
		t.Fatalf("expected running error, got %v", err)
	}
	for i := 0; i < 3; i++ {
		c.Tick()
	}
	if c.Elapsed() != 3 {
		t.Fatalf("expected 3 seconds, got %d", c.Elapsed())
	}
}

func TestStopFreezesAndStartResumes(t *testing.T) {
	t.Parallel()
	var c Capture
	_ = c.Start()
	c.Tick()
	c.Tick()
	if err := c.Stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if c.Tick() {
		t.Fatalf("tick after stop must not count")
	}
	if c.Elapsed() != 2 || c.Mode() != ModeStopped {
		t.Fatalf("unexpected state %s/%d", c.Mode(), c.Elapsed())
	}
	if err := c.Start(); err != nil {
		t.Fatalf("resume: %v", err)
	}
	c.Tick()
	if c.Elapsed() != 3 {
		t.Fatalf("expected resume from 2, got %d", c.Elapsed())
	}
}

func TestRestartDiscardsElapsed(t *testing.T) {
	t.Parallel()
	var c Capture
	if err := c.Restart(); !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Fatalf("restart from idle should fail, got %v", err)
	}
	_ = c.Start()
	c.Tick()
	_ = c.Stop()
	if err := c.Restart(); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if c.Mode() != ModeIdle || c.Elapsed() != 0 {
		t.Fatalf("expected idle with zero elapsed, got %s/%d", c.Mode(), c.Elapsed())
	}
}

func TestPendingFromStopwatchUsesToday(t *testing.T) {
	t.Parallel()
	var c Capture
	if _, err := c.Pending("2026-10-16"); !errors.Is(err, apperrors.ErrNothingToSave) {
		t.Fatalf("expected nothing to save, got %v", err)
	}
	_ = c.Start()
	for i := 0; i < 1900; i++ {
		c.Tick()
	}
	if _, err := c.Pending("2026-10-16"); !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Fatalf("expected running capture to refuse save, got %v", err)
	}
	_ = c.Stop()
	p, err := c.Pending("2026-10-16")
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if p.Date != "2026-10-16" || p.DurationSeconds != 1900 || p.Manual {
		t.Fatalf("unexpected pending %+v", p)
	}
	c.Complete()
	if c.Mode() != ModeIdle || c.Elapsed() != 0 {
		t.Fatalf("complete must reset, got %s/%d", c.Mode(), c.Elapsed())
	}
}

func TestManualDraft(t *testing.T) {
	t.Parallel()
	var c Capture
	if err := c.OpenManual("2026-10-16"); err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := c.Start(); !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Fatalf("start during manual entry should fail, got %v", err)
	}
	if _, err := c.Pending("2026-10-16"); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("all-zero manual entry must fail validation, got %v", err)
	}
	if c.Mode() != ModeManualDraft {
		t.Fatalf("failed validation must keep the draft, got %s", c.Mode())
	}
	if err := c.SetManualDate("16/10/2026"); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected bad date to fail, got %v", err)
	}
	if err := c.SetManualDuration(-1, 0, 0); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected negative field to fail, got %v", err)
	}
	if err := c.SetManualDate("2026-10-01"); err != nil {
		t.Fatalf("set date: %v", err)
	}
	if err := c.SetManualDuration(1, 2, 3); err != nil {
		t.Fatalf("set duration: %v", err)
	}
	p, err := c.Pending("2026-10-16")
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if p.Date != "2026-10-01" || p.DurationSeconds != 3723 || !p.Manual {
		t.Fatalf("unexpected pending %+v", p)
	}
	if err := c.CancelManual(); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if c.Mode() != ModeIdle || c.Draft() != (ManualDraft{}) {
		t.Fatalf("cancel must clear the draft")
	}
}
