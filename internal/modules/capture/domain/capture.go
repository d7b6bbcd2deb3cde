package domain

import (
	"fmt"
	"time"

	"prayerlog/internal/platform/duration"
	apperrors "prayerlog/internal/platform/errors"
)

const DateLayout = "2006-01-02"

type Mode int

const (
	ModeIdle Mode = iota
	ModeRunning
	ModeStopped
	ModeManualDraft
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeRunning:
		return "running"
	case ModeStopped:
		return "stopped"
	case ModeManualDraft:
		return "manual"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ManualDraft is an unsaved backfill entry.
type ManualDraft struct {
	Date    string
	Hours   int
	Minutes int
	Seconds int
}

func (d ManualDraft) DurationSeconds() int64 {
	return duration.FromParts(d.Hours, d.Minutes, d.Seconds)
}

// Pending is the record a save would produce.
type Pending struct {
	Date            string
	DurationSeconds int64
	Manual          bool
}

// SavedRecord is what the session store reports back after a save.
type SavedRecord struct {
	ID                string
	Date              string
	DurationSeconds   int64
	DurationFormatted string
	NotePath          string
}

// Capture is the in-memory state of one stopwatch or manual entry. It never
// reaches the store until Complete follows a successful save.
type Capture struct {
	mode    Mode
	elapsed int64
	draft   ManualDraft
}

func (c *Capture) Mode() Mode         { return c.mode }
func (c *Capture) Elapsed() int64     { return c.elapsed }
func (c *Capture) Draft() ManualDraft { return c.draft }
func (c *Capture) IsRunning() bool    { return c.mode == ModeRunning }

// Start begins or resumes counting. A stopped capture resumes from its frozen
// elapsed value.
func (c *Capture) Start() error {
	switch c.mode {
	case ModeRunning:
		return apperrors.ErrCaptureRunning
	case ModeIdle, ModeStopped:
		c.mode = ModeRunning
		return nil
	default:
		return transitionErr("start", c.mode)
	}
}

// Tick adds one second while running and reports whether it counted.
func (c *Capture) Tick() bool {
	if c.mode != ModeRunning {
		return false
	}
	c.elapsed++
	return true
}

func (c *Capture) Stop() error {
	if c.mode != ModeRunning {
		return transitionErr("stop", c.mode)
	}
	c.mode = ModeStopped
	return nil
}

// Restart discards the elapsed time without saving.
func (c *Capture) Restart() error {
	switch c.mode {
	case ModeRunning, ModeStopped:
		c.mode = ModeIdle
		c.elapsed = 0
		return nil
	default:
		return transitionErr("restart", c.mode)
	}
}

func (c *Capture) OpenManual(today string) error {
	if c.mode != ModeIdle {
		return transitionErr("open manual entry", c.mode)
	}
	c.mode = ModeManualDraft
	c.draft = ManualDraft{Date: today}
	return nil
}

func (c *Capture) SetManualDate(date string) error {
	if c.mode != ModeManualDraft {
		return transitionErr("set manual date", c.mode)
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return fmt.Errorf("%w: date %q must be YYYY-MM-DD", apperrors.ErrValidation, date)
	}
	c.draft.Date = date
	return nil
}

func (c *Capture) SetManualDuration(hours, minutes, seconds int) error {
	if c.mode != ModeManualDraft {
		return transitionErr("set manual duration", c.mode)
	}
	if hours < 0 || minutes < 0 || seconds < 0 {
		return fmt.Errorf("%w: duration fields must be non-negative", apperrors.ErrValidation)
	}
	c.draft.Hours = hours
	c.draft.Minutes = minutes
	c.draft.Seconds = seconds
	return nil
}

func (c *Capture) CancelManual() error {
	if c.mode != ModeManualDraft {
		return transitionErr("cancel manual entry", c.mode)
	}
	c.mode = ModeIdle
	c.draft = ManualDraft{}
	return nil
}

// Pending validates the capture and describes the record a save would create.
// Stopwatch records are attributed to today.
func (c *Capture) Pending(today string) (Pending, error) {
	switch c.mode {
	case ModeStopped:
		if c.elapsed == 0 {
			return Pending{}, apperrors.ErrNothingToSave
		}
		return Pending{Date: today, DurationSeconds: c.elapsed}, nil
	case ModeManualDraft:
		secs := c.draft.DurationSeconds()
		if secs == 0 {
			return Pending{}, fmt.Errorf("%w: manual entry needs a non-zero duration", apperrors.ErrValidation)
		}
		if _, err := time.Parse(DateLayout, c.draft.Date); err != nil {
			return Pending{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", apperrors.ErrValidation, c.draft.Date)
		}
		return Pending{Date: c.draft.Date, DurationSeconds: secs, Manual: true}, nil
	case ModeRunning:
		return Pending{}, transitionErr("save", c.mode)
	default:
		return Pending{}, apperrors.ErrNothingToSave
	}
}

// Complete resets the capture after its record was persisted.
func (c *Capture) Complete() {
	c.mode = ModeIdle
	c.elapsed = 0
	c.draft = ManualDraft{}
}

func transitionErr(action string, from Mode) error {
	return fmt.Errorf("%w: cannot %s while %s", apperrors.ErrInvalidTransition, action, from)
}
