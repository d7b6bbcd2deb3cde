package domain

import (
	"fmt"
	"strings"
	"time"

	"prayerlog/internal/platform/duration"
)

const (
	SchemaVersion = 1
	DateLayout    = "2006-01-02"
)

// Record is one completed prayer session. Records are immutable once created
// except for PrayerType.
type Record struct {
	ID                string
	UserID            string
	Date              string
	DurationSeconds   int64
	DurationFormatted string
	CreatedAt         time.Time
	PrayerType        string
}

func (r Record) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(r.UserID) == "" {
		return fmt.Errorf("user id is required")
	}
	if _, err := ParseDate(r.Date); err != nil {
		return err
	}
	if r.DurationSeconds < 0 {
		return fmt.Errorf("duration must be non-negative")
	}
	if r.PrayerType != "" && !IsPrayerType(r.PrayerType) {
		return fmt.Errorf("unknown prayer type %q", r.PrayerType)
	}
	return nil
}

// Normalize recomputes the derived display duration.
func (r Record) Normalize() Record {
	r.DurationFormatted = FormatDuration(r.DurationSeconds)
	return r
}

func FormatDuration(seconds int64) string {
	return duration.Format(seconds)
}

func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q must be YYYY-MM-DD", date)
	}
	return t, nil
}

// DateOf is the calendar day of t in t's own location.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

// InMonth reports whether the record's date falls in year/month.
func (r Record) InMonth(year, month int) bool {
	return strings.HasPrefix(r.Date, fmt.Sprintf("%04d-%02d-", year, month))
}
