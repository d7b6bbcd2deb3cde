package domain

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	t.Parallel()
	cases := map[int64]string{
		0:      "0:00:00",
		59:     "0:00:59",
		60:     "0:01:00",
		1900:   "0:31:40",
		3661:   "1:01:01",
		360000: "100:00:00",
	}
	for in, want := range cases {
		if got := FormatDuration(in); got != want {
			t.Fatalf("FormatDuration(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestRecordValidateAndNormalize(t *testing.T) {
	t.Parallel()
	r := Record{ID: "r1", UserID: "u1", Date: "2026-10-01", DurationSeconds: 3661, DurationFormatted: "bogus", CreatedAt: time.Now()}
	if err := r.Validate(); err != nil {
		t.Fatalf("valid record rejected: %v", err)
	}
	if got := r.Normalize().DurationFormatted; got != "1:01:01" {
		t.Fatalf("expected recomputed format, got %q", got)
	}
	bad := []Record{
		{UserID: "u1", Date: "2026-10-01"},
		{ID: "r1", Date: "2026-10-01"},
		{ID: "r1", UserID: "u1", Date: "01/10/2026"},
		{ID: "r1", UserID: "u1", Date: "2026-10-01", DurationSeconds: -1},
		{ID: "r1", UserID: "u1", Date: "2026-10-01", PrayerType: "shopping"},
	}
	for i, b := range bad {
		if err := b.Validate(); err == nil {
			t.Fatalf("case %d: expected validation error for %+v", i, b)
		}
	}
}

func TestInMonthAndDateOf(t *testing.T) {
	t.Parallel()
	r := Record{Date: "2026-02-14"}
	if !r.InMonth(2026, 2) || r.InMonth(2026, 12) || r.InMonth(2025, 2) {
		t.Fatalf("unexpected month matching for %s", r.Date)
	}
	loc := time.FixedZone("CET", 3600)
	if got := DateOf(time.Date(2026, 3, 1, 0, 30, 0, 0, loc)); got != "2026-03-01" {
		t.Fatalf("expected local calendar day, got %s", got)
	}
	if !IsPrayerType("gratitude") || IsPrayerType("Gratitude") {
		t.Fatalf("prayer type lookup must be exact")
	}
}
