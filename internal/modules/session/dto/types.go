package dto

import "time"

type CreateInput struct {
	UserID          string
	Date            string
	DurationSeconds int64
	CreatedAt       time.Time
}

type RecordOutput struct {
	ID                string
	UserID            string
	Date              string
	DurationSeconds   int64
	DurationFormatted string
	CreatedAt         time.Time
	PrayerType        string
	NotePath          string
}

type ListMonthInput struct {
	UserID string
	Year   int
	Month  int
}

type MonthOutput struct {
	Year                   int
	Month                  int
	Records                []RecordOutput
	TotalSeconds           int64
	TotalDurationFormatted string
}

type SetPrayerTypeInput struct {
	UserID     string
	ID         string
	PrayerType string
}

type DeleteInput struct {
	UserID string
	ID     string
}

// RecordSetHandler receives the complete current record set of one user.
type RecordSetHandler func(records []RecordOutput)
