package dto

import "time"

type CreateInput struct {
	UserID string
	Title  string
	Text   string
}

type UpdateInput struct {
	UserID string
	ID     string
	Title  string
	Text   string
}

type NoteOutput struct {
	ID        string
	Title     string
	Text      string
	CreatedAt time.Time
	UpdatedAt time.Time
	NotePath  string
}

type UpdateOutput struct {
	Note    NoteOutput
	Changed bool
}
