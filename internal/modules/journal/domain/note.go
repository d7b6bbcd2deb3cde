package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "prayerlog/internal/platform/errors"
)

const SchemaVersion = 1

// Note is a free-form prayer journal entry.
type Note struct {
	ID        string
	UserID    string
	Title     string
	Text      string
	CreatedAt time.Time
	UpdatedAt time.Time
	NotePath  string
}

func (n Note) Validate() error {
	if strings.TrimSpace(n.ID) == "" {
		return fmt.Errorf("%w: id is required", apperrors.ErrValidation)
	}
	return n.ValidateContent()
}

// ValidateContent checks everything except the id, so input can be rejected
// before one is allocated.
func (n Note) ValidateContent() error {
	if strings.TrimSpace(n.UserID) == "" {
		return apperrors.ErrNotSignedIn
	}
	if strings.TrimSpace(n.Title) == "" {
		return fmt.Errorf("%w: title is required", apperrors.ErrValidation)
	}
	if strings.TrimSpace(n.Text) == "" {
		return fmt.Errorf("%w: text is required", apperrors.ErrValidation)
	}
	return nil
}

// Matches is a case-insensitive substring test on title and text.
func (n Note) Matches(query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(n.Title), query) || strings.Contains(strings.ToLower(n.Text), query)
}

// ShortID is the filename suffix that keeps same-titled notes apart.
func (n Note) ShortID() string {
	id := strings.ReplaceAll(n.ID, "-", "")
	if len(id) > 8 {
		return id[len(id)-8:]
	}
	return id
}
