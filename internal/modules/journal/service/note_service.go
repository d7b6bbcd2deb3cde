package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"prayerlog/internal/modules/journal/domain"
	journalout "prayerlog/internal/modules/journal/port/out"
	"prayerlog/internal/platform/clock"
	apperrors "prayerlog/internal/platform/errors"
	"prayerlog/internal/platform/id"
	"prayerlog/internal/platform/logging"
)

type NoteService struct {
	clock   clock.Clock
	idGen   id.Generator
	store   journalout.NoteStore
	timeout time.Duration
	logger  *slog.Logger
}

func NewNoteService(clock clock.Clock, idGen id.Generator, store journalout.NoteStore, timeout time.Duration, logger *slog.Logger) *NoteService {
	return &NoteService{clock: clock, idGen: idGen, store: store, timeout: timeout, logger: logging.OrDiscard(logger)}
}

func (s *NoteService) Create(ctx context.Context, userID, title, text string) (domain.Note, error) {
	now := s.clock.Now()
	note := domain.Note{
		UserID:    strings.TrimSpace(userID),
		Title:     strings.TrimSpace(title),
		Text:      strings.TrimSpace(text),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := note.ValidateContent(); err != nil {
		return domain.Note{}, err
	}
	note.ID = s.idGen.New()
	callCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	path, err := s.store.Save(callCtx, note)
	if err != nil {
		return domain.Note{}, storeErr("save note", err)
	}
	note.NotePath = path
	s.logger.Info("journal note created", "user_id", note.UserID, "note_id", note.ID)
	return note, nil
}

// Update rewrites title and text. Unchanged input leaves the note and its
// timestamp alone and reports changed=false.
func (s *NoteService) Update(ctx context.Context, userID, noteID, title, text string) (domain.Note, bool, error) {
	if strings.TrimSpace(userID) == "" {
		return domain.Note{}, false, apperrors.ErrNotSignedIn
	}
	callCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	note, err := s.store.FindByID(callCtx, userID, noteID)
	if err != nil {
		return domain.Note{}, false, storeErr("find note", err)
	}
	title = strings.TrimSpace(title)
	text = strings.TrimSpace(text)
	if note.Title == title && note.Text == text {
		return note, false, nil
	}
	updated := note
	updated.Title = title
	updated.Text = text
	updated.UpdatedAt = s.clock.Now()
	if err := updated.Validate(); err != nil {
		return domain.Note{}, false, err
	}
	path, err := s.store.Save(callCtx, updated)
	if err != nil {
		return domain.Note{}, false, storeErr("save note", err)
	}
	updated.NotePath = path
	return updated, true, nil
}

func (s *NoteService) Get(ctx context.Context, userID, noteID string) (domain.Note, error) {
	callCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	note, err := s.store.FindByID(callCtx, userID, noteID)
	if err != nil {
		return domain.Note{}, storeErr("find note", err)
	}
	return note, nil
}

// List returns notes most recently updated first.
func (s *NoteService) List(ctx context.Context, userID string) ([]domain.Note, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.ErrNotSignedIn
	}
	callCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	notes, err := s.store.List(callCtx, userID)
	if err != nil {
		return nil, storeErr("list notes", err)
	}
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
	})
	return notes, nil
}

func (s *NoteService) Search(ctx context.Context, userID, query string) ([]domain.Note, error) {
	notes, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := notes[:0]
	for _, n := range notes {
		if n.Matches(query) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *NoteService) Delete(ctx context.Context, userID, noteID string) error {
	callCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := s.store.Delete(callCtx, userID, noteID); err != nil {
		return storeErr("delete note", err)
	}
	return nil
}

func (s *NoteService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, apperrors.ErrStore, err)
}
