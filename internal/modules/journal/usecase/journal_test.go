package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"prayerlog/internal/modules/journal/adapter/out"
	"prayerlog/internal/modules/journal/dto"
	journalin "prayerlog/internal/modules/journal/port/in"
	"prayerlog/internal/modules/journal/service"
	"prayerlog/internal/modules/journal/usecase"
	apperrors "prayerlog/internal/platform/errors"
)

type stepClock struct{ now time.Time }

func (c *stepClock) Now() time.Time {
	c.now = c.now.Add(time.Minute)
	return c.now
}

type seqID struct{ n int }

func (s *seqID) New() string {
	s.n++
	return fmt.Sprintf("0192b3c4-d5e6-7f80-9a1b-%012d", s.n)
}

func newJournal(t *testing.T) (journalin.Usecase, string) {
	t.Helper()
	vault := t.TempDir()
	clk := &stepClock{now: time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)}
	svc := service.NewNoteService(clk, &seqID{}, out.NewVaultNoteStore(vault), time.Second, nil)
	return usecase.NewInteractor(svc), vault
}

func TestCreateRequiresTitleAndText(t *testing.T) {
	t.Parallel()
	journal, vault := newJournal(t)
	ctx := context.Background()
	if _, err := journal.Create(ctx, dto.CreateInput{UserID: "u1", Title: " ", Text: "x"}); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := journal.Create(ctx, dto.CreateInput{UserID: "u1", Title: "x", Text: ""}); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	note, err := journal.Create(ctx, dto.CreateInput{UserID: "u1", Title: "Morning Gratitude", Text: "  Thankful for rest.  "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if note.Text != "Thankful for rest." {
		t.Fatalf("text should be trimmed, got %q", note.Text)
	}
	want := filepath.Join(vault, "journal", "u1", "morning-gratitude-00000001.md")
	if note.NotePath != want {
		t.Fatalf("expected note at %s, got %s", want, note.NotePath)
	}
}

func TestUpdateIsNoOpWhenUnchangedAndRenamesOnTitleChange(t *testing.T) {
	t.Parallel()
	journal, _ := newJournal(t)
	ctx := context.Background()
	note, err := journal.Create(ctx, dto.CreateInput{UserID: "u1", Title: "Peace", Text: "Quiet evening"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	same, err := journal.Update(ctx, dto.UpdateInput{UserID: "u1", ID: note.ID, Title: "Peace ", Text: "Quiet evening"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if same.Changed || !same.Note.UpdatedAt.Equal(note.UpdatedAt) {
		t.Fatalf("unchanged update must be a no-op, got %+v", same)
	}

	renamed, err := journal.Update(ctx, dto.UpdateInput{UserID: "u1", ID: note.ID, Title: "Inner Peace", Text: "Quiet evening"})
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if !renamed.Changed || !renamed.Note.UpdatedAt.After(note.UpdatedAt) {
		t.Fatalf("expected a changed note with a newer timestamp, got %+v", renamed)
	}
	if _, err := os.Stat(note.NotePath); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("old file should be gone, stat err=%v", err)
	}
	if !strings.HasSuffix(renamed.Note.NotePath, "inner-peace-00000001.md") {
		t.Fatalf("unexpected path %s", renamed.Note.NotePath)
	}
	notes, err := journal.List(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("expected a single note after rename, got %d", len(notes))
	}
	if _, err := journal.Update(ctx, dto.UpdateInput{UserID: "u1", ID: note.ID, Title: "Inner Peace", Text: ""}); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("clearing the text must fail validation, got %v", err)
	}
}

func TestListSearchAndDelete(t *testing.T) {
	t.Parallel()
	journal, _ := newJournal(t)
	ctx := context.Background()
	first, _ := journal.Create(ctx, dto.CreateInput{UserID: "u1", Title: "Hope", Text: "For my sister"})
	_, _ = journal.Create(ctx, dto.CreateInput{UserID: "u1", Title: "Strength", Text: "Hard week at work"})
	_, _ = journal.Create(ctx, dto.CreateInput{UserID: "u2", Title: "Other", Text: "Not mine"})

	notes, err := journal.List(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(notes) != 2 || notes[0].Title != "Strength" {
		t.Fatalf("expected newest first, got %+v", notes)
	}
	found, err := journal.Search(ctx, "u1", "SISTER")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) != 1 || found[0].ID != first.ID {
		t.Fatalf("unexpected search result %+v", found)
	}
	if err := journal.Delete(ctx, "u1", first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := journal.Delete(ctx, "u1", first.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := journal.List(ctx, ""); !errors.Is(err, apperrors.ErrNotSignedIn) {
		t.Fatalf("expected not signed in, got %v", err)
	}
}
