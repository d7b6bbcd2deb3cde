package out

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"prayerlog/internal/modules/journal/domain"
	journalout "prayerlog/internal/modules/journal/port/out"
	apperrors "prayerlog/internal/platform/errors"
	"prayerlog/internal/platform/markdown"
	"prayerlog/internal/platform/slug"
)

// VaultNoteStore keeps one markdown note per entry under
// journal/<user>/<title-slug>-<short-id>.md. The body is the note text.
type VaultNoteStore struct {
	vaultPath string
}

func NewVaultNoteStore(vaultPath string) journalout.NoteStore {
	return &VaultNoteStore{vaultPath: vaultPath}
}

func (s *VaultNoteStore) userDir(userID string) string {
	return filepath.Join(s.vaultPath, "journal", slug.Make(userID))
}

func (s *VaultNoteStore) Save(ctx context.Context, note domain.Note) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	previous, _ := s.pathOf(ctx, note.UserID, note.ID)
	notePath := filepath.Join(s.userDir(note.UserID), slug.Make(note.Title)+"-"+note.ShortID()+".md")
	if err := os.MkdirAll(filepath.Dir(notePath), 0o755); err != nil {
		return "", fmt.Errorf("create journal directory: %w", err)
	}
	rendered, err := markdown.Encode(toFrontmatter(note), note.Text+"\n")
	if err != nil {
		return "", err
	}
	tmp := notePath + ".tmp"
	if err := os.WriteFile(tmp, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write journal note: %w", err)
	}
	if err := os.Rename(tmp, notePath); err != nil {
		return "", fmt.Errorf("replace journal note: %w", err)
	}
	if previous != "" && previous != notePath {
		if err := os.Remove(previous); err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("remove renamed journal note: %w", err)
		}
	}
	return notePath, nil
}

func (s *VaultNoteStore) FindByID(ctx context.Context, userID, id string) (domain.Note, error) {
	notes, err := s.List(ctx, userID)
	if err != nil {
		return domain.Note{}, err
	}
	for _, n := range notes {
		if n.ID == id {
			return n, nil
		}
	}
	return domain.Note{}, apperrors.ErrNotFound
}

func (s *VaultNoteStore) List(ctx context.Context, userID string) ([]domain.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	matches, err := filepath.Glob(filepath.Join(s.userDir(userID), "*.md"))
	if err != nil {
		return nil, fmt.Errorf("glob journal notes: %w", err)
	}
	out := make([]domain.Note, 0, len(matches))
	for _, path := range matches {
		note, readErr := readNote(path)
		if errors.Is(readErr, markdown.ErrNoFrontmatter) {
			continue
		}
		if readErr != nil {
			return nil, readErr
		}
		out = append(out, note)
	}
	return out, nil
}

func (s *VaultNoteStore) Delete(ctx context.Context, userID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.pathOf(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove journal note: %w", err)
	}
	return nil
}

func (s *VaultNoteStore) pathOf(ctx context.Context, userID, id string) (string, error) {
	notes, err := s.List(ctx, userID)
	if err != nil {
		return "", err
	}
	for _, n := range notes {
		if n.ID == id {
			return n.NotePath, nil
		}
	}
	return "", apperrors.ErrNotFound
}

func readNote(path string) (domain.Note, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.Note{}, fmt.Errorf("read %s: %w", path, err)
	}
	var meta noteMeta
	body, err := markdown.Decode(string(content), &meta)
	if err != nil {
		return domain.Note{}, fmt.Errorf("parse %s: %w", path, err)
	}
	createdAt, _ := time.Parse(time.RFC3339Nano, meta.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, meta.UpdatedAt)
	note := domain.Note{
		ID:        meta.ID,
		UserID:    meta.UserID,
		Title:     meta.Title,
		Text:      strings.TrimSpace(body),
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
		NotePath:  path,
	}
	if err := note.Validate(); err != nil {
		return domain.Note{}, fmt.Errorf("decode note %s: %w", path, err)
	}
	return note, nil
}

type noteMeta struct {
	SchemaVersion int    `yaml:"schema_version"`
	ID            string `yaml:"id"`
	UserID        string `yaml:"user_id"`
	Title         string `yaml:"title"`
	CreatedAt     string `yaml:"created_at"`
	UpdatedAt     string `yaml:"updated_at"`
}

func toFrontmatter(note domain.Note) noteMeta {
	return noteMeta{
		SchemaVersion: domain.SchemaVersion,
		ID:            note.ID,
		UserID:        note.UserID,
		Title:         note.Title,
		CreatedAt:     note.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt:     note.UpdatedAt.Format(time.RFC3339Nano),
	}
}
