package out

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"prayerlog/internal/modules/session/domain"
	sessionout "prayerlog/internal/modules/session/port/out"
	apperrors "prayerlog/internal/platform/errors"
	"prayerlog/internal/platform/markdown"
	"prayerlog/internal/platform/slug"
)

type VaultRecordStore struct {
	vaultPath string
}

func NewVaultRecordStore(vaultPath string) sessionout.RecordStore {
	return &VaultRecordStore{vaultPath: vaultPath}
}

func (s *VaultRecordStore) userDir(userID string) string {
	return filepath.Join(s.vaultPath, "sessions", slug.Make(userID))
}

func (s *VaultRecordStore) Save(ctx context.Context, record domain.Record) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	day, err := domain.ParseDate(record.Date)
	if err != nil {
		return "", err
	}
	dir := filepath.Join(s.userDir(record.UserID), day.Format("2006"), day.Format("01"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create session dir: %w", err)
	}
	path := filepath.Join(dir, record.ID+".md")

	body := fmt.Sprintf("# Prayer session %s\n\n- Duration: %s\n", record.Date, domain.FormatDuration(record.DurationSeconds))
	if record.PrayerType != "" {
		body += fmt.Sprintf("- Prayer: %s\n", record.PrayerType)
	}
	rendered, err := markdown.Encode(toFrontmatter(record), body)
	if err != nil {
		return "", err
	}
	// Write to a temp file first so a failed write never leaves a partial note.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write session note: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("commit session note: %w", err)
	}
	return path, nil
}

func (s *VaultRecordStore) FindByID(ctx context.Context, userID, id string) (domain.Record, error) {
	records, err := s.List(ctx, userID)
	if err != nil {
		return domain.Record{}, err
	}
	for _, r := range records {
		if r.ID == id {
			return r, nil
		}
	}
	return domain.Record{}, apperrors.ErrNotFound
}

func (s *VaultRecordStore) List(ctx context.Context, userID string) ([]domain.Record, error) {
	all, err := s.listUnder(ctx, s.userDir(userID))
	if err != nil {
		return nil, err
	}
	out := make([]domain.Record, 0, len(all))
	for _, r := range all {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *VaultRecordStore) ListAll(ctx context.Context) ([]domain.Record, error) {
	return s.listUnder(ctx, filepath.Join(s.vaultPath, "sessions"))
}

func (s *VaultRecordStore) Delete(ctx context.Context, userID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	paths, err := s.notePaths(s.userDir(userID))
	if err != nil {
		return err
	}
	for _, path := range paths {
		if strings.TrimSuffix(filepath.Base(path), ".md") != id {
			continue
		}
		// Distinct user ids can share a directory slug; only the owner may delete.
		record, ok, err := readRecord(path)
		if err != nil {
			return err
		}
		if !ok || record.UserID != userID {
			continue
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("delete session note: %w", err)
		}
		return nil
	}
	return apperrors.ErrNotFound
}

func (s *VaultRecordStore) listUnder(ctx context.Context, root string) ([]domain.Record, error) {
	paths, err := s.notePaths(root)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Record, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, ok, err := readRecord(path)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, record)
		}
	}
	return out, nil
}

// readRecord loads one session note. ok is false for markdown files without
// a frontmatter header.
func readRecord(path string) (domain.Record, bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.Record{}, false, fmt.Errorf("read %s: %w", path, err)
	}
	var meta recordMeta
	if _, err := markdown.Decode(string(content), &meta); err != nil {
		if errors.Is(err, markdown.ErrNoFrontmatter) {
			return domain.Record{}, false, nil
		}
		return domain.Record{}, false, fmt.Errorf("parse %s: %w", path, err)
	}
	record, err := fromFrontmatter(meta)
	if err != nil {
		return domain.Record{}, false, fmt.Errorf("decode session %s: %w", path, err)
	}
	return record, true, nil
}

func (s *VaultRecordStore) notePaths(root string) ([]string, error) {
	paths := []string{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return filepath.SkipDir
			}
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".md") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk session notes: %w", err)
	}
	sort.Strings(paths)
	return paths, nil
}

// recordMeta is the YAML header of a session note. duration_formatted is
// written for readers of the vault and recomputed on load.
type recordMeta struct {
	SchemaVersion     int    `yaml:"schema_version"`
	ID                string `yaml:"id"`
	UserID            string `yaml:"user_id"`
	Date              string `yaml:"date"`
	DurationSeconds   int64  `yaml:"duration_seconds"`
	DurationFormatted string `yaml:"duration_formatted"`
	CreatedAt         string `yaml:"created_at"`
	PrayerType        string `yaml:"prayer_type,omitempty"`
}

func toFrontmatter(record domain.Record) recordMeta {
	return recordMeta{
		SchemaVersion:     domain.SchemaVersion,
		ID:                record.ID,
		UserID:            record.UserID,
		Date:              record.Date,
		DurationSeconds:   record.DurationSeconds,
		DurationFormatted: domain.FormatDuration(record.DurationSeconds),
		CreatedAt:         record.CreatedAt.Format(time.RFC3339Nano),
		PrayerType:        record.PrayerType,
	}
}

func fromFrontmatter(meta recordMeta) (domain.Record, error) {
	record := domain.Record{
		ID:              meta.ID,
		UserID:          meta.UserID,
		Date:            meta.Date,
		DurationSeconds: meta.DurationSeconds,
		PrayerType:      meta.PrayerType,
	}
	if meta.CreatedAt != "" {
		createdAt, err := time.Parse(time.RFC3339Nano, meta.CreatedAt)
		if err != nil {
			return domain.Record{}, fmt.Errorf("created_at: %w", err)
		}
		record.CreatedAt = createdAt
	}
	record = record.Normalize()
	if err := record.Validate(); err != nil {
		return domain.Record{}, err
	}
	return record, nil
}
