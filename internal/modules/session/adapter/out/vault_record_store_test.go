package out

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"prayerlog/internal/modules/session/domain"
	apperrors "prayerlog/internal/platform/errors"
	"prayerlog/internal/platform/markdown"
)

func TestVaultRecordStoreRoundTripRecomputesFormattedDuration(t *testing.T) {
	t.Parallel()
	store := NewVaultRecordStore(t.TempDir())
	ctx := context.Background()
	created := time.Date(2026, 10, 16, 7, 30, 0, 123, time.UTC)
	record := domain.Record{ID: "r1", UserID: "Anna Svensson", Date: "2026-10-16", DurationSeconds: 3661, DurationFormatted: "stale", CreatedAt: created}

	path, err := store.Save(ctx, record)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read note: %v", err)
	}
	var meta recordMeta
	if _, err := markdown.Decode(string(raw), &meta); err != nil {
		t.Fatalf("decode note: %v", err)
	}
	if meta.DurationFormatted != "1:01:01" || !strings.Contains(path, "anna-svensson") {
		t.Fatalf("unexpected note %s:\n%s", path, raw)
	}

	got, err := store.FindByID(ctx, "Anna Svensson", "r1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.DurationFormatted != "1:01:01" || !got.CreatedAt.Equal(created) || got.UserID != "Anna Svensson" {
		t.Fatalf("unexpected record %+v", got)
	}
	if _, err := store.FindByID(ctx, "Anna Svensson", "missing"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestVaultRecordStoreListEmptyAndDeleteMissing(t *testing.T) {
	t.Parallel()
	store := NewVaultRecordStore(t.TempDir())
	ctx := context.Background()
	records, err := store.List(ctx, "nobody")
	if err != nil {
		t.Fatalf("list empty: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %v", records)
	}
	if err := store.Delete(ctx, "nobody", "r1"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestVaultRecordStoreDeleteChecksOwnerWhenSlugsCollide(t *testing.T) {
	t.Parallel()
	store := NewVaultRecordStore(t.TempDir())
	ctx := context.Background()
	record := domain.Record{ID: "r1", UserID: "Bob", Date: "2026-10-16", DurationSeconds: 600, CreatedAt: time.Date(2026, 10, 16, 7, 0, 0, 0, time.UTC)}
	if _, err := store.Save(ctx, record); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := store.Delete(ctx, "bob", "r1"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found for another user, got %v", err)
	}
	records, err := store.List(ctx, "Bob")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("owner's record must survive, got %d records", len(records))
	}
	if err := store.Delete(ctx, "Bob", "r1"); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if _, err := store.FindByID(ctx, "Bob", "r1"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected record gone, got %v", err)
	}
}
