package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"prayerlog/internal/modules/session/domain"
	sessionout "prayerlog/internal/modules/session/port/out"

	_ "modernc.org/sqlite"
)

type SQLiteRecordIndex struct {
	db *sql.DB
}

var _ sessionout.RecordIndexProjector = (*SQLiteRecordIndex)(nil)

func NewSQLiteRecordIndex(dbPath string) (*SQLiteRecordIndex, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	index := &SQLiteRecordIndex{db: db}
	if err := index.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return index, nil
}

func (s *SQLiteRecordIndex) Close() error {
	return s.db.Close()
}

func (s *SQLiteRecordIndex) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS prayer_sessions (
  id TEXT NOT NULL,
  user_id TEXT NOT NULL,
  date TEXT NOT NULL,
  duration_seconds INTEGER NOT NULL,
  created_at TEXT NOT NULL,
  prayer_type TEXT,
  PRIMARY KEY (user_id, id)
);
CREATE INDEX IF NOT EXISTS prayer_sessions_user_date ON prayer_sessions (user_id, date);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create prayer_sessions table: %w", err)
	}
	return nil
}

func (s *SQLiteRecordIndex) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM prayer_sessions`); err != nil {
		return fmt.Errorf("reset prayer_sessions: %w", err)
	}
	return nil
}

func (s *SQLiteRecordIndex) UpsertRecord(ctx context.Context, record domain.Record) error {
	const stmt = `
INSERT INTO prayer_sessions (id, user_id, date, duration_seconds, created_at, prayer_type)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(user_id, id) DO UPDATE SET
  date=excluded.date,
  duration_seconds=excluded.duration_seconds,
  created_at=excluded.created_at,
  prayer_type=excluded.prayer_type;
`
	_, err := s.db.ExecContext(ctx, stmt,
		record.ID,
		record.UserID,
		record.Date,
		record.DurationSeconds,
		record.CreatedAt.Format(time.RFC3339Nano),
		record.PrayerType,
	)
	if err != nil {
		return fmt.Errorf("upsert prayer session: %w", err)
	}
	return nil
}

func (s *SQLiteRecordIndex) RemoveRecord(ctx context.Context, userID, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM prayer_sessions WHERE user_id = ? AND id = ?`, userID, id); err != nil {
		return fmt.Errorf("remove prayer session: %w", err)
	}
	return nil
}

func (s *SQLiteRecordIndex) ListMonth(ctx context.Context, userID string, year, month int) ([]domain.Record, error) {
	const query = `
SELECT id, user_id, date, duration_seconds, created_at, COALESCE(prayer_type, '')
FROM prayer_sessions
WHERE user_id = ? AND date LIKE ?
ORDER BY date DESC, created_at DESC;
`
	rows, err := s.db.QueryContext(ctx, query, userID, fmt.Sprintf("%04d-%02d-%%", year, month))
	if err != nil {
		return nil, fmt.Errorf("query month: %w", err)
	}
	defer rows.Close()

	out := []domain.Record{}
	for rows.Next() {
		var record domain.Record
		var createdAt string
		if err := rows.Scan(&record.ID, &record.UserID, &record.Date, &record.DurationSeconds, &createdAt, &record.PrayerType); err != nil {
			return nil, fmt.Errorf("scan prayer session: %w", err)
		}
		if record.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		out = append(out, record.Normalize())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate prayer sessions: %w", err)
	}
	return out, nil
}
