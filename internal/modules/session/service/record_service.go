package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"prayerlog/internal/modules/session/domain"
	sessionout "prayerlog/internal/modules/session/port/out"
	apperrors "prayerlog/internal/platform/errors"
	"prayerlog/internal/platform/id"
	"prayerlog/internal/platform/logging"
)

type RecordService struct {
	idGen     id.Generator
	store     sessionout.RecordStore
	projector sessionout.RecordIndexProjector
	timeout   time.Duration
	logger    *slog.Logger
	listeners *Broadcaster

	// publishMu keeps record-set pushes for all users in mutation order.
	publishMu sync.Mutex
}

func NewRecordService(idGen id.Generator, store sessionout.RecordStore, projector sessionout.RecordIndexProjector, timeout time.Duration, logger *slog.Logger) *RecordService {
	return &RecordService{
		idGen:     idGen,
		store:     store,
		projector: projector,
		timeout:   timeout,
		logger:    logging.OrDiscard(logger),
		listeners: NewBroadcaster(),
	}
}

func (s *RecordService) Create(ctx context.Context, userID, date string, durationSeconds int64, createdAt time.Time) (domain.Record, string, error) {
	if strings.TrimSpace(userID) == "" {
		return domain.Record{}, "", apperrors.ErrNotSignedIn
	}
	if durationSeconds < 0 {
		return domain.Record{}, "", fmt.Errorf("%w: duration must be non-negative", apperrors.ErrInvalidInput)
	}
	record := domain.Record{
		ID:              s.idGen.New(),
		UserID:          userID,
		Date:            date,
		DurationSeconds: durationSeconds,
		CreatedAt:       createdAt,
	}.Normalize()
	if err := record.Validate(); err != nil {
		return domain.Record{}, "", fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}

	callCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	path, err := s.store.Save(callCtx, record)
	if err != nil {
		return domain.Record{}, "", storeErr("create record", err)
	}
	s.project(callCtx, record)
	s.publish(ctx, userID)
	return record, path, nil
}

func (s *RecordService) List(ctx context.Context, userID string) ([]domain.Record, error) {
	callCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	records, err := s.store.List(callCtx, userID)
	if err != nil {
		return nil, storeErr("list records", err)
	}
	SortNewestFirst(records)
	return records, nil
}

func (s *RecordService) ListMonth(ctx context.Context, userID string, year, month int) ([]domain.Record, int64, error) {
	if month < 1 || month > 12 || year < 1 {
		return nil, 0, fmt.Errorf("%w: month %04d-%02d", apperrors.ErrInvalidInput, year, month)
	}
	callCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	records, err := s.projector.ListMonth(callCtx, userID, year, month)
	if err != nil {
		return nil, 0, storeErr("list month", err)
	}
	SortNewestFirst(records)
	var total int64
	for _, r := range records {
		total += r.DurationSeconds
	}
	return records, total, nil
}

func (s *RecordService) SetPrayerType(ctx context.Context, userID, recordID, prayerType string) (domain.Record, error) {
	prayerType = strings.TrimSpace(prayerType)
	if prayerType != "" && !domain.IsPrayerType(prayerType) {
		return domain.Record{}, fmt.Errorf("%w: unknown prayer type %q", apperrors.ErrInvalidInput, prayerType)
	}
	callCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	record, err := s.store.FindByID(callCtx, userID, recordID)
	if err != nil {
		return domain.Record{}, storeErr("find record", err)
	}
	record.PrayerType = prayerType
	record = record.Normalize()
	if _, err := s.store.Save(callCtx, record); err != nil {
		return domain.Record{}, storeErr("update record", err)
	}
	s.project(callCtx, record)
	s.publish(ctx, userID)
	return record, nil
}

func (s *RecordService) Delete(ctx context.Context, userID, recordID string) error {
	callCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := s.store.Delete(callCtx, userID, recordID); err != nil {
		return storeErr("delete record", err)
	}
	if err := s.projector.RemoveRecord(callCtx, userID, recordID); err != nil {
		s.logger.Warn("remove record from index", "user_id", userID, "record_id", recordID, "error", err)
	}
	s.publish(ctx, userID)
	return nil
}

// Subscribe registers listener for userID and pushes the current set right away.
// Listeners must not call back into mutating operations.
func (s *RecordService) Subscribe(ctx context.Context, userID string, listener RecordSetListener) (func(), error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.ErrNotSignedIn
	}
	s.publishMu.Lock()
	defer s.publishMu.Unlock()
	records, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	subID := s.listeners.Add(userID, listener)
	listener(records)

	var once sync.Once
	return func() {
		once.Do(func() { s.listeners.Remove(userID, subID) })
	}, nil
}

func (s *RecordService) Reindex(ctx context.Context) error {
	if err := s.projector.Reset(ctx); err != nil {
		return err
	}
	records, err := s.store.ListAll(ctx)
	if err != nil {
		return storeErr("list records", err)
	}
	for _, r := range records {
		if err := s.projector.UpsertRecord(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

func (s *RecordService) project(ctx context.Context, record domain.Record) {
	if err := s.projector.UpsertRecord(ctx, record); err != nil {
		s.logger.Warn("project record into index", "user_id", record.UserID, "record_id", record.ID, "error", err)
	}
}

func (s *RecordService) publish(ctx context.Context, userID string) {
	if !s.listeners.Has(userID) {
		return
	}
	s.publishMu.Lock()
	defer s.publishMu.Unlock()
	records, err := s.List(ctx, userID)
	if err != nil {
		s.logger.Warn("list records for subscribers", "user_id", userID, "error", err)
		return
	}
	for _, listener := range s.listeners.Listeners(userID) {
		listener(records)
	}
}

func (s *RecordService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, apperrors.ErrStore, err)
}

// SortNewestFirst orders by date, then creation time, newest first.
func SortNewestFirst(records []domain.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date > records[j].Date
		}
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
}
