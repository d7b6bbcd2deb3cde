package usecase

import (
	"context"

	"prayerlog/internal/modules/session/domain"
	sessiondto "prayerlog/internal/modules/session/dto"
	sessionin "prayerlog/internal/modules/session/port/in"
	"prayerlog/internal/modules/session/service"
)

type Interactor struct {
	svc *service.RecordService
}

func NewInteractor(svc *service.RecordService) sessionin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Create(ctx context.Context, input sessiondto.CreateInput) (sessiondto.RecordOutput, error) {
	record, path, err := i.svc.Create(ctx, input.UserID, input.Date, input.DurationSeconds, input.CreatedAt)
	if err != nil {
		return sessiondto.RecordOutput{}, err
	}
	out := toOutput(record)
	out.NotePath = path
	return out, nil
}

func (i *Interactor) List(ctx context.Context, userID string) ([]sessiondto.RecordOutput, error) {
	records, err := i.svc.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toOutputs(records), nil
}

func (i *Interactor) ListMonth(ctx context.Context, input sessiondto.ListMonthInput) (sessiondto.MonthOutput, error) {
	records, total, err := i.svc.ListMonth(ctx, input.UserID, input.Year, input.Month)
	if err != nil {
		return sessiondto.MonthOutput{}, err
	}
	return sessiondto.MonthOutput{
		Year:                   input.Year,
		Month:                  input.Month,
		Records:                toOutputs(records),
		TotalSeconds:           total,
		TotalDurationFormatted: domain.FormatDuration(total),
	}, nil
}

func (i *Interactor) SetPrayerType(ctx context.Context, input sessiondto.SetPrayerTypeInput) (sessiondto.RecordOutput, error) {
	record, err := i.svc.SetPrayerType(ctx, input.UserID, input.ID, input.PrayerType)
	if err != nil {
		return sessiondto.RecordOutput{}, err
	}
	return toOutput(record), nil
}

func (i *Interactor) Delete(ctx context.Context, input sessiondto.DeleteInput) error {
	return i.svc.Delete(ctx, input.UserID, input.ID)
}

func (i *Interactor) Subscribe(ctx context.Context, userID string, handler sessiondto.RecordSetHandler) (func(), error) {
	return i.svc.Subscribe(ctx, userID, func(records []domain.Record) {
		handler(toOutputs(records))
	})
}

func (i *Interactor) Reindex(ctx context.Context) error {
	return i.svc.Reindex(ctx)
}

func toOutput(record domain.Record) sessiondto.RecordOutput {
	return sessiondto.RecordOutput{
		ID:                record.ID,
		UserID:            record.UserID,
		Date:              record.Date,
		DurationSeconds:   record.DurationSeconds,
		DurationFormatted: domain.FormatDuration(record.DurationSeconds),
		CreatedAt:         record.CreatedAt,
		PrayerType:        record.PrayerType,
	}
}

func toOutputs(records []domain.Record) []sessiondto.RecordOutput {
	out := make([]sessiondto.RecordOutput, 0, len(records))
	for _, r := range records {
		out = append(out, toOutput(r))
	}
	return out
}
