package in

import (
	"context"
	"time"

	sessiondto "prayerlog/internal/modules/session/dto"
	sessionin "prayerlog/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context, userID string) ([]sessiondto.RecordOutput, error) {
	return h.usecase.List(ctx, userID)
}

func (h CLIHandler) Month(ctx context.Context, userID string, month time.Time) (sessiondto.MonthOutput, error) {
	return h.usecase.ListMonth(ctx, sessiondto.ListMonthInput{UserID: userID, Year: month.Year(), Month: int(month.Month())})
}

func (h CLIHandler) Tag(ctx context.Context, userID, id, prayerType string) (sessiondto.RecordOutput, error) {
	return h.usecase.SetPrayerType(ctx, sessiondto.SetPrayerTypeInput{UserID: userID, ID: id, PrayerType: prayerType})
}

func (h CLIHandler) Delete(ctx context.Context, userID, id string) error {
	return h.usecase.Delete(ctx, sessiondto.DeleteInput{UserID: userID, ID: id})
}

func (h CLIHandler) Reindex(ctx context.Context) error {
	return h.usecase.Reindex(ctx)
}
