package in

import (
	"context"
	"time"

	sessiondto "prayerlog/internal/modules/session/dto"
	sessionin "prayerlog/internal/modules/session/port/in"
	apperrors "prayerlog/internal/platform/errors"
	"prayerlog/internal/platform/identity"
)

// TUIHandler serves the month list for whoever is signed in.
type TUIHandler struct {
	usecase  sessionin.Usecase
	identity identity.Provider
}

func NewTUIHandler(usecase sessionin.Usecase, identity identity.Provider) TUIHandler {
	return TUIHandler{usecase: usecase, identity: identity}
}

func (h TUIHandler) Month(ctx context.Context, month time.Time) (sessiondto.MonthOutput, error) {
	userID, ok := h.identity.CurrentUserID(ctx)
	if !ok {
		return sessiondto.MonthOutput{Year: month.Year(), Month: int(month.Month()), TotalDurationFormatted: "0:00:00"}, apperrors.ErrNotSignedIn
	}
	return h.usecase.ListMonth(ctx, sessiondto.ListMonthInput{UserID: userID, Year: month.Year(), Month: int(month.Month())})
}
