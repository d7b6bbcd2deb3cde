package out

import (
	"context"
	"time"

	"prayerlog/internal/modules/capture/domain"
	captureout "prayerlog/internal/modules/capture/port/out"
	sessiondto "prayerlog/internal/modules/session/dto"
	sessionin "prayerlog/internal/modules/session/port/in"
)

type SessionSink struct {
	sessions sessionin.Usecase
}

func NewSessionSink(sessions sessionin.Usecase) captureout.RecordSink {
	return &SessionSink{sessions: sessions}
}

func (s *SessionSink) Create(ctx context.Context, userID string, pending domain.Pending, createdAt time.Time) (domain.SavedRecord, error) {
	out, err := s.sessions.Create(ctx, sessiondto.CreateInput{
		UserID:          userID,
		Date:            pending.Date,
		DurationSeconds: pending.DurationSeconds,
		CreatedAt:       createdAt,
	})
	if err != nil {
		return domain.SavedRecord{}, err
	}
	return domain.SavedRecord{
		ID:                out.ID,
		Date:              out.Date,
		DurationSeconds:   out.DurationSeconds,
		DurationFormatted: out.DurationFormatted,
		NotePath:          out.NotePath,
	}, nil
}
