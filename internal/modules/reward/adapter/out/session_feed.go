package out

import (
	"context"

	rewardout "prayerlog/internal/modules/reward/port/out"
	sessiondto "prayerlog/internal/modules/session/dto"
	sessionin "prayerlog/internal/modules/session/port/in"
)

type SessionFeed struct {
	sessions sessionin.Usecase
}

func NewSessionFeed(sessions sessionin.Usecase) rewardout.RecordFeed {
	return &SessionFeed{sessions: sessions}
}

func (f *SessionFeed) Subscribe(ctx context.Context, userID string, handler rewardout.DurationSetHandler) (func(), error) {
	return f.sessions.Subscribe(ctx, userID, func(records []sessiondto.RecordOutput) {
		durations := make([]int64, 0, len(records))
		for _, r := range records {
			durations = append(durations, r.DurationSeconds)
		}
		handler(durations)
	})
}
