package out

import (
	"context"
	"time"

	"prayerlog/internal/modules/capture/domain"
)

// RecordSink persists a finalized capture as a session record.
type RecordSink interface {
	Create(ctx context.Context, userID string, pending domain.Pending, createdAt time.Time) (domain.SavedRecord, error)
}
