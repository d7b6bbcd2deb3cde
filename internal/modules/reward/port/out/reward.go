package out

import "context"

// KeyValueStore is durable string storage. Keys are already namespaced by
// user. Get reports false for a missing key.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// DurationSetHandler receives every record duration for a user, in full, on
// each change.
type DurationSetHandler func(durations []int64)

type RecordFeed interface {
	Subscribe(ctx context.Context, userID string, handler DurationSetHandler) (func(), error)
}
