package identity

import (
	"context"
	"strings"
)

// Provider yields a stable handle for the signed-in user, if any.
type Provider interface {
	CurrentUserID(ctx context.Context) (string, bool)
}

// Static is a fixed user handle, typically from configuration. The empty
// value means nobody is signed in.
type Static string

func (s Static) CurrentUserID(context.Context) (string, bool) {
	userID := strings.TrimSpace(string(s))
	return userID, userID != ""
}
