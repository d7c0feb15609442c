// Package session holds per-login scratch state such as the selected safe.
// Values are scoped by session id; nothing is shared between sessions.
package session

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("session: key not found")

// Store reads and writes string values scoped to one session.
type Store interface {
	Get(ctx context.Context, sessionID, key string) (string, error)
	Set(ctx context.Context, sessionID, key, value string) error
	Remove(ctx context.Context, sessionID, key string) error
}
