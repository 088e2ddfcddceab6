package session

import (
	"context"
	"time"
)

type Session struct {
	ID         string
	UserID     uint
	IssuedAt   time.Time
	ExpiresAt  time.Time
	Persistent bool
}

// Store remembers revoked session ids until the session would have expired anyway.
type Store interface {
	Revoke(ctx context.Context, id string, until time.Time) error
	IsRevoked(ctx context.Context, id string) (bool, error)
}
