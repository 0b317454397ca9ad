// Package session persists per-session state under opaque keys. It is the
// only durable storage the storefront has: the cart and the logged-in user of
// a browser session live here, everything else is recomputed.
package session

import (
	"context"
	"fmt"
)

// Repository is the storage boundary: Get returns domain.ErrNotFound for an
// absent key, Set overwrites unconditionally, Delete is a no-op for an absent
// key. Backends must be safe for concurrent use.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// CartKey addresses the serialized cart of a session.
func CartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}

// UserKey addresses the logged-in user record of a session.
func UserKey(sessionID string) string {
	return fmt.Sprintf("user:%s", sessionID)
}
