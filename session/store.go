package session

import "context"

// Storage keys, kept compatible with the browser client's localStorage layout.
const (
	KeyAccessToken = "access_token"
	KeyUser        = "user"
)

// Store is the persistent key/value storage a session survives restarts in.
// Get reports found=false without an error for missing keys.
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}
