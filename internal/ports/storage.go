package ports

import (
	"context"
	"net/http"
)

// KeyValueStore is durable client storage: string keys to string values,
// last writer wins. Backends may be shared by several processes, so Get must
// observe writes made elsewhere.
type KeyValueStore interface {
	// Get returns the value and true, or false when the key is absent. An
	// error means the backend is unavailable.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// CookieStore reads and writes the server-visible cookie tier.
// *http.Request already satisfies the read half.
type CookieStore interface {
	// Cookie returns http.ErrNoCookie when the cookie is absent.
	Cookie(name string) (*http.Cookie, error)
	SetCookie(cookie *http.Cookie) error
}
