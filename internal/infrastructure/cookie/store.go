package cookie

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/alexisbeaulieu97/prism/internal/ports"
)

// storedCookie is the value written under a cookie's key.
type storedCookie struct {
	Value   string    `json:"value"`
	Path    string    `json:"path"`
	Expires time.Time `json:"expires,omitempty"`
}

// Store keeps cookies in a key-value backend so separate processes pointing at
// the same backend see the same cookies. Expired entries read as absent.
type Store struct {
	kv  ports.KeyValueStore
	now func() time.Time
}

// NewStore wraps kv.
func NewStore(kv ports.KeyValueStore) *Store {
	return &Store{kv: kv, now: time.Now}
}

func storeKey(name string) string {
	return "cookie:" + name
}

// Cookie returns the named cookie, or http.ErrNoCookie when it is absent or
// expired.
func (s *Store) Cookie(name string) (*http.Cookie, error) {
	raw, ok, err := s.kv.Get(context.Background(), storeKey(name))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, http.ErrNoCookie
	}
	var sc storedCookie
	if err := json.Unmarshal([]byte(raw), &sc); err != nil {
		return nil, fmt.Errorf("decode cookie %q: %w", name, err)
	}
	if !sc.Expires.IsZero() && !s.now().Before(sc.Expires) {
		return nil, http.ErrNoCookie
	}
	return &http.Cookie{Name: name, Value: sc.Value, Path: sc.Path, Expires: sc.Expires}, nil
}

// SetCookie stores c. A negative MaxAge deletes the cookie.
func (s *Store) SetCookie(c *http.Cookie) error {
	if c == nil {
		return nil
	}
	if err := c.Valid(); err != nil {
		return fmt.Errorf("invalid cookie: %w", err)
	}
	if c.MaxAge < 0 {
		return s.kv.Delete(context.Background(), storeKey(c.Name))
	}

	sc := storedCookie{Value: c.Value, Path: c.Path, Expires: c.Expires}
	if c.MaxAge > 0 {
		sc.Expires = s.now().Add(time.Duration(c.MaxAge) * time.Second).UTC()
	}
	data, err := json.Marshal(sc)
	if err != nil {
		return fmt.Errorf("encode cookie %q: %w", c.Name, err)
	}
	return s.kv.Set(context.Background(), storeKey(c.Name), string(data))
}

var _ ports.CookieStore = (*Store)(nil)
