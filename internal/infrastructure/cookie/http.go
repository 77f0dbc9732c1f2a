package cookie

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/alexisbeaulieu97/prism/internal/ports"
)

// HTTP is the server-side cookie store for a single request: reads come from
// the request, writes go out on the response. Cookies written during the
// request are visible to later reads within it.
type HTTP struct {
	request *http.Request
	writer  http.ResponseWriter

	mu      sync.Mutex
	written map[string]*http.Cookie
}

// NewHTTP binds a cookie store to a request/response pair. w may be nil for a
// read-only store.
func NewHTTP(r *http.Request, w http.ResponseWriter) *HTTP {
	return &HTTP{request: r, writer: w, written: make(map[string]*http.Cookie)}
}

func (h *HTTP) Cookie(name string) (*http.Cookie, error) {
	h.mu.Lock()
	c, ok := h.written[name]
	h.mu.Unlock()
	if ok {
		if c.MaxAge < 0 {
			return nil, http.ErrNoCookie
		}
		return c, nil
	}
	if h.request == nil {
		return nil, http.ErrNoCookie
	}
	return h.request.Cookie(name)
}

func (h *HTTP) SetCookie(c *http.Cookie) error {
	if c == nil {
		return nil
	}
	if h.writer == nil {
		return fmt.Errorf("cookie %s: response is read-only", c.Name)
	}
	if err := c.Valid(); err != nil {
		return fmt.Errorf("invalid cookie: %w", err)
	}
	http.SetCookie(h.writer, c)
	h.mu.Lock()
	h.written[c.Name] = c
	h.mu.Unlock()
	return nil
}

var _ ports.CookieStore = (*HTTP)(nil)
