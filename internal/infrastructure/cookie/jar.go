package cookie

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"github.com/alexisbeaulieu97/prism/internal/ports"
)

// Jar is a client-side cookie store for one origin, backed by a
// net/http CookieJar. The same jar can be attached to an http.Client so the
// cookie travels with every request to the origin.
type Jar struct {
	jar    http.CookieJar
	origin *url.URL
}

// NewJar creates a Jar for origin (for example "http://localhost:8080").
func NewJar(origin string) (*Jar, error) {
	u, err := url.Parse(origin)
	if err != nil {
		return nil, fmt.Errorf("parse cookie origin: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("cookie origin %q must include scheme and host", origin)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return &Jar{jar: jar, origin: u}, nil
}

// HTTPJar exposes the underlying jar for use with http.Client.
func (j *Jar) HTTPJar() http.CookieJar {
	return j.jar
}

// Cookie returns the named cookie visible to the origin root.
func (j *Jar) Cookie(name string) (*http.Cookie, error) {
	for _, c := range j.jar.Cookies(j.origin) {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, http.ErrNoCookie
}

// SetCookie stores c for the origin.
func (j *Jar) SetCookie(c *http.Cookie) error {
	if c == nil {
		return nil
	}
	if err := c.Valid(); err != nil {
		return fmt.Errorf("invalid cookie: %w", err)
	}
	j.jar.SetCookies(j.origin, []*http.Cookie{c})
	return nil
}

var _ ports.CookieStore = (*Jar)(nil)
