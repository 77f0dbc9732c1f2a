// Package server renders pages whose first paint already carries the
// visitor's theme family, read from the theme cookie.
package server

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/alexisbeaulieu97/prism/internal/dom"
	"github.com/alexisbeaulieu97/prism/internal/domain/preference"
	"github.com/alexisbeaulieu97/prism/internal/infrastructure/cookie"
	"github.com/alexisbeaulieu97/prism/internal/logger"
	"github.com/alexisbeaulieu97/prism/internal/persistence"
	"github.com/alexisbeaulieu97/prism/internal/ports"
)

const pageTemplate = `<!doctype html>
<html {{.RootAttrs}}>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>{{.CSS}}</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p>Theme family: <strong>{{.Theme}}</strong></p>
<form method="post" action="/theme">
<select name="theme">
{{- range .Themes}}
<option value="{{.}}"{{if eq . $.Theme}} selected{{end}}>{{.}}</option>
{{- end}}
</select>
<button type="submit">Apply</button>
</form>
</body>
</html>
`

// Options configures the server.
type Options struct {
	Addr        string
	Title       string
	Persistence persistence.Options
	// AccessLog writes one zerolog entry per request. Nil disables it.
	AccessLog *logger.Logger
	Logger    ports.Logger
}

// Server serves the first-paint page and the theme cookie endpoint.
type Server struct {
	opts   Options
	page   *template.Template
	logger ports.Logger
}

type pageData struct {
	Title     string
	Theme     preference.ThemeFamily
	Themes    []preference.ThemeFamily
	RootAttrs template.HTMLAttr
	CSS       template.CSS
}

// New parses the page template and returns a server.
func New(opts Options) (*Server, error) {
	if opts.Title == "" {
		opts.Title = "prism"
	}
	page, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, err
	}
	return &Server{opts: opts, page: page, logger: opts.Logger}, nil
}

// Handler returns the routes wrapped in the access log middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /theme.css", s.handleCSS)
	mux.HandleFunc("POST /theme", s.handleSetTheme)
	if s.opts.AccessLog == nil {
		return mux
	}
	return s.opts.AccessLog.Middleware(mux)
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// firstPaint resolves the preference set a fresh page would start from: the
// defaults with the cookie theme family overlaid.
func (s *Server) firstPaint(r *http.Request, w http.ResponseWriter) preference.Resolved {
	opts := s.opts.Persistence
	opts.Diagnostics = s.diagnostics(r.Context())
	adapter := persistence.New(nil, cookie.NewHTTP(r, nil), opts)

	set := preference.Defaults()
	if family, ok := adapter.LoadCookieThemeFamily(r.Context()); ok {
		set.ThemeFamily = family
	}
	w.Header().Set(logger.ThemeHeader, string(set.ThemeFamily))
	return preference.Resolve(set, opts.Diagnostics)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	resolved := s.firstPaint(r, w)

	var buf bytes.Buffer
	err := s.page.Execute(&buf, pageData{
		Title:     s.opts.Title,
		Theme:     resolved.ThemeFamily,
		Themes:    preference.ThemeFamilies(),
		RootAttrs: template.HTMLAttr(dom.RenderRootAttrs(resolved)),
		CSS:       template.CSS(dom.RenderCSS(resolved)),
	})
	if err != nil {
		if s.logger != nil {
			s.logger.Error(r.Context(), "failed to render page", "error", err)
		}
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Vary", "Cookie")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleCSS(w http.ResponseWriter, r *http.Request) {
	resolved := s.firstPaint(r, w)
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Vary", "Cookie")
	_, _ = w.Write([]byte(dom.RenderCSS(resolved)))
}

func (s *Server) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form", http.StatusBadRequest)
		return
	}
	family, ok := preference.ParseThemeFamily(r.PostForm.Get("theme"))
	if !ok {
		http.Error(w, "unknown theme family", http.StatusBadRequest)
		return
	}

	opts := s.opts.Persistence
	opts.Diagnostics = s.diagnostics(r.Context())
	adapter := persistence.New(nil, cookie.NewHTTP(r, w), opts)
	adapter.SaveCookieThemeFamily(r.Context(), family)

	w.Header().Set(logger.ThemeHeader, string(family))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) diagnostics(ctx context.Context) preference.DiagnosticFunc {
	if s.logger == nil {
		return nil
	}
	return func(d preference.Diagnostic) {
		s.logger.Warn(ctx, "preference failure recovered", "kind", string(d.Kind), "field", string(d.Field), "value", d.Value, "error", d.Err)
	}
}
