package main

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/prism/internal/domain/preference"
	"github.com/alexisbeaulieu97/prism/internal/tui"
)

func TestCSSFirstPaintReadsOnlyTheCookie(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.mustRun("set", "theme", "high-contrast", "accent", "rose")

	firstPaint := env.mustRun("css", "--first-paint")
	assert.Contains(t, firstPaint, `data-theme="high-contrast"`)
	assert.Contains(t, firstPaint, "--accent: #737373;", "accent lives in storage, not the cookie")

	hydrated := env.mustRun("css")
	assert.Contains(t, hydrated, "--accent: #f43f5e;")
	assert.Contains(t, hydrated, ":root {")
}

func TestExportWritesProfile(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.mustRun("set", "font-mono", "fira-code")

	assert.Contains(t, env.mustRun("export"), "mono: fira-code")

	path := filepath.Join(env.dir, "out", "profile.yaml")
	assert.Contains(t, env.mustRun("export", path), "Exported preferences")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "theme: vercel")
}

func TestImportShowsDiffAndApplies(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	path := filepath.Join(env.dir, "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: high-contrast\nfonts:\n  sans: inter\n"), 0o644))

	dry := env.mustRun("import", "--dry-run", path)
	assert.Contains(t, dry, "-theme: vercel")
	assert.Contains(t, dry, "+theme: high-contrast")
	assert.Equal(t, "vercel\n", env.mustRun("get", "theme"))

	out := env.mustRun("import", path)
	assert.Contains(t, out, "--- current")
	assert.Contains(t, out, "+    sans: inter")
	assert.Contains(t, out, "Imported 2 preference(s)")
	assert.Equal(t, "high-contrast\n", env.mustRun("get", "theme"))
	assert.Equal(t, "inter\n", env.mustRun("get", "font-sans"))

	assert.Contains(t, env.mustRun("import", path), "already match")
}

func TestImportRejectsBadProfile(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	path := filepath.Join(env.dir, "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("accent: chartreuse\n"), 0o644))

	_, err := env.run("import", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to import preferences")
	assert.Contains(t, err.Error(), "chartreuse")
}

func TestPathsUsesStateDir(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	out := env.mustRun("paths")
	assert.Contains(t, out, filepath.Join(env.dir, "preferences.json"))
	assert.Contains(t, out, filepath.Join(env.dir, "cookies.json"))
	assert.Contains(t, out, filepath.Join(env.dir, "config.yaml"))
}

func TestServeHandlerRendersCookieTheme(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	app := newAppContext()
	app.logOut = io.Discard
	require.NoError(t, app.initialize(&rootFlags{configPath: filepath.Join(dir, "config.yaml"), stateDir: dir}))

	srv, err := buildServer(app, serveOptions{addr: "127.0.0.1:0", title: "demo"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "active_theme", Value: "high-contrast"})
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<title>demo</title>")
	assert.Contains(t, rec.Body.String(), `data-theme="high-contrast"`)
}

func TestConfigFileIsHonoured(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	cfg := "cookie:\n  name: site_theme\n"
	require.NoError(t, os.WriteFile(filepath.Join(env.dir, "config.yaml"), []byte(cfg), 0o644))

	env.mustRun("set", "theme", "high-contrast")
	data, err := os.ReadFile(filepath.Join(env.dir, "cookies.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "cookie:site_theme")
}

func TestInvalidConfigIsACommandError(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(env.dir, "config.yaml"), []byte("poll_interval: soon\n"), 0o644))

	_, err := env.run("get")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to load configuration")
}

func TestInvalidLogLevelFlag(t *testing.T) {
	t.Parallel()

	_, err := newTestEnv(t).run("--log-level", "loud", "get")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validating settings")
}

func TestStartupLogsAreReplayedIntoConfiguredLogger(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.extraArg = []string{"--log-level", "debug", "--log-format", "json"}
	env.mustRun("get")

	var found bool
	for _, line := range strings.Split(strings.TrimSpace(env.logs.String()), "\n") {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
		if entry["msg"] == "loading configuration" {
			found = true
			assert.Equal(t, "debug", entry["level"])
			assert.Equal(t, "startup", entry["phase"])
		}
	}
	assert.True(t, found, env.logs.String())
}

func TestCommandErrorUnwraps(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := newCommandError("do thing", "ctx", cause, "try again")
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Failed to do thing: ctx\n\nError: boom\n\nSuggestion: try again", err.Error())
}

// The tests below swap package-level hooks and must not run in parallel.

func stubInteractive(t *testing.T, v bool) {
	t.Helper()
	orig := interactive
	interactive = func() bool { return v }
	t.Cleanup(func() { interactive = orig })
}

func TestWatchRequiresTerminal(t *testing.T) {
	stubInteractive(t, false)

	_, err := newTestEnv(t).run("watch")
	require.ErrorIs(t, err, errNotInteractive)
}

func TestWatchRunsModelOverMountedController(t *testing.T) {
	stubInteractive(t, true)
	orig := watchProgramRunner
	t.Cleanup(func() { watchProgramRunner = orig })

	env := newTestEnv(t)
	env.mustRun("set", "accent", "teal")

	var view string
	watchProgramRunner = func(m tea.Model) error {
		model, ok := m.(tui.Model)
		require.True(t, ok)
		assert.Equal(t, preference.AccentTeal, model.Set().AccentColor)
		assert.True(t, model.Set().Hydrated)

		next, _ := model.Update(tea.KeyMsg{Type: tea.KeyDown})
		next, _ = next.Update(tea.KeyMsg{Type: tea.KeyRight})
		view = next.View()
		return nil
	}

	env.mustRun("watch")
	assert.Contains(t, view, "Accent Color → Cyan")
	assert.Equal(t, "cyan\n", env.mustRun("get", "accent"))
}

func TestPickRequiresTerminal(t *testing.T) {
	stubInteractive(t, false)

	_, err := newTestEnv(t).run("pick", "accent")
	require.ErrorIs(t, err, errNotInteractive)
}

func TestPickAppliesChoice(t *testing.T) {
	stubInteractive(t, true)
	orig := pickRunner
	t.Cleanup(func() { pickRunner = orig })

	var offered preference.Field
	var current string
	pickRunner = func(field preference.Field, cur string) (string, error) {
		offered, current = field, cur
		return "stone", nil
	}

	env := newTestEnv(t)
	assert.Contains(t, env.mustRun("pick", "neutral"), "✓ baseNeutral = stone")
	assert.Equal(t, preference.FieldBaseNeutral, offered)
	assert.Equal(t, "neutral", current)
	assert.Equal(t, "stone\n", env.mustRun("get", "neutral"))
}

func TestPickCancelled(t *testing.T) {
	stubInteractive(t, true)
	orig := pickRunner
	t.Cleanup(func() { pickRunner = orig })
	pickRunner = func(preference.Field, string) (string, error) {
		return "", errors.New("user aborted")
	}

	_, err := newTestEnv(t).run("pick")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user aborted")
}
