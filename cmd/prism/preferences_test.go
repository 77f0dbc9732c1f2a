package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPrintsDefaults(t *testing.T) {
	t.Parallel()

	out := newTestEnv(t).mustRun("get")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 9)
	assert.Equal(t, []string{"themeFamily", "vercel"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"menuAccentIntensity", "subtle"}, strings.Fields(lines[5]))
}

func TestSetPersistsAcrossRuns(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	out := env.mustRun("set", "accent", "rose", "preset", "lyra")
	assert.Contains(t, out, "✓ accentColor = rose")
	assert.Contains(t, out, "✓ stylePreset = lyra")

	assert.Equal(t, "rose\n", env.mustRun("get", "accent"))
	assert.Equal(t, "lyra\n", env.mustRun("get", "stylePreset"))

	_, err := os.Stat(filepath.Join(env.dir, "preferences.json"))
	require.NoError(t, err)
}

func TestSetRejectsUnknownValueWithoutWriting(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	_, err := env.run("set", "accent", "rose", "theme", "solarized")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to set preference: themeFamily=solarized")
	assert.Contains(t, err.Error(), "Choose one of: vercel, high-contrast")

	assert.Equal(t, "neutral\n", env.mustRun("get", "accent"), "the batch is rejected as a whole")
}

func TestSetRejectsUnknownField(t *testing.T) {
	t.Parallel()

	_, err := newTestEnv(t).run("set", "colour", "red")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown preference field")
	assert.Contains(t, err.Error(), "Use one of: themeFamily")
}

func TestSetRequiresPairs(t *testing.T) {
	t.Parallel()

	_, err := newTestEnv(t).run("set", "accent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field/value pairs")
}

func TestGetUnknownField(t *testing.T) {
	t.Parallel()

	_, err := newTestEnv(t).run("get", "nope")
	require.Error(t, err)

	var cmdErr *commandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, "get preference", cmdErr.operation)
}

func TestResetRestoresDefaultsAndCookie(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.mustRun("set", "theme", "high-contrast", "radius", "lg")
	assert.Contains(t, env.mustRun("css", "--first-paint"), `data-theme="high-contrast"`)

	assert.Contains(t, env.mustRun("reset"), "reset to defaults")

	assert.Equal(t, "vercel\n", env.mustRun("get", "theme"))
	assert.Equal(t, "none\n", env.mustRun("get", "radius"))
	assert.Contains(t, env.mustRun("css", "--first-paint"), `data-theme="vercel"`)
}
