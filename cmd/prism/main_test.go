package main

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/prism/internal/syncbus"
)

// testEnv runs commands against a private state directory. Every run builds a
// fresh AppContext, like separate prism processes sharing the same files.
type testEnv struct {
	t        *testing.T
	dir      string
	logs     bytes.Buffer
	extraArg []string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return &testEnv{t: t, dir: t.TempDir()}
}

func (e *testEnv) run(args ...string) (string, error) {
	e.t.Helper()

	app := newAppContext()
	app.logOut = &e.logs
	app.PollPolicy = &syncbus.PollPolicy{NewTicker: func(time.Duration) syncbus.Ticker {
		return syncbus.NewManualTicker()
	}}

	root := newRootCmd(app)
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)

	full := []string{"--config", filepath.Join(e.dir, "config.yaml"), "--state-dir", e.dir}
	full = append(full, e.extraArg...)
	root.SetArgs(append(full, args...))

	err := root.Execute()
	return buf.String(), err
}

func (e *testEnv) mustRun(args ...string) string {
	e.t.Helper()
	out, err := e.run(args...)
	require.NoError(e.t, err, out)
	return out
}
