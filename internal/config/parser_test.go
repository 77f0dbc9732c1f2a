package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	prismerrors "github.com/alexisbeaulieu97/prism/pkg/errors"
)

func TestParseConfig(t *testing.T) {
	t.Parallel()

	validYAML := `state_dir: /tmp/prism-state
poll_interval: 250ms
origin: https://prism.example.com
cookie:
  name: prism_theme
  max_age: 720h
log:
  level: debug
  format: json
server:
  addr: 0.0.0.0:9000
share:
  addr: 0.0.0.0:2222
  idle_timeout: 10m
`

	invalidYAML := `poll_interval: [1, 2]
`

	badCookie := `cookie:
  name: "bad name"
`

	tooFast := `poll_interval: 1ms
`

	badOrigin := `origin: localhost
`

	cases := []struct {
		name     string
		contents string
		assert   func(t *testing.T, cfg *Config, err error)
	}{
		{
			name:     "valid configuration is parsed",
			contents: validYAML,
			assert: func(t *testing.T, cfg *Config, err error) {
				require.NoError(t, err)
				require.Equal(t, "/tmp/prism-state", cfg.StateDir)
				require.Equal(t, 250*time.Millisecond, cfg.PollInterval.Std())
				require.Equal(t, "prism_theme", cfg.Cookie.Name)
				require.Equal(t, "/", cfg.Cookie.Path, "omitted fields take defaults")
				require.Equal(t, 720*time.Hour, cfg.Cookie.MaxAge.Std())
				require.Equal(t, "json", cfg.Log.Format)
				require.Equal(t, "0.0.0.0:9000", cfg.Server.Addr)
				require.Equal(t, "0.0.0.0:2222", cfg.Share.Addr)
				require.Equal(t, 10*time.Minute, cfg.Share.IdleTimeout.Std())
				require.Equal(t, "/tmp/prism-state/ssh_host_ed25519", cfg.HostKeyPath())
			},
		},
		{
			name:     "empty file yields defaults",
			contents: "",
			assert: func(t *testing.T, cfg *Config, err error) {
				require.NoError(t, err)
				require.Equal(t, 500*time.Millisecond, cfg.PollInterval.Std())
				require.Equal(t, "active_theme", cfg.Cookie.Name)
				require.Equal(t, "info", cfg.Log.Level)
			},
		},
		{
			name:     "invalid yaml returns parse error",
			contents: invalidYAML,
			assert: func(t *testing.T, cfg *Config, err error) {
				var parseErr *prismerrors.ParseError
				require.ErrorAs(t, err, &parseErr)
				require.Equal(t, 1, parseErr.Line)
			},
		},
		{
			name:     "invalid cookie name returns validation error",
			contents: badCookie,
			assert: func(t *testing.T, cfg *Config, err error) {
				var validationErr *prismerrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				require.Equal(t, "cookie.name", validationErr.Field)
			},
		},
		{
			name:     "poll interval below minimum",
			contents: tooFast,
			assert: func(t *testing.T, cfg *Config, err error) {
				var validationErr *prismerrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				require.Equal(t, "poll_interval", validationErr.Field)
				require.Contains(t, validationErr.Message, "duration_min=50ms")
			},
		},
		{
			name:     "origin without scheme",
			contents: badOrigin,
			assert: func(t *testing.T, cfg *Config, err error) {
				var validationErr *prismerrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				require.Equal(t, "origin", validationErr.Field)
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tc.contents), 0o644))

			cfg, err := ParseConfig(path)
			tc.assert(t, cfg, err)
		})
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestWriteRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.StateDir = "/var/lib/prism"
	cfg.PollInterval = Duration(time.Second)

	require.NoError(t, Write(path, cfg))

	loaded, err := ParseConfig(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}

func TestConfigDerivedSettings(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.StateDir = "/state"
	cfg.Cookie.Name = "theme"

	require.Equal(t, "/state/preferences.json", cfg.StoragePath())
	require.Equal(t, "/state/cookies.json", cfg.CookieJarPath())
	require.Equal(t, "theme", cfg.PersistenceOptions().CookieName)
	require.Equal(t, 500*time.Millisecond, cfg.PollPolicy().Interval)
	require.Equal(t, "/state/ssh_host_ed25519", cfg.HostKeyPath())

	cfg.Share.HostKey = "/keys/prism"
	require.Equal(t, "/keys/prism", cfg.HostKeyPath())
}

func TestGetValidatorIsShared(t *testing.T) {
	t.Parallel()

	require.Same(t, GetValidator(), GetValidator())
}
