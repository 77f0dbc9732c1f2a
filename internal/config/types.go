package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/prism/internal/persistence"
	"github.com/alexisbeaulieu97/prism/internal/syncbus"
)

// Config represents the prism configuration document.
type Config struct {
	StateDir     string       `yaml:"state_dir,omitempty"`
	PollInterval Duration     `yaml:"poll_interval,omitempty" validate:"duration_min=50ms"`
	Origin       string       `yaml:"origin,omitempty" validate:"omitempty,origin"`
	Cookie       CookieConfig `yaml:"cookie,omitempty"`
	Log          LogConfig    `yaml:"log,omitempty"`
	Server       ServerConfig `yaml:"server,omitempty"`
	Share        ShareConfig  `yaml:"share,omitempty"`
}

// CookieConfig controls the theme cookie mirror.
type CookieConfig struct {
	Name   string   `yaml:"name,omitempty" validate:"cookie_name"`
	Path   string   `yaml:"path,omitempty" validate:"startswith=/"`
	MaxAge Duration `yaml:"max_age,omitempty" validate:"duration_min=1s"`
}

// LogConfig selects the log level and formatter.
type LogConfig struct {
	Level  string `yaml:"level,omitempty" validate:"oneof=debug info warn error"`
	Format string `yaml:"format,omitempty" validate:"oneof=text json logfmt"`
}

// ServerConfig configures `prism serve`.
type ServerConfig struct {
	Addr string `yaml:"addr,omitempty" validate:"hostname_port"`
}

// ShareConfig configures `prism share`, the SSH view of the preferences.
type ShareConfig struct {
	Addr        string   `yaml:"addr,omitempty" validate:"hostname_port"`
	// HostKey defaults to ssh_host_ed25519 inside the state directory and is
	// generated on first use.
	HostKey     string   `yaml:"host_key,omitempty"`
	IdleTimeout Duration `yaml:"idle_timeout,omitempty"`
}

// Duration is a time.Duration written as a Go duration string in YAML.
type Duration time.Duration

// UnmarshalYAML accepts strings such as "500ms" or "8760h".
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("line %d: invalid duration %q", value.Line, raw)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML writes the duration string form.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the duration as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		StateDir:     DefaultStateDir(),
		PollInterval: Duration(syncbus.DefaultPollInterval),
		Origin:       "http://localhost:8080",
		Cookie: CookieConfig{
			Name:   persistence.DefaultCookieName,
			Path:   persistence.DefaultCookiePath,
			MaxAge: Duration(persistence.DefaultCookieMaxAge),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr: "localhost:8080",
		},
		Share: ShareConfig{
			Addr: "localhost:23234",
		},
	}
}

// DefaultStateDir is ~/.prism, or .prism in the working directory when the
// home directory cannot be determined.
func DefaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".prism"
	}
	return filepath.Join(home, ".prism")
}

// DefaultPath is the config file inside the default state directory.
func DefaultPath() string {
	return filepath.Join(DefaultStateDir(), "config.yaml")
}

// StoragePath is the preference file inside the state directory.
func (c *Config) StoragePath() string {
	return filepath.Join(c.StateDir, "preferences.json")
}

// CookieJarPath is the persisted cookie jar inside the state directory.
func (c *Config) CookieJarPath() string {
	return filepath.Join(c.StateDir, "cookies.json")
}

// HostKeyPath is the SSH host key used by `prism share`.
func (c *Config) HostKeyPath() string {
	if c.Share.HostKey != "" {
		return c.Share.HostKey
	}
	return filepath.Join(c.StateDir, "ssh_host_ed25519")
}

// PersistenceOptions maps the cookie settings onto persistence options.
func (c *Config) PersistenceOptions() persistence.Options {
	return persistence.Options{
		CookieName:   c.Cookie.Name,
		CookiePath:   c.Cookie.Path,
		CookieMaxAge: c.Cookie.MaxAge.Std(),
	}
}

// PollPolicy builds the poll policy for controllers created from this config.
func (c *Config) PollPolicy() syncbus.PollPolicy {
	return syncbus.PollPolicy{Interval: c.PollInterval.Std()}
}

// withDefaults fills every zero field from Default.
func (c *Config) withDefaults() {
	def := Default()
	if c.StateDir == "" {
		c.StateDir = def.StateDir
	}
	if c.PollInterval == 0 {
		c.PollInterval = def.PollInterval
	}
	if c.Origin == "" {
		c.Origin = def.Origin
	}
	if c.Cookie.Name == "" {
		c.Cookie.Name = def.Cookie.Name
	}
	if c.Cookie.Path == "" {
		c.Cookie.Path = def.Cookie.Path
	}
	if c.Cookie.MaxAge == 0 {
		c.Cookie.MaxAge = def.Cookie.MaxAge
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = def.Log.Format
	}
	if c.Server.Addr == "" {
		c.Server.Addr = def.Server.Addr
	}
	if c.Share.Addr == "" {
		c.Share.Addr = def.Share.Addr
	}
}
