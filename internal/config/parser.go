package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	prismerrors "github.com/alexisbeaulieu97/prism/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// Load reads the configuration at path. A missing file yields the defaults;
// any other read failure is a ParseError.
func Load(path string) (*Config, error) {
	cfg, err := ParseConfig(path)
	if err == nil {
		return cfg, nil
	}
	var parseErr *prismerrors.ParseError
	if errors.As(err, &parseErr) && errors.Is(parseErr.Err, os.ErrNotExist) {
		return Default(), nil
	}
	return nil, err
}

// ParseConfig loads a configuration file from disk, applies defaults to
// omitted fields and validates the result.
func ParseConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, prismerrors.NewParseError(path, 0, err)
	}
	return parseConfigData(path, data)
}

func parseConfigData(path string, data []byte) (*Config, error) {
	var cfg Config
	if strings.TrimSpace(string(data)) != "" {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, prismerrors.NewParseError(path, extractLine(err), err)
		}
	}
	cfg.withDefaults()
	if strings.HasPrefix(cfg.StateDir, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.StateDir = filepath.Join(home, cfg.StateDir[2:])
		}
	}

	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Write stores cfg at path, creating the parent directory.
func Write(path string, cfg *Config) error {
	if err := ValidateConfig(cfg); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
