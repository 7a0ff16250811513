// Package config handles the reference driver's configuration file:
// the ping timeout, wire tracing flag and socket name a deployment
// tunes without touching code, loaded from either YAML or TOML.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/elliotmr/xdgshell/xdgshell"
)

// DefaultPingTimeoutMS mirrors xdgshell.DefaultPingTimeoutMS so a
// config file that omits the field still gets the same default the
// core applies internally.
const DefaultPingTimeoutMS = xdgshell.DefaultPingTimeoutMS

// DefaultSocketName is the SocketName a Config carries when none is
// configured. The reference driver runs in-process and does not open
// a socket under this name.
const DefaultSocketName = "wayland-xdgshell-0"

// Config carries the reference driver's tunables.
type Config struct {
	PingTimeoutMS int    `yaml:"ping_timeout_ms" toml:"ping_timeout_ms"`
	TraceWire     bool   `yaml:"trace_wire" toml:"trace_wire"`
	SocketName    string `yaml:"socket_name" toml:"socket_name"`
}

// Default returns a Config with the built-in defaults.
func Default() *Config {
	return &Config{
		PingTimeoutMS: DefaultPingTimeoutMS,
		TraceWire:     false,
		SocketName:    DefaultSocketName,
	}
}

// ConfigPath returns the default config file location, honoring
// XDG_CONFIG_HOME the way the rest of the pack's config loaders do.
func ConfigPath() string {
	home := os.Getenv("XDG_CONFIG_HOME")
	if home == "" {
		dir, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		home = filepath.Join(dir, ".config")
	}
	return filepath.Join(home, "xdgshelld", "config.yaml")
}

// Load reads and parses a config file at path, falling back to
// Default() if it doesn't exist. The format is chosen by extension:
// .yaml/.yml parses as YAML, anything else (including .toml and no
// extension) parses as TOML.
func Load(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrapf(err, "config: reading %s", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "config: parsing %s as yaml", path)
		}
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "config: parsing %s as toml", path)
		}
	}

	if cfg.PingTimeoutMS <= 0 {
		cfg.PingTimeoutMS = DefaultPingTimeoutMS
	}
	if cfg.SocketName == "" {
		cfg.SocketName = DefaultSocketName
	}

	return cfg, nil
}

// Save writes cfg to path in the format its extension selects,
// creating parent directories as needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "config: creating directory for %s", path)
	}

	var data []byte
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = toml.Marshal(*c)
	}
	if err != nil {
		return errors.Wrapf(err, "config: marshaling %s", path)
	}

	return os.WriteFile(path, data, 0o644)
}
