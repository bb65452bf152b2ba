package config

import (
	"time"
)

// Config is the user configuration document (~/.todos/config.yaml).
type Config struct {
	Backend Backend `yaml:"backend"`
	Storage Storage `yaml:"storage"`
	Log     Log     `yaml:"log"`
}

// Backend configures the hosted to-do deployment. An empty URL selects the
// in-memory backend.
type Backend struct {
	URL          string `yaml:"url,omitempty" validate:"omitempty,http_url"`
	Timeout      int    `yaml:"timeout,omitempty" validate:"omitempty,min=1,max=120"`
	PollInterval int    `yaml:"poll_interval,omitempty" validate:"min=0,max=3600"`
}

// Storage selects where the theme preference lives.
type Storage struct {
	Driver string `yaml:"driver,omitempty" validate:"omitempty,kv_driver"`
	Path   string `yaml:"path,omitempty"`
}

// Log configures diagnostic logging.
type Log struct {
	Level string `yaml:"level,omitempty" validate:"omitempty,log_level"`
	File  string `yaml:"file,omitempty"`
}

// Default values applied to fields left empty.
const (
	DefaultTimeout      = 10
	DefaultPollInterval = 0
	DefaultDriver       = "file"
	DefaultLevel        = "info"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	cfg := Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Backend.Timeout == 0 {
		c.Backend.Timeout = DefaultTimeout
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = DefaultDriver
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLevel
	}
}

// RequestTimeout returns the backend timeout as a duration.
func (b Backend) RequestTimeout() time.Duration {
	return time.Duration(b.Timeout) * time.Second
}

// Poll returns the refresh interval; zero disables polling.
func (b Backend) Poll() time.Duration {
	return time.Duration(b.PollInterval) * time.Second
}
