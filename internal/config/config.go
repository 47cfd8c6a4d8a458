// Package config loads optional defaults for the bmphide commands from a
// YAML file. Flags given on the command line always win.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Seed is a passphrase used when no seed flag is given.
	Seed      string `yaml:"seed"`
	Force     bool   `yaml:"force"`
	Overwrite bool   `yaml:"overwrite"`
	ECC       bool   `yaml:"ecc"`
	Verbose   bool   `yaml:"verbose"`

	Serve ServeConfig `yaml:"serve"`
}

// ServeConfig configures the HTTP surface.
type ServeConfig struct {
	Addr         string   `yaml:"addr"`
	MaxUploadMB  int64    `yaml:"max_upload_mb"`
	AllowOrigins []string `yaml:"allow_origins,omitempty"`
}

func Default() *Config {
	return &Config{
		Serve: ServeConfig{
			Addr:        ":8080",
			MaxUploadMB: 32,
		},
	}
}

// Load reads path on top of the defaults. An empty path returns the
// defaults; a missing file is an error because it was asked for explicitly.
func Load(path string) (*Config, error) {
	conf := Default()
	if path == "" {
		return conf, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config file %s not found", path)
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, conf); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return conf, nil
}

func (c *Config) Validate() error {
	if c.Serve.Addr == "" {
		return errors.New("serve.addr must not be empty")
	}
	if c.Serve.MaxUploadMB <= 0 {
		return fmt.Errorf("serve.max_upload_mb must be positive, got %d", c.Serve.MaxUploadMB)
	}
	return nil
}

// Save writes c as YAML. Used by `bmphide config init`.
func Save(path string, c *Config) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
