// Package config loads dpread settings from dpread.yaml, the
// environment and .env files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
var ErrConfigNotFound = errors.New("config file not found")

// ConfigFileName is looked up in the working directory.
const ConfigFileName = "dpread.yaml"

// Environment variables overriding the config file.
const (
	EnvDefaultBranch = "DPREAD_DEFAULT_BRANCH"
	EnvTimeout       = "DPREAD_TIMEOUT"
	EnvUserAgent     = "DPREAD_USER_AGENT"
)

// Defaults.
const (
	DefaultTimeout = time.Minute
	DefaultFormat  = "csv"
)

type Config struct {
	DefaultBranch string   `yaml:"default_branch"`
	Timeout       string   `yaml:"timeout"`
	UserAgent     string   `yaml:"user_agent,omitempty"`
	Format        string   `yaml:"format"`
	OutputDir     string   `yaml:"output_dir"`
	Resources     []string `yaml:"resources,omitempty"`
}

// Load reads ConfigFileName from dir.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads a config file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// LoadEnv loads .env files into the environment.  Missing files are
// ignored; variables already set are not overwritten.
func LoadEnv(files ...string) {
	_ = godotenv.Load(files...)
}

// ApplyEnv overrides settings with the DPREAD_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvDefaultBranch); v != "" {
		c.DefaultBranch = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		c.Timeout = v
	}
	if v := os.Getenv(EnvUserAgent); v != "" {
		c.UserAgent = v
	}
}

// TimeoutDuration parses Timeout, returning DefaultTimeout when unset.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return DefaultTimeout, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	return d, nil
}
