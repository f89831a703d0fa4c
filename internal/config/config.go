package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/monify-labs/hostreport/internal/probe"
)

const (
	// Export settings
	Timeout = 10 * time.Second

	// File locations
	EnvFilePath    = "/etc/hostreport/env"
	ConfigFilePath = "/etc/hostreport/config.yaml"
)

// Build info (injected at build time via ldflags)
var (
	Version   = "1.0.0"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Config is the optional YAML configuration.
type Config struct {
	Language              string        `yaml:"language"`
	Parallel              bool          `yaml:"parallel"`
	Debug                 bool          `yaml:"debug"`
	LspciTimeout          time.Duration `yaml:"lspci_timeout"`
	LicenseTimeout        time.Duration `yaml:"license_timeout"`
	MaxDevicesPerCategory int           `yaml:"max_devices_per_category"`
	SkipFilesystems       []string      `yaml:"skip_filesystems"`
	ExportURL             string        `yaml:"export_url"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	opts := probe.DefaultOptions()
	return &Config{
		LspciTimeout:          opts.CommandTimeout,
		LicenseTimeout:        opts.LicenseTimeout,
		MaxDevicesPerCategory: opts.MaxDevicesPerCategory,
		SkipFilesystems:       opts.SkipFilesystems,
	}
}

// Path returns the config file path from HOSTREPORT_CONFIG or the default.
func Path() string {
	if path := os.Getenv("HOSTREPORT_CONFIG"); path != "" {
		return path
	}
	return ConfigFilePath
}

// Load reads the YAML file at path over the defaults and then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if lang := os.Getenv("HOSTREPORT_LANG"); lang != "" {
		c.Language = lang
	}
	if url := os.Getenv("HOSTREPORT_EXPORT_URL"); url != "" {
		c.ExportURL = url
	}
	if IsDebugMode() {
		c.Debug = true
	}
	if parallel, err := strconv.ParseBool(os.Getenv("HOSTREPORT_PARALLEL")); err == nil {
		c.Parallel = parallel
	}
}

// ProbeOptions converts the config into probe tuning.
func (c *Config) ProbeOptions() probe.Options {
	opts := probe.DefaultOptions()
	if c.LspciTimeout > 0 {
		opts.CommandTimeout = c.LspciTimeout
	}
	if c.LicenseTimeout > 0 {
		opts.LicenseTimeout = c.LicenseTimeout
	}
	if c.MaxDevicesPerCategory > 0 {
		opts.MaxDevicesPerCategory = c.MaxDevicesPerCategory
	}
	if c.SkipFilesystems != nil {
		opts.SkipFilesystems = c.SkipFilesystems
	}
	return opts
}

// LoadEnvFile loads environment variables from path. Variables already
// set in the environment win.
func LoadEnvFile(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil // File doesn't exist is not an error
	}
	return err
}

// SaveEnvFile merges vars into the env file at path. An empty value
// removes the variable.
func SaveEnvFile(path string, vars map[string]string) error {
	existing, err := godotenv.Read(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to read env file: %w", err)
		}
		existing = make(map[string]string)
	}

	for k, v := range vars {
		if v == "" {
			delete(existing, k)
			continue
		}
		existing[k] = v
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := godotenv.Write(existing, path); err != nil {
		return fmt.Errorf("failed to write env file: %w", err)
	}
	// The file may hold the export token.
	if err := os.Chmod(path, 0600); err != nil {
		return fmt.Errorf("failed to restrict env file: %w", err)
	}

	return nil
}

// GetToken returns the export token from the environment.
func GetToken() (string, error) {
	token := os.Getenv("HOSTREPORT_TOKEN")
	if token == "" {
		return "", fmt.Errorf("HOSTREPORT_TOKEN environment variable not set")
	}
	return token, nil
}

// IsDebugMode checks if debug mode is enabled
func IsDebugMode() bool {
	debug := os.Getenv("HOSTREPORT_DEBUG")
	return debug == "true" || debug == "1"
}
