// CLASSIFICATION: COMMUNITY
// Filename: config.go v0.1
// Author: Lukas Bower
// Date Modified: 2026-10-19
// License: SPDX-License-Identifier: MIT OR Apache-2.0

// Package config resolves devserve settings from defaults, an optional
// config file (TOML or YAML) and DEVSERVE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fortio.org/struct2env"
	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "DEVSERVE_"

// Config is the resolved server configuration.
type Config struct {
	Bind            string        `toml:"bind" yaml:"bind"`
	Port            int           `toml:"port" yaml:"port"`
	Dir             string        `toml:"dir" yaml:"dir"`
	LogFile         string        `toml:"log_file" yaml:"log_file"`
	LogLevel        string        `toml:"log_level" yaml:"log_level"`
	Watch           bool          `toml:"watch" yaml:"watch"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Bind:            "127.0.0.1",
		Port:            8000,
		Dir:             "src",
		LogLevel:        "info",
		ShutdownTimeout: time.Second,
	}
}

// Load overlays the file at path onto cfg. The format is picked from the
// extension.
func (c *Config) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), c); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported config format %q", ext)
	}
	return nil
}

// LoadEnvFile exports the variables in path that are not already set. A
// missing file is an error only when required is true.
func LoadEnvFile(path string, required bool) error {
	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if !required && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load env file: %w", err)
}

// ApplyEnv overlays DEVSERVE_* variables, e.g. DEVSERVE_PORT or
// DEVSERVE_LOG_FILE.
func (c *Config) ApplyEnv() error {
	if errs := struct2env.SetFromEnv(EnvPrefix, c); len(errs) > 0 {
		return fmt.Errorf("environment: %w", errors.Join(errs...))
	}
	return nil
}

// Validate checks the port, the log level and that Dir is a directory.
func (c Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	info, err := os.Stat(c.Dir)
	if err != nil {
		return fmt.Errorf("serving root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("serving root %s is not a directory", c.Dir)
	}
	return nil
}

// Level returns the parsed log level, falling back to info.
func (c Config) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}
