// CLASSIFICATION: COMMUNITY
// Filename: config_test.go v0.1
// Author: Lukas Bower
// Date Modified: 2026-10-19
// License: SPDX-License-Identifier: MIT OR Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "127.0.0.1", cfg.Bind)
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "src", cfg.Dir)
	assert.Equal(t, logrus.InfoLevel, cfg.Level())
	assert.False(t, cfg.Watch)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "devserve.toml", `
bind = "0.0.0.0"
port = 9001
dir = "public"
watch = true
shutdown_timeout = "3s"
`)
	cfg := Default()
	require.NoError(t, cfg.Load(path))
	assert.Equal(t, "0.0.0.0", cfg.Bind)
	assert.Equal(t, 9001, cfg.Port)
	assert.Equal(t, "public", cfg.Dir)
	assert.True(t, cfg.Watch)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "info", cfg.LogLevel, "unset keys keep defaults")
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "devserve.yml", "port: 9002\nlog_level: debug\nlog_file: /tmp/access.log\n")
	cfg := Default()
	require.NoError(t, cfg.Load(path))
	assert.Equal(t, 9002, cfg.Port)
	assert.Equal(t, logrus.DebugLevel, cfg.Level())
	assert.Equal(t, "/tmp/access.log", cfg.LogFile)
	assert.Equal(t, "127.0.0.1", cfg.Bind)
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	path := writeFile(t, t.TempDir(), "devserve.ini", "port=1")
	cfg := Default()
	assert.Error(t, cfg.Load(path))
}

func TestLoadMissingFile(t *testing.T) {
	cfg := Default()
	assert.Error(t, cfg.Load(filepath.Join(t.TempDir(), "absent.toml")))
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("DEVSERVE_PORT", "9100")
	t.Setenv("DEVSERVE_LOG_FILE", "access.log")
	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, "access.log", cfg.LogFile)
	assert.Equal(t, "src", cfg.Dir)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ".env", "DEVSERVE_DIR=assets\n")
	t.Setenv("DEVSERVE_DIR", "")
	os.Unsetenv("DEVSERVE_DIR")

	require.NoError(t, LoadEnvFile(path, true))
	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, "assets", cfg.Dir)

	assert.NoError(t, LoadEnvFile(filepath.Join(dir, "missing.env"), false))
	assert.Error(t, LoadEnvFile(filepath.Join(dir, "missing.env"), true))
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Dir = dir
	require.NoError(t, cfg.Validate())

	missing := cfg
	missing.Dir = filepath.Join(dir, "nope")
	assert.ErrorIs(t, missing.Validate(), os.ErrNotExist)

	file := cfg
	file.Dir = writeFile(t, dir, "plain.txt", "x")
	assert.Error(t, file.Validate())

	badPort := cfg
	badPort.Port = -1
	assert.Error(t, badPort.Validate())

	badLevel := cfg
	badLevel.LogLevel = "loud"
	assert.Error(t, badLevel.Validate())
}
