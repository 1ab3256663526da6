// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/ollama-chat/internal/config"
)

func TestApplyFlags(t *testing.T) {
	cfg := config.Default()
	applyFlags(cfg, flags{
		model:    "mistral",
		url:      "http://gpu-box:11434",
		noStream: true,
		logLevel: "debug",
	})

	assert.Equal(t, "mistral", cfg.Model)
	assert.Equal(t, "http://gpu-box:11434", cfg.ServerURL)
	assert.False(t, cfg.Stream)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Empty(t, cfg.Log.File)
}

func TestApplyFlags_EmptyKeepsConfig(t *testing.T) {
	cfg := config.Default()
	applyFlags(cfg, flags{})
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	t.Setenv("OLLAMA_CHAT_MODEL", "")
	t.Setenv("OLLAMA_CHAT_STREAM", "")
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("model = \"llama3\"\nstream = true\n"), 0644))

	cfg, err := loadConfig(flags{configPath: path, noStream: true})
	require.NoError(t, err)
	assert.Equal(t, "llama3", cfg.Model)
	assert.False(t, cfg.Stream)

	cfg, err = loadConfig(flags{configPath: path, model: "phi3"})
	require.NoError(t, err)
	assert.Equal(t, "phi3", cfg.Model)
}

func TestLoadConfig_InvalidFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0644))

	_, err := loadConfig(flags{configPath: path, logLevel: "chatty"})
	require.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "ollama-chat "+Version)
}

func TestInitCommand(t *testing.T) {
	t.Setenv("OLLAMA_CHAT_MODEL", "")
	path := filepath.Join(t.TempDir(), "conf", "config.toml")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"init", "--config", path})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "Wrote "+path+"\n", out.String())

	cfg, err := config.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultModel, cfg.Model)

	_, err = writeDefaultConfig(path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = writeDefaultConfig(path, true)
	require.NoError(t, err)
}
