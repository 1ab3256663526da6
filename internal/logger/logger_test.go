// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"", log.WarnLevel},
		{"debug", log.DebugLevel},
		{"INFO", log.InfoLevel},
		{" warning ", log.WarnLevel},
		{"error", log.ErrorLevel},
	}
	for _, tc := range tests {
		got, err := ParseLevel(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestConfigure_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat.log")
	require.NoError(t, Configure("info", path))
	t.Cleanup(func() {
		Close()
		Logger = newLogger(os.Stderr, log.WarnLevel)
	})

	Info("probe", "component", "test")
	Debug("hidden")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "probe")
	assert.Contains(t, string(data), "component=test")
	assert.NotContains(t, string(data), "hidden")
}

func TestConfigure_BadLevel(t *testing.T) {
	assert.Error(t, Configure("loud", ""))
}
