// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads ollama-chat settings.
//
// Sources, lowest precedence first:
//   - built-in defaults (model "lillyv2", server http://localhost:11434)
//   - ~/.ollama-chat/config.toml, or config.json when no TOML file exists
//   - ~/.ollama-chat/.env (never overrides variables already in the environment)
//   - OLLAMA_CHAT_* environment variables
//
// Command-line flags are applied on top by the caller.
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	client := ollama.NewClientWithConfig(&ollama.ClientConfig{BaseURL: cfg.ServerURL})
package config
