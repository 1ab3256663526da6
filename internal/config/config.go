// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the complete ollama-chat configuration.
type Config struct {
	// Model is the model identifier sent with every generate request.
	Model string `toml:"model" json:"model"`

	// ServerURL is the base address of the inference server.
	ServerURL string `toml:"server_url" json:"server_url"`

	// Stream selects NDJSON streaming (true) or a single buffered reply.
	Stream bool `toml:"stream" json:"stream"`

	// RequestTimeout bounds buffered requests, e.g. "10m". "0" disables it.
	// Streaming requests are bounded only by the interrupt key.
	RequestTimeout string `toml:"request_timeout" json:"request_timeout"`

	// HistoryFile stores line-editor input history. Empty means the default
	// location in the config directory; "-" disables persistence.
	HistoryFile string `toml:"history_file" json:"history_file"`

	UI    UIConfig    `toml:"ui" json:"ui"`
	Shell ShellConfig `toml:"shell" json:"shell"`
	Log   LogConfig   `toml:"log" json:"log"`
}

// UIConfig controls terminal presentation.
type UIConfig struct {
	// Markdown renders buffered replies through glamour when stdout is a TTY.
	Markdown bool `toml:"markdown" json:"markdown"`
	// Color enables lipgloss styling. NO_COLOR still wins.
	Color bool `toml:"color" json:"color"`
}

// ShellConfig controls external process launches.
type ShellConfig struct {
	// Editor is the program used by the "nano" command.
	Editor string `toml:"editor" json:"editor"`
}

// LogConfig controls diagnostics.
type LogConfig struct {
	Level string `toml:"level" json:"level"`
	File  string `toml:"file" json:"file"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

const (
	DefaultModel          = "lillyv2"
	DefaultServerURL      = "http://localhost:11434"
	DefaultRequestTimeout = "10m"
)

// DefaultEditor returns the platform editor: notepad on Windows, nano elsewhere.
func DefaultEditor() string {
	if runtime.GOOS == "windows" {
		return "notepad"
	}
	return "nano"
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Model:          DefaultModel,
		ServerURL:      DefaultServerURL,
		Stream:         true,
		RequestTimeout: DefaultRequestTimeout,
		UI: UIConfig{
			Markdown: true,
			Color:    true,
		},
		Shell: ShellConfig{
			Editor: DefaultEditor(),
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// Dir returns the configuration directory, ~/.ollama-chat.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".ollama-chat"), nil
}

// EnsureDir creates the configuration directory if needed.
func EnsureDir() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// HistoryPath resolves where input history is kept. ok is false when
// persistence is disabled.
func (c *Config) HistoryPath() (path string, ok bool) {
	switch c.HistoryFile {
	case "-":
		return "", false
	case "":
		dir, err := Dir()
		if err != nil {
			return "", false
		}
		return filepath.Join(dir, "input_history"), true
	default:
		return c.HistoryFile, true
	}
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the config directory: config.toml, else config.json, else
// defaults. The .env file and environment overrides are applied in every case.
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		cfg := Default()
		cfg.ApplyEnvOverrides()
		return cfg, cfg.Validate()
	}

	for _, name := range []string{"config.toml", "config.json"} {
		path := filepath.Join(dir, name)
		if _, statErr := os.Stat(path); statErr == nil {
			return LoadFromPath(path)
		}
	}

	cfg := Default()
	if err := loadDotEnv(dir); err != nil {
		return nil, err
	}
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath reads one config file. Files ending in .json are decoded as
// JSON, everything else as TOML. Keys missing from the file keep defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(strings.ToLower(path), ".json") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	} else {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	}

	if err := loadDotEnv(filepath.Dir(path)); err != nil {
		return nil, err
	}
	cfg.ApplyEnvOverrides()
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// loadDotEnv exports dir/.env into the process environment.
func loadDotEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// fillDefaults restores values a config file blanked out.
func (c *Config) fillDefaults() {
	d := Default()
	if c.Model == "" {
		c.Model = d.Model
	}
	if c.ServerURL == "" {
		c.ServerURL = d.ServerURL
	}
	if c.RequestTimeout == "" {
		c.RequestTimeout = d.RequestTimeout
	}
	if c.Shell.Editor == "" {
		c.Shell.Editor = d.Shell.Editor
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}

// ApplyEnvOverrides applies environment variables on top of c.
//
// Supported variables:
//   - OLLAMA_CHAT_MODEL
//   - OLLAMA_CHAT_URL
//   - OLLAMA_CHAT_STREAM ("1"/"true" or "0"/"false")
//   - OLLAMA_CHAT_EDITOR
//   - OLLAMA_CHAT_LOG_LEVEL
//   - NO_COLOR (any value disables colour)
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("OLLAMA_CHAT_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("OLLAMA_CHAT_URL"); v != "" {
		c.ServerURL = v
	}
	if v := os.Getenv("OLLAMA_CHAT_STREAM"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Stream = b
		}
	}
	if v := os.Getenv("OLLAMA_CHAT_EDITOR"); v != "" {
		c.Shell.Editor = v
	}
	if v := os.Getenv("OLLAMA_CHAT_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if os.Getenv("NO_COLOR") != "" {
		c.UI.Color = false
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError describes one invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors collects every ValidationError found.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if strings.TrimSpace(c.Model) == "" {
		errs = append(errs, ValidationError{Field: "model", Message: "must not be empty"})
	}

	if u, err := url.Parse(c.ServerURL); err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		errs = append(errs, ValidationError{
			Field:   "server_url",
			Message: fmt.Sprintf("%q is not an http(s) URL", c.ServerURL),
		})
	}

	if _, err := c.Timeout(); err != nil {
		errs = append(errs, ValidationError{Field: "request_timeout", Message: err.Error()})
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "warning", "error", "fatal":
	default:
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("unknown level %q", c.Log.Level),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Timeout parses RequestTimeout. Zero means no timeout.
func (c *Config) Timeout() (time.Duration, error) {
	s := strings.TrimSpace(c.RequestTimeout)
	if s == "" || s == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", c.RequestTimeout)
	}
	if d < 0 {
		return 0, errors.New("must not be negative")
	}
	return d, nil
}

// =============================================================================
// SAVING
// =============================================================================

// SaveTOML writes c to path with a short header comment.
func SaveTOML(c *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("create config file: %w", err)
	}
	defer f.Close()

	fmt.Fprintln(f, "# ollama-chat configuration")
	fmt.Fprintln(f, "")
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
