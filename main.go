// ollama-chat - an interactive terminal chat client for a local Ollama server.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jeranaias/ollama-chat/internal/cli"
	"github.com/jeranaias/ollama-chat/internal/commands"
	"github.com/jeranaias/ollama-chat/internal/config"
	"github.com/jeranaias/ollama-chat/internal/logger"
	"github.com/jeranaias/ollama-chat/internal/ollama"
	"github.com/jeranaias/ollama-chat/internal/router"
	"github.com/jeranaias/ollama-chat/internal/session"
	"github.com/jeranaias/ollama-chat/internal/tools"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// flags holds the command-line overrides. Empty values leave the config alone.
type flags struct {
	configPath string
	model      string
	url        string
	noStream   bool
	logLevel   string
	logFile    string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags

	root := &cobra.Command{
		Use:           "ollama-chat",
		Short:         "Chat with a local Ollama model from the terminal",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(f)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return err
			}
			if err := run(cmd.Context(), cfg); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return err
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&f.configPath, "config", "", "config file (default ~/.ollama-chat/config.toml)")
	root.Flags().StringVarP(&f.model, "model", "m", "", "model name")
	root.Flags().StringVar(&f.url, "url", "", "Ollama server URL")
	root.Flags().BoolVar(&f.noStream, "no-stream", false, "wait for the full reply instead of streaming")
	root.Flags().StringVar(&f.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.Flags().StringVar(&f.logFile, "log-file", "", "write logs to this file instead of stderr")

	root.AddCommand(newInitCmd(&f))
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ollama-chat %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
		},
	})

	return root
}

func newInitCmd(f *flags) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := writeDefaultConfig(f.configPath, force)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

// writeDefaultConfig saves the defaults to path, or to config.toml in the
// config directory when path is empty.
func writeDefaultConfig(path string, force bool) (string, error) {
	if path == "" {
		dir, err := config.Dir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(dir, "config.toml")
	}
	if _, err := os.Stat(path); err == nil && !force {
		return path, fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	return path, config.SaveTOML(config.Default(), path)
}

// loadConfig reads the config file, then applies flag overrides on top.
func loadConfig(f flags) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if f.configPath != "" {
		cfg, err = config.LoadFromPath(f.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	applyFlags(cfg, f)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

func applyFlags(cfg *config.Config, f flags) {
	if f.model != "" {
		cfg.Model = f.model
	}
	if f.url != "" {
		cfg.ServerURL = f.url
	}
	if f.noStream {
		cfg.Stream = false
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if f.logFile != "" {
		cfg.Log.File = f.logFile
	}
}

// run wires the session and starts the interactive loop.
func run(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if err := logger.Configure(cfg.Log.Level, cfg.Log.File); err != nil {
		return err
	}
	defer logger.Close()

	if !cfg.UI.Color {
		cli.DisableColors()
	}
	cli.ApplyColorProfile()

	timeout, err := cfg.Timeout()
	if err != nil {
		return err
	}

	sess, err := session.New(cfg.Model, cfg.ServerURL)
	if err != nil {
		return err
	}
	logger.Info("session started", "id", sess.ID, "model", sess.Model, "url", sess.ServerURL, "dir", sess.CurrentPath)

	client := ollama.NewClientWithConfig(&ollama.ClientConfig{
		BaseURL: sess.ServerURL,
		Timeout: timeout,
	})

	out := os.Stdout
	responder := router.NewResponder(client, sess, out)
	dispatcher := cli.NewDispatcher(sess, responder, tools.NewUnsafeShell(cfg.Shell.Editor), out)
	dispatcher.Stream = cfg.Stream
	if cfg.UI.Markdown && cli.IsStdoutTTY() && cli.ColorsEnabled() {
		if renderer, err := cli.NewMarkdownRenderer(cli.GetTerminalWidth()); err == nil {
			dispatcher.Markdown = renderer
		} else {
			logger.Warn("markdown renderer unavailable", "err", err)
		}
	}

	historyFile, ok := cfg.HistoryPath()
	if ok && cfg.HistoryFile == "" {
		if err := config.EnsureDir(); err != nil {
			logger.Debug("config directory", "err", err)
			historyFile = ""
		}
	}
	input := cli.NewLinerInput(commands.NewCompleter(sess), historyFile)
	defer input.Close()

	app := cli.NewApp(sess, dispatcher, input, out)
	app.Prober = client

	err = app.Run(ctx)
	logger.Info("session ended",
		"id", sess.ID,
		"duration", session.FormatDuration(sess.Duration()),
		"entries", sess.Transcript.Len(),
		"failures", sess.Transcript.Failures())
	return err
}
