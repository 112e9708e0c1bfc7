// Copyright 2026 The Scenepanel Authors
// SPDX-License-Identifier: Apache-2.0

// scenepanel is a terminal scene-outline panel for an embedding 3D
// host. It renders the host's scene hierarchy, serves a cascading
// context menu of scene operations, and stays live through the host's
// push events.
//
// Two modes of operation:
//
// Socket mode (default): connects to the host's Unix event socket and
// drives every operation over the legacy event channel, with
// per-call response correlation.
//
// Mock mode (--mock): runs against a built-in in-process host with a
// small demo scene. No host required — useful for development and for
// exercising the panel's full surface offline.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/scenepanel/scenepanel/hostlink"
	"github.com/scenepanel/scenepanel/lib/config"
	"github.com/scenepanel/scenepanel/lib/mockhost"
	"github.com/scenepanel/scenepanel/lib/version"
	"github.com/scenepanel/scenepanel/panel"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var configPath string
	var socketPath string
	var mock bool
	var logOutput string
	var showVersion bool

	flagSet := pflag.NewFlagSet("scenepanel", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to scenepanel.yaml (default: $SCENEPANEL_CONFIG, or built-in defaults)")
	flagSet.StringVar(&socketPath, "socket", "", "host event socket path (overrides config)")
	flagSet.BoolVar(&mock, "mock", false, "run against the built-in mock host")
	flagSet.StringVar(&logOutput, "log-output", "", "write JSON log records to this file (overrides config)")
	flagSet.BoolVar(&showVersion, "version", false, "print version and exit")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if showVersion {
		fmt.Println("scenepanel " + version.Full())
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if socketPath != "" {
		cfg.Host.SocketPath = socketPath
	}
	if mock {
		cfg.Host.Mock = true
	}
	if logOutput != "" {
		cfg.Log.File = logOutput
		cfg.Log.Format = "json"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, closeLogger, err := buildLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLogger()

	applyColorProfile(cfg.Panel.ColorProfile)

	timeout, err := cfg.Host.Timeout()
	if err != nil {
		return err
	}
	bridge := &hostlink.Bridge{CallTimeout: timeout, Logger: logger}

	var channel *hostlink.SocketChannel
	if cfg.Host.Mock {
		host := mockhost.New(logger)
		host.SetNotify(bridge.Notify)
		bridge.AttachMethodTable(host)
	} else {
		channel, err = hostlink.DialSocket(cfg.Host.SocketPath, logger)
		if err != nil {
			return err
		}
		defer channel.Close()
		bridge.AttachEventChannel(channel)
	}

	model := panel.NewModel(bridge, panel.Options{
		Title:         cfg.Panel.Title,
		HideShortcuts: !cfg.Panel.ShowShortcuts,
		Logger:        logger,
	})

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())

	// A dead host connection takes the panel down cleanly rather than
	// leaving a frozen UI.
	if channel != nil {
		go func() {
			<-channel.Done()
			logger.Warn("host connection closed, exiting")
			program.Quit()
		}()
	}

	_, err = program.Run()
	return err
}

// loadConfig resolves the configuration source: an explicit --config
// path, then SCENEPANEL_CONFIG, then built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	if os.Getenv("SCENEPANEL_CONFIG") != "" {
		return config.Load()
	}
	return config.Default(), nil
}

// buildLogger assembles the slog logger from the log section. The
// panel owns the terminal while running, so terminal output only makes
// sense for "text" on an actual tty; everything else goes to the
// configured file (or is discarded to keep the alt screen intact).
func buildLogger(cfg config.LogConfig) (*slog.Logger, func(), error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, nil, err
	}
	options := &slog.HandlerOptions{Level: level}

	var writer io.Writer
	closer := func() {}
	switch {
	case cfg.File != "":
		file, err := os.Create(cfg.File)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file %s: %w", cfg.File, err)
		}
		writer = file
		closer = func() { file.Close() }
	default:
		writer = io.Discard
	}

	format := cfg.Format
	if format == "auto" {
		if term.IsTerminal(int(os.Stderr.Fd())) {
			format = "text"
		} else {
			format = "json"
		}
	}

	var handler slog.Handler
	if format == "text" {
		handler = slog.NewTextHandler(writer, options)
	} else {
		handler = slog.NewJSONHandler(writer, options)
	}
	return slog.New(handler), closer, nil
}

// applyColorProfile pins lipgloss/termenv color handling when the
// config asks for something other than detection.
func applyColorProfile(profile string) {
	switch profile {
	case "truecolor":
		lipgloss.SetColorProfile(termenv.TrueColor)
	case "ansi256":
		lipgloss.SetColorProfile(termenv.ANSI256)
	case "ansi":
		lipgloss.SetColorProfile(termenv.ANSI)
	case "none":
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `scenepanel — terminal scene-outline panel for an embedding 3D host.

By default, connects to the host's event socket (host.socket_path in
the config file, or --socket). Use --mock to run against the built-in
demo scene without a host.

Usage:
  scenepanel [flags]

Examples:
  # Connect to a host socket
  scenepanel --socket /run/user/1000/scenepanel.sock

  # Run the demo scene
  scenepanel --mock

  # Use a config file and capture logs
  scenepanel --config ~/scenepanel.yaml --log-output /tmp/scenepanel.log

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
