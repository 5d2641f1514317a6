// Package cmd holds the purbayanos command-line interface.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/PPRAMANIK62/purbayanos/internal/config"
	"github.com/PPRAMANIK62/purbayanos/internal/logging"
	"github.com/PPRAMANIK62/purbayanos/internal/metrics"
	"github.com/PPRAMANIK62/purbayanos/internal/snake"
	"github.com/PPRAMANIK62/purbayanos/internal/state"
	"github.com/PPRAMANIK62/purbayanos/internal/terminal"
	"github.com/PPRAMANIK62/purbayanos/internal/tui"
)

const Version = "2.0.0"

// ErrCommandFailed is returned by exec when the command printed an error.
// main exits non-zero without printing anything more.
var ErrCommandFailed = errors.New("command failed")

var (
	cfg *config.Config

	// Persistent flag values; they only override cfg when set.
	flagState       string
	flagLogLevel    string
	flagLogFormat   string
	flagLogFile     string
	flagMetricsAddr string
	flagNoSave      bool

	stopMetrics context.CancelFunc = func() {}
)

var rootCmd = &cobra.Command{
	Use:   "purbayanos",
	Short: "PurbayanOS - a portfolio that pretends to be a Linux box",
	Long: `purbayanos - a simulated Linux terminal.

Explore a small virtual filesystem with familiar commands, hunt for the
seven hidden flags and play Snake.

Usage:
  purbayanos              Full-screen terminal
  purbayanos shell        Line-mode shell on the current terminal
  purbayanos exec <line>  Run one command and print its output
  purbayanos snake        Jump straight into Snake
  purbayanos reset        Forget history, flags and settings`,
	Version:            Version,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
	RunE:               runTUI,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagState, "state", "", "state file (default ~/.purbayanos.yaml)")
	pf.StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&flagLogFormat, "log-format", "", "log format: json, console")
	pf.StringVar(&flagLogFile, "log-file", "", "write logs to this file (logging is off otherwise)")
	pf.StringVar(&flagMetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	pf.BoolVar(&flagNoSave, "no-save", false, "do not write the state file")

	// Add subcommands
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(execCmd)
	rootCmd.AddCommand(snakeCmd)
	rootCmd.AddCommand(resetCmd)
}

// setup loads configuration, applies flag overrides and starts logging and
// the optional metrics listener.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfg, err = config.Load(); err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("state") {
		cfg.StatePath = flagState
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = flagLogFormat
	}
	if flags.Changed("log-file") {
		cfg.LogFile = flagLogFile
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr = flagMetricsAddr
	}
	if flags.Changed("no-save") {
		cfg.NoSave = flagNoSave
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := logging.Init(logging.Config{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		OutputPath: cfg.LogFile,
	}); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	logging.Debug("config loaded",
		logging.String("state", cfg.StatePath),
		logging.Bool("no_save", cfg.NoSave),
		logging.Int("history_limit", cfg.HistoryLimit),
		logging.Duration("snake_interval", cfg.SnakeInterval))

	if cfg.MetricsAddr != "" {
		ctx, cancel := context.WithCancel(cmd.Context())
		stopMetrics = cancel
		go func() {
			logging.Info("metrics listening", logging.String("addr", cfg.MetricsAddr))
			if err := metrics.Serve(ctx, cfg.MetricsAddr); err != nil {
				logging.Error("metrics server failed", logging.Err(err))
			}
		}()
	}
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	stopMetrics()
	_ = logging.Sync()
	return nil
}

// openSession loads the state file and starts a session over it. A corrupt
// file is logged and replaced with defaults rather than refusing to start.
func openSession() (*terminal.Session, error) {
	store, err := state.Load(cfg.StatePath, cfg.HistoryLimit)
	if err != nil {
		if store == nil {
			return nil, fmt.Errorf("load state: %w", err)
		}
		logging.Warn("state file unreadable, starting fresh",
			logging.String("path", cfg.StatePath), logging.Err(err))
	}
	if cfg.NoSave {
		store.Detach()
	}
	return terminal.New(store, terminal.WithSnakeOptions(snake.WithInterval(cfg.SnakeInterval))), nil
}

// terminalSize returns the size of stdout, or zeros when it isn't a terminal.
func terminalSize() (int, int) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0, 0
	}
	return w, h
}

func tuiOptions() tui.Options {
	w, h := terminalSize()
	return tui.Options{
		Width:    w,
		Height:   h,
		AutoSave: !cfg.NoSave,
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	session, err := openSession()
	if err != nil {
		return err
	}
	return tui.Run(session, tuiOptions())
}
