package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/nao1215/gtcidash/internal/config"
	"github.com/nao1215/gtcidash/internal/dashboard"
	"github.com/nao1215/gtcidash/internal/database"
	seclog "github.com/nao1215/gtcidash/internal/log"
	"github.com/nao1215/gtcidash/internal/notify"
	"github.com/spf13/cobra"
)

// app bundles what every data command needs: the database, the relay
// that carries confirmations, and the loaded dashboard.
type app struct {
	cfg    *config.Config
	db     *database.KVDB
	relay  *notify.Relay
	dash   *dashboard.Dashboard
	logger *slog.Logger
}

// boolFlag retrieves a flag from the command or the root's persistent flags.
func boolFlag(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		v, err = cmd.Root().PersistentFlags().GetBool(name)
		if err != nil {
			return false
		}
	}
	return v
}

// stringFlag retrieves a flag from the command or the root's persistent flags.
func stringFlag(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		v, err = cmd.Root().PersistentFlags().GetString(name)
		if err != nil {
			return ""
		}
	}
	return v
}

// buildConfig creates a Config from the config file and the global flags.
// If the user explicitly specified a config file path, a missing file is an
// error. Otherwise a missing file silently yields the defaults.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(stringFlag(cmd, "config"))
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("%w: %s", err, stringFlag(cmd, "config"))
		}
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if dir := stringFlag(cmd, "db-dir"); dir != "" {
		cfg.DBDir = dir
	}
	if boolFlag(cmd, "verbose") {
		cfg.Verbose = true
	}
	if boolFlag(cmd, "log-content") {
		cfg.LogContent = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

// setupLogger creates the structured logger for a command run.
// Logs go to stderr so they never mix with command output.
func setupLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	return seclog.NewSecureLogger(w, cfg.Verbose, seclog.WithContentVisible(cfg.LogContent))
}

// openApp loads the configuration, opens the database and hydrates the
// dashboard. The caller must Close the returned app.
func openApp(cmd *cobra.Command) (*app, error) {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := setupLogger(cmd.ErrOrStderr(), cfg)

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	relay := notify.NewRelay(
		notify.WithDelay(cfg.NotifyDelay),
		notify.WithLogger(logger.With("component", "notify")))

	dash := dashboard.New(db, relay,
		dashboard.WithLogger(logger),
		dashboard.WithTimestampLayout(cfg.TimestampLayout),
		dashboard.WithDefaultView(cfg.DefaultView))
	if err := dash.Load(cmd.Context()); err != nil {
		relay.Close()
		_ = db.Close()
		return nil, fmt.Errorf("failed to load dashboard state: %w", err)
	}

	logger.Debug("dashboard loaded", "db", db.Path(), "view", dash.ActiveView().String())
	return &app{cfg: cfg, db: db, relay: relay, dash: dash, logger: logger}, nil
}

// Close stops the relay and closes the database.
func (a *app) Close() error {
	a.relay.Close()
	return a.db.Close()
}

// printNotice writes the visible confirmation message, if any.
func (a *app) printNotice(w io.Writer) {
	if msg, ok := a.relay.Current(); ok {
		fmt.Fprintln(w, msg)
	}
}

// withApp runs fn with an opened app and closes it afterwards.
func withApp(cmd *cobra.Command, fn func(a *app) error) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(); cerr != nil {
			a.logger.Warn("failed to close database", "error", cerr)
		}
	}()
	return fn(a)
}
