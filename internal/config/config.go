package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/nao1215/gtcidash/internal/model"
	"github.com/nao1215/gtcidash/internal/notify"
	"github.com/nao1215/gtcidash/internal/report"
	"github.com/nao1215/gtcidash/internal/snapshot"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "gtcidash"

	// DefaultNotifyDelay is how long a notification stays visible.
	DefaultNotifyDelay = notify.DefaultDelay

	// DefaultExportFile is the file name used by export when -o is not given.
	DefaultExportFile = report.DefaultFileName

	// DefaultTimestampLayout formats the display timestamp of a snapshot.
	DefaultTimestampLayout = snapshot.DefaultTimestampLayout
)

// Config holds all runtime settings for gtcidash.
// It is populated from defaults, the config file and CLI flags, then passed
// to the components that need it.
//
// Design decision: We use a single flat struct. The number of settings is
// small and every command reads only a handful of them.
type Config struct {
	// DBDir is the directory holding the SQLite key-value database.
	DBDir string

	// NotifyDelay is the auto-clear delay of the notification relay.
	NotifyDelay time.Duration

	// DefaultView is the tab shown when no active view was persisted.
	DefaultView model.View

	// ExportFile is the default output path of the export command.
	ExportFile string

	// TimestampLayout is the Go time layout used for snapshot timestamps.
	TimestampLayout string

	// Verbose enables debug logging.
	Verbose bool

	// PrettyExport indents the exported JSON document.
	PrettyExport bool

	// LogContent disables redaction of user-authored text in verbose logs.
	LogContent bool

	// ConfigFilePath is the explicit config file given with --config.
	// Empty means the default search locations are used.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because most defaults are non-zero.
func NewConfig() *Config {
	return &Config{
		DBDir:           XDGDataDir(),
		NotifyDelay:     DefaultNotifyDelay,
		DefaultView:     model.DefaultView,
		ExportFile:      DefaultExportFile,
		TimestampLayout: DefaultTimestampLayout,
	}
}

// XDGDataDir returns the XDG data directory for gtcidash.
// On Linux: ~/.local/share/gtcidash
// On macOS: ~/Library/Application Support/gtcidash
// On Windows: %LOCALAPPDATA%\gtcidash
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for gtcidash.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGCacheDir returns the XDG cache directory for gtcidash.
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	if c.DBDir == "" {
		return ErrEmptyDBDir
	}
	if c.NotifyDelay <= 0 {
		return ErrInvalidNotifyDelay
	}
	if !c.DefaultView.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidDefaultView, c.DefaultView)
	}
	if c.ExportFile == "" {
		return ErrEmptyExportFile
	}
	if c.TimestampLayout == "" {
		return ErrEmptyTimestampLayout
	}
	return nil
}
