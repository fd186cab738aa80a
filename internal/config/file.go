package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nao1215/gtcidash/internal/model"
)

// File represents the structure of a .gtcidash configuration file.
// Every field is optional; unset fields keep the value already in Config.
//
// Example:
//
//	dbDir: ~/gtci
//	notifyDelay: 5s
//	defaultView: indicators
//	exportFile: gtci-dashboard-data.json
//	timestampLayout: "2006-01-02 15:04"
//	prettyExport: true
type File struct {
	DBDir           string `yaml:"dbDir"`
	NotifyDelay     string `yaml:"notifyDelay"`
	DefaultView     string `yaml:"defaultView"`
	ExportFile      string `yaml:"exportFile"`
	TimestampLayout string `yaml:"timestampLayout"`
	PrettyExport    *bool  `yaml:"prettyExport"`
	Verbose         *bool  `yaml:"verbose"`
}

// ApplyTo copies the settings present in the file onto cfg.
func (f *File) ApplyTo(cfg *Config) error {
	if f.DBDir != "" {
		cfg.DBDir = expandHome(f.DBDir)
	}
	if f.NotifyDelay != "" {
		d, err := time.ParseDuration(f.NotifyDelay)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidNotifyDelay, f.NotifyDelay)
		}
		cfg.NotifyDelay = d
	}
	if f.DefaultView != "" {
		v, err := model.ParseView(f.DefaultView)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidDefaultView, err)
		}
		cfg.DefaultView = v
	}
	if f.ExportFile != "" {
		cfg.ExportFile = expandHome(f.ExportFile)
	}
	if f.TimestampLayout != "" {
		cfg.TimestampLayout = f.TimestampLayout
	}
	if f.PrettyExport != nil {
		cfg.PrettyExport = *f.PrettyExport
	}
	if f.Verbose != nil {
		cfg.Verbose = *f.Verbose
	}
	return nil
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
