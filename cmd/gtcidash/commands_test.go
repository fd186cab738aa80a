package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/nao1215/gtcidash/internal/config"
	"github.com/nao1215/gtcidash/internal/field"
	"github.com/nao1215/gtcidash/internal/model"
	"github.com/nao1215/gtcidash/internal/snapshot"
)

// testEnv is an isolated database directory plus config file.
type testEnv struct {
	dir    string
	config string
}

// newTestEnv creates an environment whose config file holds content.
func newTestEnv(t *testing.T, content string) *testEnv {
	t.Helper()

	dir := t.TempDir()
	cfg := filepath.Join(dir, "gtcidash.yaml")
	if err := os.WriteFile(cfg, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return &testEnv{dir: dir, config: cfg}
}

// run executes the root command with args and returns stdout.
func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", e.config, "--db-dir", e.dir}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// mustRun executes the root command and fails the test on error.
func (e *testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()

	out, err := e.run(t, args...)
	if err != nil {
		t.Fatalf("gtcidash %s: %v", strings.Join(args, " "), err)
	}
	return out
}

// TestNoteCommands tests note set and show.
func TestNoteCommands(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, "")

	env.mustRun(t, "note", "set", "overview", "rank", "slipped")
	if got := env.mustRun(t, "note", "show", "overview"); got != "rank slipped\n" {
		t.Errorf("got %q, expected the note", got)
	}
	if got := env.mustRun(t, "note", "show"); !strings.Contains(got, "overview: rank slipped") {
		t.Errorf("got %q, expected the note listing", got)
	}
	if _, err := env.run(t, "note", "show", "budget"); err == nil {
		t.Error("expected an error for a missing note")
	}
}

// TestRateCommands tests rate set and show.
func TestRateCommands(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, "")

	env.mustRun(t, "rate", "set", "indicator-1", "Critical")
	if got := env.mustRun(t, "rate", "show", "indicator-1"); got != "critical\n" {
		t.Errorf("got %q, expected critical", got)
	}

	_, err := env.run(t, "rate", "set", "indicator-1", "urgent")
	if !errors.Is(err, model.ErrInvalidRating) {
		t.Errorf("expected ErrInvalidRating, got %v", err)
	}

	if got := env.mustRun(t, "rate", "set", "indicator-1", "select"); !strings.Contains(got, "Cleared") {
		t.Errorf("got %q, expected the rating to be cleared", got)
	}
	if got := env.mustRun(t, "rate", "show"); got != "No ratings\n" {
		t.Errorf("got %q, expected no ratings", got)
	}
}

// TestViewCommands tests view set and show, plus the configured default.
func TestViewCommands(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, "defaultView: reforms\n")

	if got := env.mustRun(t, "view", "show"); !strings.Contains(got, "* reforms") {
		t.Errorf("expected the configured default view to be active, got %q", got)
	}

	env.mustRun(t, "view", "set", "Budget")
	if got := env.mustRun(t, "view", "show"); !strings.Contains(got, "* budget") {
		t.Errorf("expected budget to be active, got %q", got)
	}

	if _, err := env.run(t, "view", "set", "settings"); !errors.Is(err, model.ErrInvalidView) {
		t.Errorf("expected ErrInvalidView, got %v", err)
	}
}

var snapshotIDPattern = regexp.MustCompile(`id: (\d+)`)

// TestSnapshotCommands tests the snapshot lifecycle.
func TestSnapshotCommands(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, "")

	env.mustRun(t, "note", "set", "overview", "before")
	env.mustRun(t, "rate", "set", "indicator-2", "strength")

	out := env.mustRun(t, "snapshot", "save", "Q3", "review")
	if !strings.Contains(out, snapshot.SavedMessage) {
		t.Errorf("expected confirmation, got %q", out)
	}
	match := snapshotIDPattern.FindStringSubmatch(out)
	if match == nil {
		t.Fatalf("expected an id in %q", out)
	}
	id := match[1]
	if _, err := strconv.ParseInt(id, 10, 64); err != nil {
		t.Fatalf("bad id %q", id)
	}

	if got := env.mustRun(t, "snapshot", "list"); !strings.Contains(got, "Q3 review") || !strings.Contains(got, "1 notes, 1 ratings") {
		t.Errorf("unexpected list %q", got)
	}

	env.mustRun(t, "note", "set", "overview", "after")
	env.mustRun(t, "rate", "set", "indicator-2", "unset")
	env.mustRun(t, "view", "set", "budget")

	env.mustRun(t, "snapshot", "load", id)
	if got := env.mustRun(t, "note", "show", "overview"); got != "before\n" {
		t.Errorf("expected note to be restored, got %q", got)
	}
	if got := env.mustRun(t, "rate", "show", "indicator-2"); got != "strength\n" {
		t.Errorf("expected rating to be restored, got %q", got)
	}
	if got := env.mustRun(t, "view", "show"); !strings.Contains(got, "* overview") {
		t.Errorf("expected view to be restored, got %q", got)
	}

	if got := env.mustRun(t, "snapshot", "delete", id); !strings.Contains(got, "Deleted") {
		t.Errorf("unexpected delete output %q", got)
	}
	if got := env.mustRun(t, "snapshot", "delete", id); !strings.Contains(got, "No snapshot") {
		t.Errorf("expected a no-op delete, got %q", got)
	}
	if got := env.mustRun(t, "snapshot", "list"); got != "No snapshots\n" {
		t.Errorf("expected no snapshots, got %q", got)
	}
}

// TestSnapshotCommandErrors tests user input errors of the snapshot commands.
func TestSnapshotCommandErrors(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, "")

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "empty name", args: []string{"snapshot", "save", "  "}, wantErr: snapshot.ErrEmptyName},
		{name: "load missing", args: []string{"snapshot", "load", "1"}, wantErr: snapshot.ErrNotFound},
		{name: "bad id", args: []string{"snapshot", "load", "abc"}, wantErr: strconv.ErrSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := env.run(t, tt.args...); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

// TestExportImportCommands tests that an export can be imported elsewhere.
func TestExportImportCommands(t *testing.T) {
	t.Parallel()

	src := newTestEnv(t, "")
	src.mustRun(t, "note", "set", "pillars", "strong", "enablers")
	src.mustRun(t, "rate", "set", "indicator-3", "concern")
	src.mustRun(t, "snapshot", "save", "baseline")

	exportPath := filepath.Join(src.dir, "out", "data.json")
	if got := src.mustRun(t, "export", "-o", exportPath, "--pretty"); !strings.Contains(got, "Exported to") {
		t.Errorf("unexpected export output %q", got)
	}

	data, err := os.ReadFile(exportPath)
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("export is not JSON: %v", err)
	}
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if strings.Join(keys, ",") != "exportDate,notes,ratings,snapshots,version" {
		t.Errorf("unexpected export keys %v", keys)
	}

	dst := newTestEnv(t, "")
	out := dst.mustRun(t, "import", exportPath)
	if !strings.Contains(out, "Data imported successfully!") || !strings.Contains(out, "1 notes, 1 ratings, 1 snapshots") {
		t.Errorf("unexpected import output %q", out)
	}
	if got := dst.mustRun(t, "note", "show", "pillars"); got != "strong enablers\n" {
		t.Errorf("got %q after import", got)
	}
	if got := dst.mustRun(t, "snapshot", "list"); !strings.Contains(got, "baseline") {
		t.Errorf("expected imported snapshot, got %q", got)
	}
}

// TestExportDefaultFile tests that JSON goes to the configured export file.
func TestExportDefaultFile(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, "")
	target := filepath.Join(env.dir, "configured.json")
	if err := os.WriteFile(env.config, []byte("exportFile: "+target+"\n"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	env.mustRun(t, "export")
	if _, err := os.Stat(target); err != nil {
		t.Errorf("expected export at %s: %v", target, err)
	}
}

// TestExportFormats tests the human-readable export formats.
func TestExportFormats(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, "")
	env.mustRun(t, "rate", "set", "indicator-1", "monitor")

	if got := env.mustRun(t, "export", "--markdown"); !strings.Contains(got, "Report generated by gtcidash") {
		t.Errorf("expected a markdown report on stdout, got %q", got)
	}
	if got := env.mustRun(t, "export", "--format", "text"); !strings.Contains(got, "Talent Availability") {
		t.Errorf("expected a text report on stdout, got %q", got)
	}
	if got := env.mustRun(t, "export", "-o", "-"); !strings.Contains(got, `"version":1`) {
		t.Errorf("expected compact JSON on stdout, got %q", got)
	}
	if _, err := env.run(t, "export", "--format", "xml"); err == nil {
		t.Error("expected an error for an unknown format")
	}
	if _, err := env.run(t, "export", "--markdown", "--format", "text"); err == nil {
		t.Error("expected an error for conflicting formats")
	}
}

// TestImportErrors tests rejected import files.
func TestImportErrors(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, "")
	bad := filepath.Join(env.dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"ratings":{"indicator-1":"urgent"}}`), 0600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if _, err := env.run(t, "import", bad); !errors.Is(err, model.ErrInvalidRating) {
		t.Errorf("expected ErrInvalidRating, got %v", err)
	}
	if _, err := env.run(t, "import", filepath.Join(env.dir, "missing.json")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

// TestScorecardCommands tests scorecard show and edit.
func TestScorecardCommands(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, "")

	out := env.mustRun(t, "scorecard", "edit", "--overallRank=41", "--globalTCI", "64.1")
	if !strings.Contains(out, field.ScorecardSavedMessage) {
		t.Errorf("expected confirmation, got %q", out)
	}
	show := env.mustRun(t, "scorecard", "show")
	for _, want := range []string{"41", "64.1", "62.5"} {
		if !strings.Contains(show, want) {
			t.Errorf("expected %q in %q", want, show)
		}
	}

	_, err := env.run(t, "scorecard", "edit", "--enablers=high")
	var invalid *field.InvalidInputError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidInputError, got %v", err)
	}
	if len(invalid.Fields) != 1 || invalid.Fields[0] != model.ScorecardEnablers {
		t.Errorf("unexpected invalid fields %v", invalid.Fields)
	}

	if _, err := env.run(t, "scorecard", "edit"); !errors.Is(err, errNoFields) {
		t.Errorf("expected errNoFields, got %v", err)
	}
}

// TestIndicatorCommands tests indicator list and edit.
func TestIndicatorCommands(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, "")

	if got := env.mustRun(t, "indicator", "edit", "1", "70"); !strings.Contains(got, field.IndicatorSavedMessage) {
		t.Errorf("expected confirmation, got %q", got)
	}
	if got := env.mustRun(t, "indicator", "edit", "1", "lots"); !strings.Contains(got, "unchanged") {
		t.Errorf("expected the value to be kept, got %q", got)
	}
	list := env.mustRun(t, "indicator", "list")
	if !strings.Contains(list, "Talent Availability") || !strings.Contains(list, "70") {
		t.Errorf("unexpected list %q", list)
	}

	if _, err := env.run(t, "indicator", "edit", "9", "5"); !errors.Is(err, field.ErrUnknownField) {
		t.Errorf("expected ErrUnknownField, got %v", err)
	}
	if _, err := env.run(t, "indicator", "edit", "one", "5"); err == nil {
		t.Error("expected an error for a non-numeric id")
	}
}

// TestSectionCommands tests section edit and show.
func TestSectionCommands(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, "")

	if got := env.mustRun(t, "section", "edit", "pillars", "three", "pillars", "--title", "Pillars"); !strings.Contains(got, "Changes saved!") {
		t.Errorf("expected confirmation, got %q", got)
	}
	if got := env.mustRun(t, "section", "show", "pillars"); got != "three pillars\n" {
		t.Errorf("got %q", got)
	}
	if got := env.mustRun(t, "section", "show"); !strings.Contains(got, "pillars: three pillars") {
		t.Errorf("got %q", got)
	}
	if got := env.mustRun(t, "section", "show", "reforms"); got != "(No content)\n" {
		t.Errorf("got %q", got)
	}
}

// TestKeysCommand tests the raw key listing.
func TestKeysCommand(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, "")
	env.mustRun(t, "note", "set", "overview", "x")

	out := env.mustRun(t, "keys")
	if !strings.Contains(out, "KEY") || !strings.Contains(out, "notes") {
		t.Errorf("unexpected keys output %q", out)
	}
	if out := env.mustRun(t, "keys", "snap"); strings.Contains(out, "notes") {
		t.Errorf("expected prefix filter, got %q", out)
	}
}

// TestConfigErrors tests configuration problems reported by data commands.
func TestConfigErrors(t *testing.T) {
	t.Parallel()

	t.Run("explicit config missing", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		cmd := NewRootCmd()
		cmd.SetOut(&out)
		cmd.SetErr(&out)
		cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "nope.yaml"), "note", "show"})
		if err := cmd.Execute(); !errors.Is(err, config.ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("invalid setting", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "notifyDelay: later\n")
		if _, err := env.run(t, "note", "show"); !errors.Is(err, config.ErrInvalidNotifyDelay) {
			t.Errorf("expected ErrInvalidNotifyDelay, got %v", err)
		}
	})
}
