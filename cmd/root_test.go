// Package cmd provides tests for CLI command handlers.
package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nibzard/colortasks/internal/config"
	"github.com/nibzard/colortasks/internal/task"
)

// setup isolates the CLI from the user's config and returns the data dir.
func setup(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("APPDATA", filepath.Join(home, "AppData"))
	for _, field := range config.Fields() {
		t.Setenv(config.EnvName(field), "")
	}
	{
		// os.Chdir with restore: equivalent of t.Chdir (Go 1.24+).
		wd, err := os.Getwd()
		if err != nil {
			t.Fatalf("getwd: %v", err)
		}
		if err := os.Chdir(t.TempDir()); err != nil {
			t.Fatalf("chdir: %v", err)
		}
		t.Cleanup(func() { _ = os.Chdir(wd) })
	}

	dataDir := filepath.Join(home, "data")
	t.Setenv("COLORTASKS_DATA_DIR", dataDir)
	return dataDir
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := Execute(context.Background(), args, IO{
		In:  strings.NewReader(stdin),
		Out: &out,
		Err: &errOut,
	})
	return out.String(), errOut.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, errOut, err := run(t, "", args...)
	if err != nil {
		t.Fatalf("%v: unexpected error %v (stderr %q)", args, err, errOut)
	}
	return out
}

func dateFromToday(days int) string {
	return time.Now().AddDate(0, 0, days).Format(dateLayout)
}

// TestRun tests the main entry points.
func TestRun(t *testing.T) {
	t.Run("shows help with -h flag", func(t *testing.T) {
		setup(t)
		out := mustRun(t, "-h")
		if !strings.Contains(out, "Usage:") {
			t.Errorf("expected usage, got %q", out)
		}
	})

	t.Run("shows help with help command", func(t *testing.T) {
		setup(t)
		if out := mustRun(t, "help"); !strings.Contains(out, "Commands:") {
			t.Errorf("expected command list, got %q", out)
		}
	})

	t.Run("shows version", func(t *testing.T) {
		setup(t)
		for _, args := range [][]string{{"-version"}, {"-v"}, {"version"}} {
			if out := mustRun(t, args...); out != "colortasks version dev\n" {
				t.Errorf("%v: got %q", args, out)
			}
		}
	})

	t.Run("unknown command returns error", func(t *testing.T) {
		setup(t)
		_, errOut, err := run(t, "", "frobnicate")
		if err == nil || !strings.Contains(err.Error(), "unknown command") {
			t.Errorf("expected unknown command error, got %v", err)
		}
		if !strings.Contains(errOut, "Unknown command: frobnicate") {
			t.Errorf("stderr: got %q", errOut)
		}
	})

	t.Run("bad config is reported", func(t *testing.T) {
		setup(t)
		_, _, err := run(t, "", "-backend", "redis", "list")
		if err == nil || !strings.Contains(err.Error(), "loading config") {
			t.Errorf("expected config error, got %v", err)
		}
	})
}

func TestEmptyList(t *testing.T) {
	setup(t)
	out := mustRun(t)
	if !strings.Contains(out, "No tasks yet") {
		t.Errorf("default command should list, got %q", out)
	}
	if out := mustRun(t, "overdue"); !strings.Contains(out, "No overdue tasks.") {
		t.Errorf("overdue: got %q", out)
	}
}

func TestTaskLifecycle(t *testing.T) {
	dataDir := setup(t)

	out := mustRun(t, "add", "-color", "red", "-due", dateFromToday(-1), "Call", "dentist")
	if out != "Task added: Call dentist\n" {
		t.Errorf("add: got %q", out)
	}
	mustRun(t, "add", "-color", "green", "Water plants")
	mustRun(t, "add", "  Buy milk  ")

	if _, err := os.Stat(filepath.Join(dataDir, "color-coded-tasks.json")); err != nil {
		t.Errorf("slot file not written: %v", err)
	}

	out = mustRun(t, "list")
	for _, want := range []string{
		"You have 1 overdue tasks. Please complete them soon.",
		"Default  1 tasks  0% Complete",
		"Red  1 tasks  0% Complete",
		"Green  1 tasks  0% Complete",
		"1. [ ] Call dentist  Overdue: ",
		"3. [ ] Buy milk",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("list missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Default") > strings.Index(out, "Red") || strings.Index(out, "Red") > strings.Index(out, "Green") {
		t.Errorf("groups should follow color order:\n%s", out)
	}

	out = mustRun(t, "overdue")
	if !strings.Contains(out, "Call dentist") || strings.Contains(out, "Water plants") {
		t.Errorf("overdue: got %q", out)
	}

	if out := mustRun(t, "done", "1"); out != "Completed: Call dentist\n" {
		t.Errorf("done: got %q", out)
	}
	out = mustRun(t, "list")
	if strings.Contains(out, "overdue tasks") {
		t.Errorf("completed task should not be overdue:\n%s", out)
	}
	if !strings.Contains(out, "Red  1 tasks  100% Complete") || !strings.Contains(out, "[x] Call dentist") {
		t.Errorf("list after toggle:\n%s", out)
	}
	if out := mustRun(t, "toggle", "1"); out != "Reopened: Call dentist\n" {
		t.Errorf("toggle: got %q", out)
	}

	out = mustRun(t, "list", "-flat")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	last := lines[len(lines)-1]
	if !strings.Contains(last, "3. [ ] Buy milk") {
		t.Errorf("flat list should end with the newest task, got %q", last)
	}
}

func TestRemove(t *testing.T) {
	setup(t)
	mustRun(t, "add", "Keep me")
	mustRun(t, "add", "Drop me")

	out, _, err := run(t, "n\n", "rm", "2")
	if err != nil {
		t.Fatalf("rm: %v", err)
	}
	if !strings.Contains(out, "Are you sure you want to delete this task? This action cannot be undone. [y/N]") {
		t.Errorf("rm should ask, got %q", out)
	}
	if !strings.Contains(out, "Cancelled.") {
		t.Errorf("answering n should cancel, got %q", out)
	}

	out, _, err = run(t, "y\n", "rm", "2")
	if err != nil {
		t.Fatalf("rm: %v", err)
	}
	if !strings.Contains(out, "Task deleted: Drop me") {
		t.Errorf("answering y should delete, got %q", out)
	}

	if out := mustRun(t, "rm", "-y", "1"); out != "Task deleted: Keep me\n" {
		t.Errorf("rm -y: got %q", out)
	}
	if out := mustRun(t); !strings.Contains(out, "No tasks yet") {
		t.Errorf("deletions should persist, got %q", out)
	}
}

func TestRemoveWithoutConfirmation(t *testing.T) {
	setup(t)
	t.Setenv("COLORTASKS_CONFIRM_DELETE", "false")
	mustRun(t, "add", "Gone")
	if out := mustRun(t, "rm", "1"); out != "Task deleted: Gone\n" {
		t.Errorf("rm: got %q", out)
	}
}

func TestAddErrors(t *testing.T) {
	setup(t)

	_, errOut, err := run(t, "", "add", "   ")
	if !errors.Is(err, task.ErrEmptyText) {
		t.Errorf("empty add: got %v, want ErrEmptyText", err)
	}
	if !strings.Contains(errOut, "Please enter a task.") {
		t.Errorf("stderr: got %q", errOut)
	}

	if _, _, err := run(t, "", "add", "-color", "purple", "x"); err == nil || !strings.Contains(err.Error(), "unknown color") {
		t.Errorf("bad color: got %v", err)
	}
	if _, _, err := run(t, "", "add", "-due", "soon", "x"); err == nil || !strings.Contains(err.Error(), "invalid due date") {
		t.Errorf("bad due: got %v", err)
	}
	if out := mustRun(t); !strings.Contains(out, "No tasks yet") {
		t.Errorf("failed adds must not persist, got %q", out)
	}
}

func TestDefaultColorFromConfig(t *testing.T) {
	setup(t)
	t.Setenv("COLORTASKS_DEFAULT_COLOR", "yellow")
	mustRun(t, "add", "Sunny")
	if out := mustRun(t); !strings.Contains(out, "Yellow  1 tasks") {
		t.Errorf("default color not applied:\n%s", out)
	}
}

func TestToggleErrors(t *testing.T) {
	setup(t)
	mustRun(t, "add", "Only")
	tests := [][]string{
		{"toggle"},
		{"toggle", "5"},
		{"toggle", "abc"},
		{"rm", "-y", "0"},
	}
	for _, args := range tests {
		if _, _, err := run(t, "", args...); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestBackendsAndFormats(t *testing.T) {
	tests := []struct {
		name string
		args []string
		file string
	}{
		{"sqlite", []string{"-backend", "sqlite"}, "colortasks.db"},
		{"yaml", []string{"-format", "yaml"}, "color-coded-tasks.yaml"},
		{"custom key", []string{"-key", "work"}, "work.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dataDir := setup(t)
			mustRun(t, append(tt.args, "add", "-color", "blue", "Persisted")...)
			if _, err := os.Stat(filepath.Join(dataDir, tt.file)); err != nil {
				t.Errorf("expected %s: %v", tt.file, err)
			}
			out := mustRun(t, append(tt.args, "list")...)
			if !strings.Contains(out, "Blue  1 tasks") || !strings.Contains(out, "Persisted") {
				t.Errorf("list:\n%s", out)
			}
		})
	}
}

func TestColors(t *testing.T) {
	setup(t)
	out := mustRun(t, "colors")
	for _, want := range []string{"Default", "Red", "Blue", "Green", "Yellow", "bg-red-100 border-red-200"} {
		if !strings.Contains(out, want) {
			t.Errorf("colors missing %q:\n%s", want, out)
		}
	}
}

func TestDoctor(t *testing.T) {
	t.Run("missing slot", func(t *testing.T) {
		setup(t)
		out := mustRun(t, "doctor")
		if !strings.Contains(out, "Not found") || !strings.Contains(out, "All checks passed.") {
			t.Errorf("doctor:\n%s", out)
		}
	})

	t.Run("valid slot", func(t *testing.T) {
		setup(t)
		mustRun(t, "add", "-due", dateFromToday(-3), "Late")
		mustRun(t, "add", "On time")
		out := mustRun(t, "doctor", "-v")
		if !strings.Contains(out, "Valid: 2 tasks, 0 completed, 1 overdue") {
			t.Errorf("doctor:\n%s", out)
		}
		if !strings.Contains(out, "On time") {
			t.Errorf("verbose should list tasks:\n%s", out)
		}
	})

	t.Run("invalid slot", func(t *testing.T) {
		dataDir := setup(t)
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			t.Fatal(err)
		}
		bad := `[{"id":"a","completed":false},{"id":"b","text":"x","completed":"no"}]`
		if err := os.WriteFile(filepath.Join(dataDir, "color-coded-tasks.json"), []byte(bad), 0o644); err != nil {
			t.Fatal(err)
		}
		out, _, err := run(t, "", "doctor")
		if err == nil {
			t.Fatal("doctor should fail on an invalid slot")
		}
		if !strings.Contains(out, "Invalid") || !strings.Contains(out, "[0]") || !strings.Contains(out, "[1].completed") {
			t.Errorf("doctor should list each problem:\n%s", out)
		}
		// the list still loads, as empty
		if out := mustRun(t); !strings.Contains(out, "No tasks yet") {
			t.Errorf("invalid slot should load as empty, got %q", out)
		}
	})

	t.Run("schema", func(t *testing.T) {
		setup(t)
		if out := mustRun(t, "doctor", "-schema"); !strings.Contains(out, "2020-12") {
			t.Errorf("schema: got %q", out)
		}
	})
}

func TestConfigCommand(t *testing.T) {
	setup(t)
	out := mustRun(t, "-backend", "sqlite", "config")
	for _, want := range []string{
		`backend         = "sqlite"`,
		"# flag (COLORTASKS_BACKEND)",
		"# environment (COLORTASKS_DATA_DIR)",
		"confirm_delete  = true",
		"# default (COLORTASKS_FORMAT)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("config missing %q:\n%s", want, out)
		}
	}

	if out := mustRun(t, "config", "-example"); !strings.Contains(out, `storage_key = "color-coded-tasks"`) {
		t.Errorf("example: got %q", out)
	}
}

func TestResolveRef(t *testing.T) {
	tasks := []task.Task{
		{ID: "0192aaaa-0001", Text: "one"},
		{ID: "0192aaaa-0002", Text: "two"},
		{ID: "0192bbbb-0003", Text: "three"},
		{ID: "42", Text: "numeric id"},
	}
	tests := []struct {
		ref     string
		want    string
		wantErr bool
	}{
		{"1", "one", false},
		{"3", "three", false},
		{"42", "numeric id", false},
		{"0192bbbb", "three", false},
		{"0192aaaa-0002", "two", false},
		{" 2 ", "two", false},
		{"0192aaaa", "", true}, // ambiguous
		{"019", "", true},      // too short
		{"zzzz", "", true},
		{"5", "", true},
		{"0", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := resolveRef(tasks, tt.ref)
		if (err != nil) != tt.wantErr {
			t.Errorf("resolveRef(%q): error %v, wantErr %v", tt.ref, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got.Text != tt.want {
			t.Errorf("resolveRef(%q): got %q, want %q", tt.ref, got.Text, tt.want)
		}
	}
	if _, err := resolveRef(tasks, "9"); !errors.Is(err, ErrNoTask) {
		t.Errorf("out of range should wrap ErrNoTask, got %v", err)
	}
}

func TestConfirm(t *testing.T) {
	tests := map[string]bool{"y\n": true, "YES\n": true, "n\n": false, "\n": false, "": false, "yep": false}
	for in, want := range tests {
		if got := confirm(strings.NewReader(in)); got != want {
			t.Errorf("confirm(%q): got %v, want %v", in, got, want)
		}
	}
	if confirm(nil) {
		t.Error("nil reader should not confirm")
	}
}
