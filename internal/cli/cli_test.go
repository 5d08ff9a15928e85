package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rhajizada/loggy/internal/logging"
)

func runRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var out, errOut bytes.Buffer
	root := NewRootCmd("test", logging.New(io.Discard))
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommandWiring(t *testing.T) {
	root := NewRootCmd("test", logging.New(io.Discard))

	if root.Use != "loggy" {
		t.Fatalf("unexpected root Use: %q", root.Use)
	}

	sub := map[string]bool{}
	for _, c := range root.Commands() {
		sub[c.Name()] = true
	}
	for _, name := range []string{"demo", "emit", "handlers", "levels"} {
		if !sub[name] {
			t.Fatalf("missing subcommand %q", name)
		}
	}
}

func TestRootCommandVersionAndHelp(t *testing.T) {
	if _, _, err := runRoot(t, "-V"); err != nil {
		t.Fatalf("version execute error: %v", err)
	}
	if _, _, err := runRoot(t); err != nil {
		t.Fatalf("help execute error: %v", err)
	}
}

func TestEmitWritesMessage(t *testing.T) {
	out, _, err := runRoot(t, "emit", "warning", "disk", "low", "--format", "{{.Level}} {{.Message}}")
	if err != nil {
		t.Fatalf("emit error: %v", err)
	}
	if out != "WARNING disk low\n" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestEmitBelowLevelIsDropped(t *testing.T) {
	out, _, err := runRoot(t, "emit", "info", "quiet", "--level", "error")
	if err != nil {
		t.Fatalf("emit error: %v", err)
	}
	if out != "" {
		t.Fatalf("expected no output, got %q", out)
	}
}

func TestEmitUnknownLevel(t *testing.T) {
	if _, _, err := runRoot(t, "emit", "loud", "x"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestEmitStats(t *testing.T) {
	out, _, err := runRoot(t, "emit", "error", "boom", "--format", "{{.Message}}", "--stats")
	if err != nil {
		t.Fatalf("emit error: %v", err)
	}
	if !strings.HasPrefix(out, "boom\n") {
		t.Fatalf("expected message first, got %q", out)
	}
	for _, want := range []string{"loggy_messages_total", "outcome=emitted", "loggy_sink_writes_total"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in stats output:\n%s", want, out)
		}
	}
}

func TestDemoWritesConsoleFileAndStderr(t *testing.T) {
	path := filepath.Join(t.TempDir(), "example.log")
	out, errOut, err := runRoot(t, "demo", "--file", path, "--format", "{{.Level}} {{.Message}}")
	if err != nil {
		t.Fatalf("demo error: %v", err)
	}

	wantOut := strings.Join([]string{
		"DEBUG This is a debug message",
		"INFO This is an info message",
		"WARNING This is a warning message",
		"ERROR This is an error message",
		"CRITICAL This is a critical message",
		"WARNING This is a warning message (stderr)",
		"ERROR This is an error message (stderr)",
	}, "\n") + "\n"
	if out != wantOut {
		t.Fatalf("unexpected stdout:\n%s", out)
	}

	wantErr := "WARNING This is a warning message (stderr)\nERROR This is an error message (stderr)\n"
	if errOut != wantErr {
		t.Fatalf("unexpected stderr:\n%s", errOut)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if string(raw) != wantOut {
		t.Fatalf("unexpected file contents:\n%s", raw)
	}
}

func TestHandlersFromConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	content := `
version: 1
name: svc
level: info
handlers:
  - type: stderr
    level: warning
  - type: file
    path: errors.log
    level: error
`
	if err := os.WriteFile(cfgPath, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, _, err := runRoot(t, "handlers", "-c", cfgPath)
	if err != nil {
		t.Fatalf("handlers error: %v", err)
	}

	for _, want := range []string{
		"KIND",
		"console",
		"WARNING",
		"file",
		filepath.Join(dir, "errors.log"),
		"ERROR",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if got := strings.Count(out, "\n"); got != 5 {
		t.Fatalf("expected header, divider and 3 rows, got %d lines:\n%s", got, out)
	}
}

func TestLevelsCommand(t *testing.T) {
	out, _, err := runRoot(t, "levels")
	if err != nil {
		t.Fatalf("levels error: %v", err)
	}
	for _, want := range []string{"DEBUG", "INFO", "WARNING", "ERROR", "CRITICAL"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestExplicitMissingConfigFails(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "missing.yaml")
	for _, args := range [][]string{
		{"demo", "-c", cfgPath},
		{"emit", "info", "x", "-c", cfgPath},
		{"handlers", "-c", cfgPath},
	} {
		if _, _, err := runRoot(t, args...); err == nil {
			t.Fatalf("%v: expected error for missing config", args)
		}
	}
}

func TestDefaultConfigIsPickedUp(t *testing.T) {
	xdg := t.TempDir()
	if err := os.MkdirAll(filepath.Join(xdg, "loggy"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	content := "version: 1\nformat: \"[{{.Name}}] {{.Message}}\"\nname: fromfile\n"
	if err := os.WriteFile(filepath.Join(xdg, "loggy", "config.yaml"), []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("XDG_CONFIG_HOME", xdg)
	cfg, err := loadConfig(&globalFlags{level: "info"})
	if err != nil {
		t.Fatalf("loadConfig error: %v", err)
	}
	if cfg.Name != "fromfile" || cfg.Level != "info" {
		t.Fatalf("unexpected config: name=%q level=%q", cfg.Name, cfg.Level)
	}

	var out bytes.Buffer
	app, err := NewApp(cfg, &out, io.Discard, logging.New(io.Discard))
	if err != nil {
		t.Fatalf("NewApp error: %v", err)
	}
	app.Facade.Info("hi")
	app.Facade.Debug("hidden")
	if out.String() != "[fromfile] hi\n" {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestExecuteVersion(t *testing.T) {
	if err := ExecuteArgs("test", []string{"-V"}); err != nil {
		t.Fatalf("execute error: %v", err)
	}
}
