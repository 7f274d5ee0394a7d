package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	notes "github.com/goliatone/go-notes"
	"github.com/goliatone/go-notes/internal/logging"
	"github.com/goliatone/go-notes/pkg/interfaces"
)

type quietProvider struct{}

func (quietProvider) GetLogger(string) interfaces.Logger { return logging.NoOp() }

func testApp(env map[string]string) (*app, *notes.Config, *bytes.Buffer) {
	var captured notes.Config
	out := &bytes.Buffer{}
	a := &app{
		lookupEnv: func(key string) (string, bool) {
			value, ok := env[key]
			return value, ok
		},
		newModule: func(cfg notes.Config) (*notes.Module, error) {
			captured = cfg
			return notes.New(cfg, notes.WithLoggerProvider(quietProvider{}))
		},
		serve: func(context.Context, *notes.Module) error { return nil },
		out:   out,
	}
	return a, &captured, out
}

func runCommand(t *testing.T, a *app, args ...string) error {
	t.Helper()
	cmd := newRootCommand(a)
	cmd.SetArgs(args)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	return cmd.ExecuteContext(context.Background())
}

func TestServeUsesDefaults(t *testing.T) {
	a, captured, _ := testApp(nil)
	if err := runCommand(t, a, "serve"); err != nil {
		t.Fatalf("serve: %v", err)
	}
	if captured.Server.Address != "0.0.0.0:5001" {
		t.Fatalf("expected default address, got %q", captured.Server.Address)
	}
}

func TestServePrecedence(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "notes.yaml")
	yaml := "server:\n  address: 127.0.0.1:7000\ndocuments:\n  root: from-file\nlogging:\n  level: debug\n"
	if err := os.WriteFile(configPath, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	a, captured, _ := testApp(map[string]string{
		"NOTES_DOCS_ROOT": "from-env",
		"NOTES_LOG_LEVEL": "warn",
	})
	if err := runCommand(t, a, "serve", "--config", configPath, "--log-level", "error"); err != nil {
		t.Fatalf("serve: %v", err)
	}
	if captured.Server.Address != "127.0.0.1:7000" {
		t.Fatalf("expected file address, got %q", captured.Server.Address)
	}
	if captured.Documents.Root != "from-env" {
		t.Fatalf("expected env root, got %q", captured.Documents.Root)
	}
	if captured.Logging.Level != "error" {
		t.Fatalf("expected flag level, got %q", captured.Logging.Level)
	}
}

func TestServeRejectsInvalidAddress(t *testing.T) {
	a, _, _ := testApp(nil)
	err := runCommand(t, a, "serve", "--address", "nowhere")
	if !errors.Is(err, notes.ErrServerAddressInvalid) {
		t.Fatalf("expected ErrServerAddressInvalid, got %v", err)
	}
}

func TestManifestCommandWritesFile(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "docs")
	if err := os.MkdirAll(filepath.Join(root, "guide"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "guide", "intro.md"), []byte("# Intro"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	output := filepath.Join(dir, "out", "directory-structure.json")

	a, _, out := testApp(map[string]string{"NOTES_STATIC_DIR": dir})
	if err := runCommand(t, a, "manifest", "--docs-root", root, "--output", output); err != nil {
		t.Fatalf("manifest: %v", err)
	}
	if _, err := os.Stat(output); err != nil {
		t.Fatalf("expected manifest file: %v", err)
	}
	if !strings.Contains(out.String(), "1 directories") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestManifestCommandMissingRoot(t *testing.T) {
	dir := t.TempDir()
	a, _, _ := testApp(nil)
	err := runCommand(t, a, "manifest", "--docs-root", filepath.Join(dir, "absent"), "--output", filepath.Join(dir, "m.json"))
	if err == nil {
		t.Fatal("expected error for missing root")
	}
}
