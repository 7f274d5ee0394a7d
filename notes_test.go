package notes_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	notes "github.com/goliatone/go-notes"
	"github.com/goliatone/go-notes/pkg/interfaces"
)

type quietProvider struct{}

func (quietProvider) GetLogger(string) interfaces.Logger { return quietLogger{} }

type quietLogger struct{}

func (quietLogger) Trace(string, ...any) {}
func (quietLogger) Debug(string, ...any) {}
func (quietLogger) Info(string, ...any)  {}
func (quietLogger) Warn(string, ...any)  {}
func (quietLogger) Error(string, ...any) {}
func (quietLogger) Fatal(string, ...any) {}

func (q quietLogger) WithContext(context.Context) interfaces.Logger { return q }

func newModule(t *testing.T) (*notes.Module, notes.Config) {
	t.Helper()
	base := t.TempDir()
	root := filepath.Join(base, "docs")
	for rel, content := range map[string]string{
		"guide/intro.md": "# Intro",
		"guide/setup.md": "# Setup",
		"faq/basics.md":  "# Basics",
		"images/logo.md": "ignored by the manifest",
	} {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	cfg := notes.DefaultConfig()
	cfg.Documents.Root = root
	cfg.Static.Dir = base
	cfg.Manifest.Output = filepath.Join(base, "public", "docs", "directory-structure.json")

	module, err := notes.New(cfg, notes.WithLoggerProvider(quietProvider{}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return module, cfg
}

func TestModuleServesScenario(t *testing.T) {
	module, _ := newModule(t)

	rec := httptest.NewRecorder()
	module.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/document/guide/intro.md", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"content":"# Intro"}` {
		t.Fatalf("unexpected body %s", got)
	}
}

func TestModuleGenerateManifestDefaultsToConfiguredOutput(t *testing.T) {
	module, cfg := newModule(t)

	written, err := module.GenerateManifest(context.Background(), "")
	if err != nil {
		t.Fatalf("GenerateManifest: %v", err)
	}
	if len(written.Directories) != 2 {
		t.Fatalf("expected faq and guide, got %#v", written.Directories)
	}
	if _, err := os.Stat(cfg.Manifest.Output); err != nil {
		t.Fatalf("expected manifest at configured output: %v", err)
	}
}

func TestModuleGenerateManifestRejectsBlankOutput(t *testing.T) {
	module, _ := newModule(t)

	_, err := module.GenerateManifest(context.Background(), "   ")
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := notes.DefaultConfig()
	cfg.Logging.Level = "loud"
	_, err := notes.New(cfg, notes.WithLoggerProvider(quietProvider{}))
	if !errors.Is(err, notes.ErrLoggingLevelInvalid) {
		t.Fatalf("expected ErrLoggingLevelInvalid, got %v", err)
	}
}
