// Package manifest writes directory-structure.json, a static snapshot of the
// document listing for frontends that fetch it instead of calling the API.
package manifest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-notes/internal/logging"
	"github.com/goliatone/go-notes/pkg/interfaces"
)

// FileName is the conventional manifest file name.
const FileName = "directory-structure.json"

const defaultNote = "Generated automatically; rebuilt on the next build or document change."

// ErrRootMissing is returned when the document root does not exist.
var ErrRootMissing = errors.New("manifest: document root does not exist")

var (
	defaultIgnoreDirs  = []string{".git", "node_modules", "__pycache__", "images"}
	defaultIgnoreFiles = []string{".DS_Store", FileName}
)

// Manifest is the document written to disk.
type Manifest struct {
	Metadata    Metadata              `json:"metadata"`
	Directories []interfaces.Category `json:"directories"`
}

// Metadata records when and how the manifest was produced.
type Metadata struct {
	GeneratedAt time.Time `json:"generatedAt"`
	Note        string    `json:"note"`
}

const documentExtension = ".md"

// Source reports the document root the generator scans.
type Source interface {
	Root() string
}

// Generator builds manifests from a document root. It scans the root
// itself so an unreadable category is skipped rather than failing the run.
type Generator struct {
	store       Source
	readDir     func(string) ([]fs.DirEntry, error)
	ignoreDirs  map[string]struct{}
	ignoreFiles map[string]struct{}
	now         func() time.Time
	note        string
	logger      interfaces.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock overrides the time source used for GeneratedAt.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// WithIgnoredDirs replaces the default ignored directory names.
func WithIgnoredDirs(names ...string) Option {
	return func(g *Generator) {
		g.ignoreDirs = toSet(names)
	}
}

// WithIgnoredFiles replaces the default ignored file names.
func WithIgnoredFiles(names ...string) Option {
	return func(g *Generator) {
		g.ignoreFiles = toSet(names)
	}
}

// WithNote overrides the metadata note.
func WithNote(note string) Option {
	return func(g *Generator) {
		g.note = note
	}
}

// WithLogger injects the generator logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGenerator constructs a Generator over store.
func NewGenerator(store Source, opts ...Option) *Generator {
	g := &Generator{
		store:       store,
		readDir:     os.ReadDir,
		ignoreDirs:  toSet(defaultIgnoreDirs),
		ignoreFiles: toSet(defaultIgnoreFiles),
		now:         time.Now,
		note:        defaultNote,
		logger:      logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Build scans the store. Unlike the HTTP listing it drops ignored names and
// categories without documents, and fails when the root is missing.
func (g *Generator) Build(ctx context.Context) (*Manifest, error) {
	if g == nil || g.store == nil {
		return nil, errors.New("manifest: store is required")
	}

	root := g.store.Root()
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRootMissing, root)
		}
		return nil, fmt.Errorf("manifest: stat root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("manifest: root %s is not a directory", root)
	}

	entries, err := g.readDir(root)
	if err != nil {
		return nil, fmt.Errorf("manifest: read root %s: %w", root, err)
	}

	directories := []interfaces.Category{}
	for _, entry := range entries {
		name := entry.Name()
		if _, skip := g.ignoreDirs[name]; skip {
			continue
		}
		path := filepath.Join(root, name)
		if !isDir(entry, path) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		files, err := g.scanCategory(path)
		if err != nil {
			g.logger.Warn("manifest.scan.category_skipped", "category", name, "error", err)
			continue
		}
		if len(files) == 0 {
			continue
		}
		directories = append(directories, interfaces.Category{Name: name, Files: files})
	}
	sort.Slice(directories, func(i, j int) bool {
		return directories[i].Name < directories[j].Name
	})

	return &Manifest{
		Metadata: Metadata{
			GeneratedAt: g.now().UTC(),
			Note:        g.note,
		},
		Directories: directories,
	}, nil
}

// Write builds the manifest and writes it to path as indented JSON,
// creating parent directories. The file is replaced atomically.
func (g *Generator) Write(ctx context.Context, path string) (*Manifest, error) {
	manifest, err := g.Build(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("manifest: encode: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("manifest: create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".manifest-*.json")
	if err != nil {
		return nil, fmt.Errorf("manifest: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("manifest: write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("manifest: close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return nil, fmt.Errorf("manifest: chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return nil, fmt.Errorf("manifest: replace %s: %w", path, err)
	}

	g.logger.Info("manifest.write.success", "path", path, "directories", len(manifest.Directories))
	return manifest, nil
}

func (g *Generator) scanCategory(dir string) ([]string, error) {
	entries, err := g.readDir(dir)
	if err != nil {
		return nil, err
	}
	files := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, documentExtension) {
			continue
		}
		if _, skip := g.ignoreFiles[name]; skip {
			continue
		}
		if isDir(entry, filepath.Join(dir, name)) {
			continue
		}
		files = append(files, name)
	}
	sort.Strings(files)
	return files, nil
}

func isDir(entry fs.DirEntry, path string) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func toSet(values []string) map[string]struct{} {
	out := make(map[string]struct{}, len(values))
	for _, value := range values {
		out[value] = struct{}{}
	}
	return out
}
