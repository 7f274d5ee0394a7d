package documents

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-notes/internal/logging"
	"github.com/goliatone/go-notes/pkg/interfaces"
)

const defaultExtension = ".md"

// Config configures the document store.
type Config struct {
	// Root is the document root. Relative paths resolve against the working directory.
	Root string
	// Extension selects listed files; defaults to ".md".
	Extension string
}

// Store lists and reads markdown documents straight from the filesystem.
// It holds no mutable state and is safe for concurrent use.
type Store struct {
	root      string
	extension string
	logger    interfaces.Logger
}

var _ interfaces.DocumentStore = (*Store)(nil)

// Option mutates a Store during construction.
type Option func(*Store)

// WithLogger injects the logger used for store diagnostics.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore builds a Store over cfg.Root. The root does not need to exist.
func NewStore(cfg Config, opts ...Option) (*Store, error) {
	root := strings.TrimSpace(cfg.Root)
	if root == "" {
		return nil, errors.New("documents: root is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("documents: resolve root %s: %w", root, err)
	}

	ext := strings.TrimSpace(cfg.Extension)
	if ext == "" {
		ext = defaultExtension
	}

	s := &Store{
		root:      abs,
		extension: ext,
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Root returns the absolute document root.
func (s *Store) Root() string {
	return s.root
}

// List returns every category under the root with its markdown files, both
// sorted by name. A missing root yields an empty list.
func (s *Store) List(ctx context.Context) ([]interfaces.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	categories := []interfaces.Category{}

	entries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("documents.list.root_missing", "root", s.root)
			return categories, nil
		}
		s.logger.Error("documents.list.failed", "root", s.root, "error", err)
		return nil, serviceError(err, TextCodeListFailed)
	}

	for _, entry := range entries {
		path := filepath.Join(s.root, entry.Name())
		if !isDir(entry, path) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		files, err := s.listFiles(path)
		if err != nil {
			logging.WithDocumentContext(s.logger, entry.Name(), "").
				Error("documents.list.category_failed", "error", err)
			return nil, serviceError(err, TextCodeListFailed)
		}
		categories = append(categories, interfaces.Category{
			Name:  entry.Name(),
			Files: files,
		})
	}

	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})

	s.logger.Debug("documents.list.success", "categories", len(categories))
	return categories, nil
}

func (s *Store) listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	files := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, s.extension) {
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

// Read returns the content of category/name. The name may span several
// path segments. Content is returned byte for byte and must be valid UTF-8.
func (s *Store) Read(ctx context.Context, category, name string) (*interfaces.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger := logging.WithDocumentContext(s.logger, category, name)

	path, err := s.resolve(category, name)
	if err != nil {
		logger.Warn("documents.read.rejected", "error", err)
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		logger.Debug("documents.read.not_found", "path", path)
		return nil, notFoundError()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("documents.read.failed", "path", path, "error", err)
		return nil, serviceError(err, TextCodeReadFailed)
	}
	if !utf8.Valid(data) {
		err := fmt.Errorf("documents: %s/%s is not valid UTF-8", category, name)
		logger.Error("documents.read.decode_failed", "path", path)
		return nil, serviceError(err, TextCodeReadFailed)
	}

	return &interfaces.Document{
		Category: category,
		Name:     name,
		Path:     path,
		Content:  string(data),
	}, nil
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
