package runtimeconfig

import (
	"bytes"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

var ErrServerAddressRequired = errors.New("notes config: server address is required")
var ErrServerAddressInvalid = errors.New("notes config: server address must be host:port")
var ErrServerTimeoutInvalid = errors.New("notes config: server timeouts must be zero or positive")
var ErrDocumentsRootRequired = errors.New("notes config: documents root is required")
var ErrStaticIndexRequired = errors.New("notes config: static index file is required")
var ErrStaticIndexInvalid = errors.New("notes config: static index must be a file name relative to the static directory")
var ErrManifestOutputRequired = errors.New("notes config: manifest output path is required")
var ErrMetricsPathInvalid = errors.New("notes config: metrics path must start with /")
var ErrMetricsPathReserved = errors.New("notes config: metrics path collides with an application route")
var ErrLoggingLevelInvalid = errors.New("notes config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("notes config: logging format is invalid")

// Config aggregates every setting the notes server and tooling read at start.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Documents DocumentsConfig `yaml:"documents"`
	Static    StaticConfig    `yaml:"static"`
	Markdown  MarkdownConfig  `yaml:"markdown"`
	Manifest  ManifestConfig  `yaml:"manifest"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig captures the listener address and http.Server timeouts.
type ServerConfig struct {
	Address         string        `yaml:"address"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DocumentsConfig points at the document root.
type DocumentsConfig struct {
	Root string `yaml:"root"`
}

// StaticConfig describes where the bundled frontend lives.
type StaticConfig struct {
	Dir   string `yaml:"dir"`
	Index string `yaml:"index"`
}

// MarkdownConfig controls the optional HTML rendering of documents.
type MarkdownConfig struct {
	Extensions []string `yaml:"extensions"`
	HardWraps  bool     `yaml:"hard_wraps"`
	SafeMode   bool     `yaml:"safe_mode"`
}

// ManifestConfig sets where directory-structure.json is written.
type ManifestConfig struct {
	Output string `yaml:"output"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// LoggingConfig captures go-logger options.
type LoggingConfig struct {
	Level     string `yaml:"level"`
	Format    string `yaml:"format"`
	AddSource bool   `yaml:"add_source"`
}

// DefaultConfig mirrors the settings the notes app shipped with: bind on
// 0.0.0.0:5001, thirty second request and shutdown windows, five second
// keep-alive.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Address:         "0.0.0.0:5001",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     5 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Documents: DocumentsConfig{
			Root: "docs",
		},
		Static: StaticConfig{
			Dir:   ".",
			Index: "index.html",
		},
		Markdown: MarkdownConfig{},
		Manifest: ManifestConfig{
			Output: "public/docs/directory-structure.json",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadFile reads a YAML file on top of DefaultConfig. Keys missing from the
// file keep their default values. Relative paths, defaults included, are
// anchored at the directory holding the file, so a deployment directory
// with notes.yaml next to docs/ works from any working directory.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("notes config: read %s: %w", path, err)
	}
	if err := Decode(data, &cfg); err != nil {
		return cfg, fmt.Errorf("notes config: decode %s: %w", path, err)
	}
	base, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return cfg, fmt.Errorf("notes config: resolve %s: %w", path, err)
	}
	cfg.ResolvePaths(base)
	return cfg, nil
}

// ResolvePaths joins relative documents.root, static.dir and
// manifest.output onto base. Absolute and blank values are left alone.
func (cfg *Config) ResolvePaths(base string) {
	if cfg == nil || strings.TrimSpace(base) == "" {
		return
	}
	anchor := func(target *string) {
		value := strings.TrimSpace(*target)
		if value == "" || filepath.IsAbs(value) {
			return
		}
		*target = filepath.Join(base, value)
	}
	anchor(&cfg.Documents.Root)
	anchor(&cfg.Static.Dir)
	anchor(&cfg.Manifest.Output)
}

// Decode unmarshals YAML into cfg, rejecting unknown keys.
func Decode(data []byte, cfg *Config) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	return decoder.Decode(cfg)
}

const (
	EnvAddress   = "NOTES_ADDRESS"
	EnvDocsRoot  = "NOTES_DOCS_ROOT"
	EnvStaticDir = "NOTES_STATIC_DIR"
	EnvLogLevel  = "NOTES_LOG_LEVEL"
	EnvLogFormat = "NOTES_LOG_FORMAT"
)

// ApplyEnv overrides cfg with the NOTES_* variables reported by lookup.
// Pass os.LookupEnv in production.
func (cfg *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if cfg == nil || lookup == nil {
		return
	}
	set := func(key string, target *string) {
		if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
			*target = strings.TrimSpace(value)
		}
	}
	set(EnvAddress, &cfg.Server.Address)
	set(EnvDocsRoot, &cfg.Documents.Root)
	set(EnvStaticDir, &cfg.Static.Dir)
	set(EnvLogLevel, &cfg.Logging.Level)
	set(EnvLogFormat, &cfg.Logging.Format)
}

// Validate performs consistency checks before anything is wired.
func (cfg Config) Validate() error {
	address := strings.TrimSpace(cfg.Server.Address)
	if address == "" {
		return ErrServerAddressRequired
	}
	if _, _, err := net.SplitHostPort(address); err != nil {
		return fmt.Errorf("%w: %s", ErrServerAddressInvalid, address)
	}
	err := validation.ValidateStruct(&cfg.Server,
		validation.Field(&cfg.Server.ReadTimeout, validation.Min(time.Duration(0))),
		validation.Field(&cfg.Server.WriteTimeout, validation.Min(time.Duration(0))),
		validation.Field(&cfg.Server.IdleTimeout, validation.Min(time.Duration(0))),
		validation.Field(&cfg.Server.ShutdownTimeout, validation.Min(time.Duration(0))),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServerTimeoutInvalid, err)
	}
	if strings.TrimSpace(cfg.Documents.Root) == "" {
		return ErrDocumentsRootRequired
	}
	index := strings.TrimSpace(cfg.Static.Index)
	if index == "" {
		return ErrStaticIndexRequired
	}
	if strings.ContainsAny(index, `/\`) || index == "." || index == ".." {
		return fmt.Errorf("%w: %s", ErrStaticIndexInvalid, index)
	}
	if strings.TrimSpace(cfg.Manifest.Output) == "" {
		return ErrManifestOutputRequired
	}
	if cfg.Metrics.Enabled {
		path := strings.TrimSpace(cfg.Metrics.Path)
		if !strings.HasPrefix(path, "/") || path == "/" {
			return fmt.Errorf("%w: %q", ErrMetricsPathInvalid, cfg.Metrics.Path)
		}
		if path == "/api" || strings.HasPrefix(path, "/api/") || path == "/docs" || strings.HasPrefix(path, "/docs/") || path == "/healthz" {
			return fmt.Errorf("%w: %s", ErrMetricsPathReserved, path)
		}
	}
	if level := strings.ToLower(strings.TrimSpace(cfg.Logging.Level)); level != "" {
		if err := validation.Validate(level, validation.In("trace", "debug", "info", "warn", "warning", "error", "fatal")); err != nil {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, cfg.Logging.Level)
		}
	}
	if format := strings.ToLower(strings.TrimSpace(cfg.Logging.Format)); format != "" {
		if err := validation.Validate(format, validation.In("json", "console", "pretty")); err != nil {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, cfg.Logging.Format)
		}
	}
	return nil
}
