package gologger

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-notes/internal/logging"
	"github.com/goliatone/go-notes/pkg/interfaces"
)

// Config selects the go-logger level, output format and source annotation.
type Config struct {
	Level     string
	Format    string
	AddSource bool
}

var formatOptions = map[string]func() glog.Option{
	"":        glog.WithLoggerTypeJSON,
	"json":    glog.WithLoggerTypeJSON,
	"console": glog.WithLoggerTypeConsole,
	"pretty":  glog.WithLoggerTypePretty,
}

var levelAliases = map[string]string{
	"trace":   glog.Trace,
	"debug":   glog.Debug,
	"info":    glog.Info,
	"warn":    glog.Warn,
	"warning": glog.Warn,
	"error":   glog.Error,
	"fatal":   glog.Fatal,
}

// Provider hands out one go-logger child per notes module name, such as
// "notes.documents" or "notes.http". A blank name yields the root logger.
type Provider struct {
	root *glog.BaseLogger

	mu      sync.Mutex
	modules map[string]interfaces.Logger
}

var _ interfaces.LoggerProvider = (*Provider)(nil)

// NewProvider builds the root go-logger instance. Format is json (the
// default), console or pretty.
func NewProvider(cfg Config) (*Provider, error) {
	format, ok := formatOptions[strings.ToLower(strings.TrimSpace(cfg.Format))]
	if !ok {
		return nil, fmt.Errorf("logging: unsupported go-logger format %q", cfg.Format)
	}

	options := []glog.Option{format()}
	if level := NormalizeLevel(cfg.Level); level != "" {
		options = append(options, glog.WithLevel(level))
	}
	if cfg.AddSource {
		options = append(options, glog.WithAddSource(true))
	}

	return &Provider{
		root:    glog.NewLogger(options...),
		modules: map[string]interfaces.Logger{},
	}, nil
}

// GetLogger returns the logger for module. Names are trimmed and lowercased
// so "Notes.HTTP" and "notes.http" share one child.
func (p *Provider) GetLogger(module string) interfaces.Logger {
	if p == nil || p.root == nil {
		return logging.NoOp()
	}
	name := strings.ToLower(strings.TrimSpace(module))
	if name == "" {
		return adapt(p.root)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.modules == nil {
		p.modules = map[string]interfaces.Logger{}
	}
	logger, ok := p.modules[name]
	if !ok {
		logger = adapt(p.root.GetLogger(name))
		p.modules[name] = logger
	}
	return logger
}

// NormalizeLevel maps a configured level name onto the go-logger constant.
// Unknown names map to the empty string.
func NormalizeLevel(level string) string {
	return levelAliases[strings.ToLower(strings.TrimSpace(level))]
}

func adapt(inner glog.Logger) interfaces.Logger {
	if inner == nil {
		return logging.NoOp()
	}
	return &moduleLogger{inner: inner}
}

// moduleLogger narrows a glog.Logger to interfaces.Logger.
type moduleLogger struct {
	inner glog.Logger
}

var (
	_ interfaces.Logger       = (*moduleLogger)(nil)
	_ interfaces.FieldsLogger = (*moduleLogger)(nil)
)

func (l *moduleLogger) Trace(msg string, args ...any) { l.inner.Trace(msg, args...) }
func (l *moduleLogger) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }
func (l *moduleLogger) Info(msg string, args ...any)  { l.inner.Info(msg, args...) }
func (l *moduleLogger) Warn(msg string, args ...any)  { l.inner.Warn(msg, args...) }
func (l *moduleLogger) Error(msg string, args ...any) { l.inner.Error(msg, args...) }
func (l *moduleLogger) Fatal(msg string, args ...any) { l.inner.Fatal(msg, args...) }

// WithFields attaches document or request fields. The map is copied so
// callers may reuse it.
func (l *moduleLogger) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	copied := maps.Clone(fields)

	switch inner := l.inner.(type) {
	case glog.FieldsLogger:
		return adapt(inner.WithFields(copied))
	case interface{ With(...any) *glog.BaseLogger }:
		return adapt(inner.With(keyValues(copied)...))
	default:
		return l
	}
}

func (l *moduleLogger) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return l
	}
	return adapt(l.inner.WithContext(ctx))
}

// keyValues flattens fields into sorted key/value pairs.
func keyValues(fields map[string]any) []any {
	args := make([]any, 0, len(fields)*2)
	for _, key := range slices.Sorted(maps.Keys(fields)) {
		args = append(args, key, fields[key])
	}
	return args
}
