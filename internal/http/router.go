package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/goliatone/go-notes/internal/logging"
	"github.com/goliatone/go-notes/pkg/interfaces"
)

// RouterConfig lists the pieces mounted by NewRouter. Frontend and
// Metrics are optional.
type RouterConfig struct {
	API         *DocumentsAPI
	Frontend    *Frontend
	Metrics     *Metrics
	MetricsPath string
	Logger      interfaces.Logger
}

// NewRouter mounts the API, metrics and frontend on one mux and wraps it
// with request logging, metrics and the document path guard.
func NewRouter(cfg RouterConfig) (http.Handler, error) {
	if cfg.API == nil {
		return nil, errors.New("documents api is required")
	}

	mux := http.NewServeMux()
	if err := cfg.API.Register(mux); err != nil {
		return nil, err
	}
	if cfg.Metrics != nil {
		path := strings.TrimSpace(cfg.MetricsPath)
		if path == "" {
			return nil, errors.New("metrics path is required")
		}
		mux.Handle("GET "+path, cfg.Metrics.Handler())
	}
	if cfg.Frontend != nil {
		if err := cfg.Frontend.Register(mux); err != nil {
			return nil, err
		}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	middleware := []Middleware{RequestLogger(logger)}
	if cfg.Metrics != nil {
		middleware = append(middleware, cfg.Metrics.Middleware())
	}
	middleware = append(middleware, cfg.API.Guard)

	return Chain(mux, middleware...), nil
}
