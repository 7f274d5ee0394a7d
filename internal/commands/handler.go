package commands

import (
	"context"
	"time"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-notes/internal/logging"
	"github.com/goliatone/go-notes/pkg/interfaces"
)

// DefaultTimeout bounds one notes command, such as a manifest generation.
const DefaultTimeout = 30 * time.Second

// HandlerOption configures a Handler.
type HandlerOption[T command.Message] func(*Handler[T])

// Handler runs a notes command: the message is validated, the function runs
// under a deadline, and failures come back as go-errors with NOTES_COMMAND_*
// text codes. It satisfies command.Commander[T].
type Handler[T command.Message] struct {
	run       command.CommandFunc[T]
	logger    interfaces.Logger
	timeout   time.Duration
	operation string
}

var _ command.Commander[command.Message] = (*Handler[command.Message])(nil)

// NewHandler wraps fn. It panics when fn is nil.
func NewHandler[T command.Message](fn command.CommandFunc[T], opts ...HandlerOption[T]) *Handler[T] {
	if fn == nil {
		panic("commands: handler function cannot be nil")
	}
	h := &Handler[T]{
		run:     fn,
		logger:  logging.NoOp(),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Execute validates msg and runs the command under the handler deadline.
func (h *Handler[T]) Execute(ctx context.Context, msg T) error {
	commandType := command.GetMessageType(msg)
	logger := h.entryLogger(commandType)

	if err := command.ValidateMessage(msg); err != nil {
		logger.Warn("notes.command.rejected", "error", err)
		return commandError(outcomeInvalid, commandType, err)
	}

	ctx, cancel := h.deadline(ctx)
	defer cancel()
	if err := ctx.Err(); err != nil {
		return commandError(contextOutcome(err), commandType, err)
	}

	started := time.Now()
	logger.Debug("notes.command.started")
	err := h.run(ctx, msg)
	if err == nil {
		err = ctx.Err()
	}
	elapsed := time.Since(started)

	if err != nil {
		logger.Error("notes.command.failed", "error", err, "elapsed", elapsed)
		return commandError(runOutcome(err), commandType, err)
	}
	logger.Info("notes.command.completed", "elapsed", elapsed)
	return nil
}

func (h *Handler[T]) deadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if h.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, h.timeout)
}

func (h *Handler[T]) entryLogger(commandType string) interfaces.Logger {
	operation := h.operation
	if operation == "" {
		operation = commandType
	}
	return logging.WithFields(h.logger, map[string]any{
		"command":   commandType,
		"operation": operation,
	})
}

// WithTimeout overrides DefaultTimeout. Zero or negative disables it.
func WithTimeout[T command.Message](timeout time.Duration) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.timeout = max(timeout, 0)
	}
}

// WithLogger injects the execution logger.
func WithLogger[T command.Message](logger interfaces.Logger) HandlerOption[T] {
	return func(h *Handler[T]) {
		if logger == nil {
			logger = logging.NoOp()
		}
		h.logger = logger
	}
}

// WithOperation names the operation in log entries, e.g. "manifest.generate".
// It defaults to the message type.
func WithOperation[T command.Message](operation string) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.operation = operation
	}
}
