package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to errors returned by Handler.Execute.
const (
	TextCodeInvalid   = "NOTES_COMMAND_INVALID"
	TextCodeCancelled = "NOTES_COMMAND_CANCELLED"
	TextCodeTimeout   = "NOTES_COMMAND_TIMEOUT"
	TextCodeAborted   = "NOTES_COMMAND_ABORTED"
	TextCodeFailed    = "NOTES_COMMAND_FAILED"
)

type outcome int

const (
	outcomeInvalid outcome = iota
	outcomeCancelled
	outcomeTimeout
	outcomeAborted
	outcomeFailed
)

var outcomes = map[outcome]struct {
	category goerrors.Category
	code     string
	message  string
}{
	outcomeInvalid:   {goerrors.CategoryValidation, TextCodeInvalid, "notes command rejected"},
	outcomeCancelled: {goerrors.CategoryCommand, TextCodeCancelled, "notes command cancelled"},
	outcomeTimeout:   {goerrors.CategoryCommand, TextCodeTimeout, "notes command timed out"},
	outcomeAborted:   {goerrors.CategoryCommand, TextCodeAborted, "notes command aborted"},
	outcomeFailed:    {goerrors.CategoryCommand, TextCodeFailed, "notes command failed"},
}

// contextOutcome maps a context error onto the matching outcome.
func contextOutcome(err error) outcome {
	switch {
	case errors.Is(err, context.Canceled):
		return outcomeCancelled
	case errors.Is(err, context.DeadlineExceeded):
		return outcomeTimeout
	default:
		return outcomeAborted
	}
}

// runOutcome classifies an error returned by the command function. Context
// errors take precedence over the generic failure.
func runOutcome(err error) outcome {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return contextOutcome(err)
	}
	return outcomeFailed
}

// commandError wraps err for kind. Rejected messages are always re-coded
// as NOTES_COMMAND_INVALID; any other error that already carries a
// go-errors category is returned unchanged.
func commandError(kind outcome, commandType string, err error) error {
	if err == nil {
		return nil
	}
	if kind != outcomeInvalid && goerrors.IsWrapped(err) {
		return err
	}
	spec := outcomes[kind]
	return goerrors.Wrap(err, spec.category, spec.message).
		WithTextCode(spec.code).
		WithMetadata(map[string]any{"command": commandType})
}
