package documents

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// ErrInvalidPath reports a category or document name that would resolve
// outside the document root.
var ErrInvalidPath = errors.New("documents: invalid path")

// ErrNotFound reports a document that does not exist or is not a regular file.
var ErrNotFound = errors.New("documents: file not found")

const (
	TextCodeInvalidPath = "DOCUMENT_INVALID_PATH"
	TextCodeNotFound    = "DOCUMENT_NOT_FOUND"
	TextCodeListFailed  = "DOCUMENTS_LIST_FAILED"
	TextCodeReadFailed  = "DOCUMENT_READ_FAILED"
)

func invalidPathError() error {
	return goerrors.Wrap(ErrInvalidPath, goerrors.CategoryValidation, ErrInvalidPath.Error()).
		WithTextCode(TextCodeInvalidPath)
}

func notFoundError() error {
	return goerrors.Wrap(ErrNotFound, goerrors.CategoryNotFound, ErrNotFound.Error()).
		WithTextCode(TextCodeNotFound)
}

// ServiceError carries an unexpected filesystem or decoding failure.
// Its message is the cause's own text so it can be reported to clients as is.
type ServiceError struct {
	Err error
}

func (e *ServiceError) Error() string { return e.Err.Error() }

func (e *ServiceError) Unwrap() error { return e.Err }

func serviceError(err error, code string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(&ServiceError{Err: err}, goerrors.CategoryInternal, err.Error()).
		WithTextCode(code)
}

// IsInvalidPath reports whether err is an invalid path failure.
func IsInvalidPath(err error) bool {
	return errors.Is(err, ErrInvalidPath)
}

// FailureMessage returns the text of the ServiceError inside err, or
// err.Error() when there is none.
func FailureMessage(err error) string {
	if err == nil {
		return ""
	}
	var svc *ServiceError
	if errors.As(err, &svc) {
		return svc.Error()
	}
	return err.Error()
}

// IsNotFound reports whether err is a missing document failure.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
