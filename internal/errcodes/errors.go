package errcodes

import (
	"errors"
	"fmt"
)

var (
	ErrMissingApplication              = errors.New("application is missing")
	ErrMissingServerURL                = errors.New("server url is missing")
	ErrMissingServerToken              = errors.New("server token is missing")
	ErrMissingRepository               = errors.New("repository is missing")
	ErrMissingDisplayName              = errors.New("display name is missing")
	ErrRepositoryMustBeInFormOwnerRepo = errors.New("repository must be in the form of 'owner/repo'")
	ErrUnknownSortDirection            = errors.New("sort direction is unknown, expected (asc, desc)")
)

type OperationKind int

const (
	// A failed required operation is reported to whoever started it.
	OperationRequired OperationKind = iota
	// A failed best-effort operation is recorded and dropped. The caller
	// never sees it.
	OperationBestEffort
)

func (k OperationKind) String() string {
	switch k {
	case OperationBestEffort:
		return "best-effort"
	default:
		return "required"
	}
}

type OperationError struct {
	Op   string
	Kind OperationKind
	Err  error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s (%s): %v", e.Op, e.Kind, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

func NewBestEffortError(op string, err error) *OperationError {
	return &OperationError{Op: op, Kind: OperationBestEffort, Err: err}
}

func NewRequiredError(op string, err error) *OperationError {
	return &OperationError{Op: op, Kind: OperationRequired, Err: err}
}

// IsBestEffort reports whether any error in err's chain is a best-effort
// operation failure.
func IsBestEffort(err error) bool {
	var oe *OperationError
	if errors.As(err, &oe) {
		return oe.Kind == OperationBestEffort
	}

	return false
}
