// Package apperr defines the error taxonomy shared by services and handlers.
// Repositories and services wrap these sentinels with fmt.Errorf("...: %w");
// the handler layer maps them to HTTP statuses with errors.Is/errors.As.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means no fileset (or alphabet) matched the supplied
	// identifier, scope, and type constraints.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the fileset resolved but the caller's grant set
	// does not contain its hash id. Never downgraded to ErrNotFound.
	ErrForbidden = errors.New("forbidden")

	// ErrAuthorizationUnavailable means the authorization subsystem could
	// not be reached. The access cache fails closed, so callers observe
	// this as a denial rather than a crash.
	ErrAuthorizationUnavailable = errors.New("authorization unavailable")
)

// RangeTooLargeError is returned when a numeral range request exceeds the
// maximum span. The requested end value is kept for diagnosability.
type RangeTooLargeError struct {
	Start   int
	End     int
	MaxSpan int
}

func (e *RangeTooLargeError) Error() string {
	return fmt.Sprintf("numeral range %d to %d exceeds the maximum span of %d numbers (requested end: %d)",
		e.Start, e.End, e.MaxSpan, e.End)
}
