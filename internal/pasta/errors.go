// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pasta

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDOI indicates a DOI that is not of the EDI form 10.6073/pasta/<md5>.
	ErrInvalidDOI = errors.New("invalid EDI DOI")

	// ErrUnresolved indicates the resource map did not yield package coordinates.
	ErrUnresolved = errors.New("package not resolved")

	// ErrEmptyTransaction indicates the archive request returned no transaction id.
	ErrEmptyTransaction = errors.New("empty archive transaction id")
)

type (
	// ValidationError reports a DOI that failed shape validation after
	// normalization. It wraps ErrInvalidDOI.
	ValidationError struct {
		DOI string
	}

	// ResolutionError reports a resource map without a usable EML URL.
	// Detail holds the full response body or the offending URL.
	// It wraps ErrUnresolved.
	ResolutionError struct {
		Reason string
		Detail string
	}

	// EmptyTransactionError reports an archive creation response whose body
	// was empty after trimming. It wraps ErrEmptyTransaction.
	EmptyTransactionError struct {
		Package string
	}
)

func (e *ValidationError) Error() string {
	return fmt.Sprintf("expected DOI like 10.6073/pasta/<32-hex-md5>, got: %s", e.DOI)
}

// Unwrap returns ErrInvalidDOI.
func (e *ValidationError) Unwrap() error { return ErrInvalidDOI }

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("%s:\n%s", e.Reason, e.Detail)
}

// Unwrap returns ErrUnresolved.
func (e *ResolutionError) Unwrap() error { return ErrUnresolved }

func (e *EmptyTransactionError) Error() string {
	return fmt.Sprintf("archive transaction id for %s was empty", e.Package)
}

// Unwrap returns ErrEmptyTransaction.
func (e *EmptyTransactionError) Unwrap() error { return ErrEmptyTransaction }
