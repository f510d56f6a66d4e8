// SPDX-License-Identifier: MPL-2.0

package langjs

import (
	"errors"
	"fmt"
)

var (
	// ErrLoad is matched by every LoadError.
	ErrLoad = errors.New("load error")
	// ErrInvalidFormat is matched by every FormatError.
	ErrInvalidFormat = errors.New("invalid format")
)

type (
	// LoadError reports a lang root, locale directory or group file that is
	// missing, unreadable or malformed. Generation stops at the first one.
	LoadError struct {
		// Path is the offending path, relative to the lang root when known.
		Path string
		// Err is the underlying cause.
		Err error
	}

	// FormatError reports an output format outside the supported set.
	FormatError struct {
		Format string
	}
)

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("could not load %s: %v", e.Path, e.Err)
}

// Unwrap exposes both ErrLoad and the underlying cause to errors.Is/As.
func (e *LoadError) Unwrap() []error { return []error{ErrLoad, e.Err} }

// Error implements the error interface. The message is relied upon by
// scripts and must not change.
func (e *FormatError) Error() string {
	return "Invalid format passed: " + e.Format
}

// Unwrap returns ErrInvalidFormat for errors.Is() compatibility.
func (e *FormatError) Unwrap() error { return ErrInvalidFormat }
