// SPDX-License-Identifier: MPL-2.0

package rewrite

import (
	"errors"
	"fmt"
)

const (
	// LibraryDefault selects the default pluralization handling, which is
	// identical to LibraryVueI18n.
	LibraryDefault Library = ""
	// LibraryVueI18n keeps "|" pluralization separators untouched.
	LibraryVueI18n Library = "vue-i18n"
	// LibraryVuexI18n rewrites "|" separators into " ::: ".
	LibraryVuexI18n Library = "vuex-i18n"
)

// ErrInvalidLibrary is returned when a Library value is not recognized.
var ErrInvalidLibrary = errors.New("invalid pluralization library")

type (
	// Library identifies the front-end localization library whose
	// pluralization convention the output must follow.
	Library string

	// InvalidLibraryError is returned when a Library value is not recognized.
	// It wraps ErrInvalidLibrary for errors.Is() compatibility.
	InvalidLibraryError struct {
		Value Library
	}
)

// ParseLibrary converts s into a Library, rejecting unknown names.
func ParseLibrary(s string) (Library, error) {
	lib := Library(s)
	if valid, errs := lib.IsValid(); !valid {
		return LibraryDefault, errs[0]
	}
	return lib, nil
}

// String returns the string representation of the Library.
func (l Library) String() string { return string(l) }

// IsValid returns whether the Library is one of the defined values.
func (l Library) IsValid() (bool, []error) {
	switch l {
	case LibraryDefault, LibraryVueI18n, LibraryVuexI18n:
		return true, nil
	default:
		return false, []error{&InvalidLibraryError{Value: l}}
	}
}

// Error implements the error interface for InvalidLibraryError.
func (e *InvalidLibraryError) Error() string {
	return fmt.Sprintf("invalid pluralization library %q (valid: %s, %s)", e.Value, LibraryVueI18n, LibraryVuexI18n)
}

// Unwrap returns ErrInvalidLibrary for errors.Is() compatibility.
func (e *InvalidLibraryError) Unwrap() error { return ErrInvalidLibrary }
