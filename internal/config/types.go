// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/langjs/langjs/pkg/langjs"
	"github.com/langjs/langjs/pkg/rewrite"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// DefaultLangPath is the Laravel lang directory relative to the project root.
	DefaultLangPath = "resources/lang"
	// DefaultOutput is the generated module written in single-file mode.
	DefaultOutput = "resources/js/vue-i18n-locales.generated.js"
	// DefaultOutputDir receives one module per locale in multi mode.
	DefaultOutputDir = "resources/js/langs"
	// DefaultDebounce is the quiet period before watch mode regenerates.
	DefaultDebounce = 500 * time.Millisecond
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidPath is returned when a configured path is whitespace-only.
	ErrInvalidPath = errors.New("invalid path")
	// ErrInvalidDebounce is returned when the watch debounce is not positive.
	ErrInvalidDebounce = errors.New("invalid watch debounce")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidPathError is returned when a path setting is whitespace-only.
	InvalidPathError struct {
		Field string
		Value string
	}

	// InvalidDebounceError is returned when watch.debounce is zero or negative.
	InvalidDebounceError struct {
		Value time.Duration
	}

	// InvalidUIConfigError is returned when a UIConfig has invalid fields.
	// It wraps ErrInvalidUIConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// LangPath is the directory holding one subdirectory per locale.
		LangPath string `json:"lang_path" mapstructure:"lang_path"`
		// Output is the file written in single-file mode.
		Output string `json:"output" mapstructure:"output"`
		// OutputDir receives <locale>.js files in multi mode.
		OutputDir string `json:"output_dir" mapstructure:"output_dir"`
		// Format is one of es6, umd or json.
		Format langjs.Format `json:"format" mapstructure:"format"`
		// PluralizationLibrary is vue-i18n or vuex-i18n.
		PluralizationLibrary rewrite.Library `json:"pluralization_library" mapstructure:"pluralization_library"`
		// WithVendor merges lang/vendor packages under each locale.
		WithVendor bool `json:"with_vendor" mapstructure:"with_vendor"`
		// LangFiles restricts output to the named groups. Empty means all.
		LangFiles []string `json:"lang_files" mapstructure:"lang_files"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui"`
		// Watch configures watch mode
		Watch WatchConfig `json:"watch" mapstructure:"watch"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables debug logging and full error chains
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}

	// WatchConfig configures watch mode.
	WatchConfig struct {
		// Debounce is how long the lang directory must stay quiet before a
		// rebuild. Written as a Go duration string ("500ms").
		Debounce time.Duration `json:"debounce" mapstructure:"debounce"`
	}
)

// IsValid returns whether the Config has valid fields.
// It delegates to Format, PluralizationLibrary, UI and Watch; the path
// settings must not be whitespace-only.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	for _, p := range []struct{ field, value string }{
		{"lang_path", c.LangPath},
		{"output", c.Output},
		{"output_dir", c.OutputDir},
	} {
		if strings.TrimSpace(p.value) == "" {
			errs = append(errs, &InvalidPathError{Field: p.field, Value: p.value})
		}
	}
	if valid, fieldErrs := c.Format.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.PluralizationLibrary.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Watch.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap exposes ErrInvalidConfig and every field error.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// IsValid returns whether the UIConfig has valid fields.
// It delegates to ColorScheme.IsValid(); bool fields need no validation.
func (c UIConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidUIConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidUIConfigError.
func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap exposes ErrInvalidUIConfig and every field error.
func (e *InvalidUIConfigError) Unwrap() []error {
	return append([]error{ErrInvalidUIConfig}, e.FieldErrors...)
}

// IsValid returns whether the debounce is positive.
func (c WatchConfig) IsValid() (bool, []error) {
	if c.Debounce <= 0 {
		return false, []error{&InvalidDebounceError{Value: c.Debounce}}
	}
	return true, nil
}

// Error implements the error interface for InvalidDebounceError.
func (e *InvalidDebounceError) Error() string {
	return fmt.Sprintf("invalid watch debounce %s: must be positive", e.Value)
}

// Unwrap returns ErrInvalidDebounce for errors.Is() compatibility.
func (e *InvalidDebounceError) Unwrap() error { return ErrInvalidDebounce }

// Error implements the error interface for InvalidPathError.
func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid %s %q: must not be empty", e.Field, e.Value)
}

// Unwrap returns ErrInvalidPath for errors.Is() compatibility.
func (e *InvalidPathError) Unwrap() error { return ErrInvalidPath }

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		LangPath:             DefaultLangPath,
		Output:               DefaultOutput,
		OutputDir:            DefaultOutputDir,
		Format:               langjs.FormatES6,
		PluralizationLibrary: rewrite.LibraryVueI18n,
		WithVendor:           false,
		LangFiles:            []string{},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
		Watch: WatchConfig{
			Debounce: DefaultDebounce,
		},
	}
}
