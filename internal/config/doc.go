// SPDX-License-Identifier: MPL-2.0

// Package config loads langjs settings using Viper with CUE as the file format.
//
// The first file found wins: the path given with --config, then config.cue in
// the user configuration directory (~/.config/langjs on Linux,
// ~/Library/Application Support/langjs on macOS, %APPDATA%\langjs on
// Windows), then langjs.cue in the working directory. Files are validated
// against the embedded #Config schema (config_schema.cue). LANGJS_* environment
// variables override file values, e.g. LANGJS_FORMAT=umd or
// LANGJS_UI_VERBOSE=true.
package config
