// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the langjs command line interface.
//
// The root command carries the global --verbose and --config flags; generate
// turns a Laravel lang directory into a vue-i18n module and config inspects
// or writes the CUE configuration file.
package cmd
