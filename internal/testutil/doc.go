// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Common helpers include lang tree fixtures (WriteTree, MustReadFile),
// environment variable management (MustSetenv, SetHomeDir) and directory
// operations (MustChdir, MustMkdirAll).
package testutil
