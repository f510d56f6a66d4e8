// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable errors and a catalog of markdown help
// pages for the failures a langjs user can fix on their own: a missing lang
// directory, a group file that does not parse, an unknown output format and
// so on. Help pages are rendered for the terminal with glamour.
package issue
