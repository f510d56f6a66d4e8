// SPDX-License-Identifier: MPL-2.0

// Package rewrite converts Laravel translation strings into the placeholder
// and pluralization conventions of the vue-i18n family of libraries.
//
// Placeholders written as ":name" become "{name}". A placeholder can be kept
// literal by prefixing it with the escape character ("!:name" renders as
// ":name"). A colon that directly follows a word character (as in "mailto:")
// is never treated as a placeholder.
package rewrite
