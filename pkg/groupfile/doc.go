// SPDX-License-Identifier: MPL-2.0

// Package groupfile decodes one translation group file into an ordered
// localetree branch.
//
// Supported formats are chosen by file extension: JSON (.json), YAML (.yaml,
// .yml), TOML (.toml) and CUE (.cue). All decoders keep keys in source order.
// Strings are returned untransformed; non-string scalars become their literal
// text, nulls become "" and sequences become branches keyed "0", "1", ...
package groupfile
