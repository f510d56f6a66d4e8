// SPDX-License-Identifier: MPL-2.0

// Package cueutil wraps the CUE compile/unify/validate/decode sequence used by
// the configuration file and by .cue translation groups, and turns CUE errors
// into messages that name the file and the offending field path, e.g.
//
//	langjs.cue: pluralization_library: 2 errors in empty disjunction
package cueutil
