// SPDX-License-Identifier: MPL-2.0

// Package langjs turns a Laravel-style lang directory into a single
// JavaScript (or JSON) module for vue-i18n and vuex-i18n.
//
// The expected layout is
//
//	lang/
//	  en/
//	    auth.json
//	    validation.yaml
//	  en.json                 # optional JSON translation strings
//	  sv/
//	    auth.json
//	  vendor/                 # optional, merged with withVendor
//	    some-package/
//	      en/messages.toml
//
// Locale directories become top-level keys, group files become second-level
// keys and vendor packages end up under <locale>.vendor.<package>. Every key
// and value is rewritten with package rewrite before rendering.
package langjs
