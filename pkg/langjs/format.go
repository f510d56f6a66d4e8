// SPDX-License-Identifier: MPL-2.0

package langjs

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/langjs/langjs/pkg/localetree"
)

const (
	// FormatES6 renders "export default {...}".
	FormatES6 Format = "es6"
	// FormatUMD renders a UMD loader exposing the locales as module.exports,
	// an AMD module, or the vuei18nLocales global.
	FormatUMD Format = "umd"
	// FormatJSON renders the bare JSON object.
	FormatJSON Format = "json"

	// UMDGlobal is the global the UMD module registers the locales on when no
	// module system is present.
	UMDGlobal = "vuei18nLocales"

	indent = "    "

	umdHeader = `(function (global, factory) {
    typeof exports === 'object' && typeof module !== 'undefined' ? module.exports = factory() :
        typeof define === 'function' && define.amd ? define(factory) :
            typeof global.` + UMDGlobal + ` === 'undefined' ? global.` + UMDGlobal + ` = factory() : Object.keys(factory()).forEach(function (key) {global.` + UMDGlobal + `[key] = factory()[key]});
}(this, (function () { 'use strict';
    return `
	umdFooter = "\n})));"
)

// Format selects the module wrapper of the generated output.
type Format string

// Formats returns the supported formats in documentation order.
func Formats() []Format {
	return []Format{FormatES6, FormatUMD, FormatJSON}
}

// ParseFormat validates s. The empty string selects FormatES6.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case "":
		return FormatES6, nil
	case FormatES6, FormatUMD, FormatJSON:
		return f, nil
	default:
		return "", &FormatError{Format: s}
	}
}

// String returns the string representation of the Format.
func (f Format) String() string { return string(f) }

// IsValid returns whether f is a supported format. The zero value is valid
// and selects FormatES6.
func (f Format) IsValid() (bool, []error) {
	if _, err := ParseFormat(string(f)); err != nil {
		return false, []error{err}
	}
	return true, nil
}

// Extension returns the file extension conventionally used for f.
func (f Format) Extension() string {
	if f == FormatJSON {
		return ".json"
	}
	return ".js"
}

// Serialize renders tree in the named format.
func Serialize(tree *localetree.Node, format string) (string, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return "", err
	}
	return Render(tree, f)
}

// Render renders tree as f. The tree is only read.
func Render(tree *localetree.Node, f Format) (string, error) {
	var body strings.Builder
	if err := writeNode(&body, tree, 0); err != nil {
		return "", err
	}
	body.WriteByte('\n')

	switch f {
	case FormatES6:
		return "export default " + body.String(), nil
	case FormatJSON:
		return body.String(), nil
	case FormatUMD:
		return umdHeader + body.String() + umdFooter, nil
	default:
		return "", &FormatError{Format: string(f)}
	}
}

// writeNode pretty-prints n at the given depth without a trailing newline.
func writeNode(b *strings.Builder, n *localetree.Node, depth int) error {
	if n.IsLeaf() {
		return writeString(b, n.Value())
	}
	if n.Len() == 0 {
		b.WriteString("{}")
		return nil
	}

	b.WriteString("{\n")
	i := 0
	for key, child := range n.All() {
		b.WriteString(strings.Repeat(indent, depth+1))
		if err := writeString(b, key); err != nil {
			return err
		}
		b.WriteString(": ")
		if err := writeNode(b, child, depth+1); err != nil {
			return err
		}
		if i < n.Len()-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
		i++
	}
	b.WriteString(strings.Repeat(indent, depth))
	b.WriteByte('}')
	return nil
}

// writeString writes s as a JSON string literal. HTML characters are kept
// verbatim so markup in translations stays readable.
func writeString(b *strings.Builder, s string) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	b.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
	return nil
}
