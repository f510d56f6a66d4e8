// SPDX-License-Identifier: MPL-2.0

package rewrite

import (
	"strings"
	"unicode"
)

const (
	// EscapeChar marks the following ":word" as literal text.
	EscapeChar = '!'

	placeholderMark = ':'
	pluralSeparator = "|"
	vuexSeparator   = " ::: "
)

// String rewrites a translation value: placeholders are converted with Key,
// then pluralization separators are adapted to lib.
func String(raw string, lib Library) string {
	s := Key(raw)
	if lib == LibraryVuexI18n && strings.Contains(s, pluralSeparator) {
		return joinPlurals(s)
	}
	return s
}

// Key converts ":word" placeholders into "{word}" and resolves "!:word"
// escapes into a literal ":word". Unlike String it never touches "|".
//
// A placeholder is only recognized when the colon is at the start of the
// string or follows a non-word character, so "mailto:x" stays intact.
func Key(raw string) string {
	if !strings.ContainsRune(raw, placeholderMark) {
		return raw
	}

	rs := []rune(raw)
	var b strings.Builder
	b.Grow(len(raw) + 8)

	// afterWord tracks whether the source character before rs[i] is a word
	// character. A consumed placeholder or escape always ends on one.
	afterWord := false
	for i := 0; i < len(rs); {
		r := rs[i]

		if r == EscapeChar && startsWord(rs, i+1) {
			end := wordEnd(rs, i+2)
			b.WriteRune(placeholderMark)
			b.WriteString(string(rs[i+2 : end]))
			afterWord = true
			i = end
			continue
		}

		if r == placeholderMark && !afterWord && i+1 < len(rs) && isWordRune(rs[i+1]) {
			end := wordEnd(rs, i+1)
			b.WriteByte('{')
			b.WriteString(string(rs[i+1 : end]))
			b.WriteByte('}')
			afterWord = true
			i = end
			continue
		}

		b.WriteRune(r)
		afterWord = isWordRune(r)
		i++
	}

	return b.String()
}

// joinPlurals splits s on "|", trims every variant and joins them with the
// vuex-i18n separator.
func joinPlurals(s string) string {
	variants := strings.Split(s, pluralSeparator)
	for i, v := range variants {
		variants[i] = strings.TrimSpace(v)
	}
	return strings.Join(variants, vuexSeparator)
}

// startsWord reports whether rs[i:] begins with ":" followed by a word rune.
func startsWord(rs []rune, i int) bool {
	return i+1 < len(rs) && rs[i] == placeholderMark && isWordRune(rs[i+1])
}

// wordEnd returns the index just past the run of word runes starting at i.
func wordEnd(rs []rune, i int) int {
	for i < len(rs) && isWordRune(rs[i]) {
		i++
	}
	return i
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
