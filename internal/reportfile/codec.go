// Package reportfile implements the editable text rendering of a crash
// report: a codec that escapes field content so it cannot clash with
// document comments, and a framer that lays fields out between boundary
// markers and reads operator edits back.
package reportfile

import "strings"

const (
	commentChar = '#'
	escapeChar  = '\\'
)

// Encode escapes line-start comment markers in s so the content can be
// embedded in a commented document without ambiguity. A line beginning with
// '#' gets a leading backslash, and a line beginning with `\#` gets another
// backslash escaping the escape. Decode reverses the transformation.
func Encode(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	newline := true
	for i := 0; i < len(s); i++ {
		if newline {
			switch {
			case s[i] == commentChar:
				b.WriteByte(escapeChar)
			case s[i] == escapeChar && i+1 < len(s) && s[i+1] == commentChar:
				b.WriteByte(escapeChar)
			}
		}

		newline = s[i] == '\n'
		b.WriteByte(s[i])
	}

	return b.String()
}

// Decode drops comment lines (including their trailing newline) and strips
// the escapes added by Encode. Lines starting with a lone backslash that is
// not an escape sequence pass through unchanged.
func Decode(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	newline := true
	for i := 0; i < len(s); {
		if newline {
			if s[i] == commentChar {
				for i < len(s) && s[i] != '\n' {
					i++
				}
				if i < len(s) {
					i++
				}

				continue
			}

			if s[i] == escapeChar && i+1 < len(s) &&
				(s[i+1] == commentChar ||
					(s[i+1] == escapeChar && i+2 < len(s) && s[i+2] == commentChar)) {
				i++
			}
		}

		newline = s[i] == '\n'
		b.WriteByte(s[i])
		i++
	}

	return b.String()
}
