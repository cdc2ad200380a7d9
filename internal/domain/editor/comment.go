package editor

import (
	"strings"
	"unicode"
)

const commentMarker = '#'

// ToggleComment comments or uncomments the selected lines, or the cursor line
// when nothing is selected.
//
// When every non-empty target line already starts with '#' the marker and one
// following whitespace character are removed; otherwise "# " is inserted at
// each non-empty line's indentation column. Empty lines are never touched, so
// toggling twice restores the original text.
func (b *Buffer) ToggleComment() {
	first, last := b.touchedLines()

	all := true
	for i := first; i <= last; i++ {
		t := strings.TrimSpace(string(b.lines[i]))
		if t != "" && !strings.HasPrefix(t, "#") {
			all = false
			break
		}
	}

	for i := first; i <= last; i++ {
		ws, rest := leading(b.lines[i])
		if len(rest) == 0 {
			continue
		}
		n := len(ws)
		var body []rune
		if all {
			body = rest[1:]
			if len(body) > 0 && unicode.IsSpace(body[0]) {
				body = body[1:]
			}
			// markers count as indentation for cursor shifting
			b.setLine(i, concat(ws, body), n+len(rest)-len(body), n)
			continue
		}
		body = concat([]rune{commentMarker, ' '}, rest)
		b.setLine(i, concat(ws, body), n, n+2)
	}
}

func concat(a, b []rune) []rune {
	out := make([]rune, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
