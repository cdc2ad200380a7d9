package editor

import (
	"strings"
)

var unit = strings.Repeat(" ", IndentUnit)

// Newline inserts a line break carrying the current line's indentation.
//
// The current line alone decides the new indentation: a trailing ':' adds one
// level, a line that is exactly pass, break or continue removes one level, and
// any other line (including return/raise statements) keeps it. Nothing is
// remembered for the line after.
func (b *Buffer) Newline() {
	line := b.lines[b.head.Line]
	ws, rest := leading(line)
	indent := string(ws)
	if rest == nil {
		// whitespace-only lines carry no indentation
		indent = ""
	}
	trimmed := strings.TrimSpace(string(line))

	switch {
	case strings.HasSuffix(trimmed, ":"):
		indent += unit
	case trimmed == "pass" || trimmed == "break" || trimmed == "continue":
		if r := []rune(indent); len(r) >= IndentUnit {
			indent = string(r[:len(r)-IndentUnit])
		}
	}
	b.ReplaceSelection("\n" + indent)
}

// Tab indents the selected lines, or inserts one indentation unit of spaces
// at the cursor when nothing is selected.
func (b *Buffer) Tab() {
	if !b.SomethingSelected() {
		b.ReplaceSelection(unit)
		return
	}
	first, last := b.touchedLines()
	for i := first; i <= last; i++ {
		b.reindent(i, IndentUnit)
	}
}

// ShiftTab removes one indentation unit from the cursor line or the selected
// lines. Indentation never goes below zero.
func (b *Buffer) ShiftTab() {
	first, last := b.touchedLines()
	for i := first; i <= last; i++ {
		b.reindent(i, -IndentUnit)
	}
}

func (b *Buffer) reindent(i, delta int) {
	ws, rest := leading(b.lines[i])
	cols := indentColumn(ws) + delta
	if cols < 0 {
		cols = 0
	}
	text := append([]rune(strings.Repeat(" ", cols)), rest...)
	b.setLine(i, text, len(ws), cols)
}
