// Package editor models the code editor: a line buffer with a cursor and an
// optional selection, the indentation-aware key handlers, and a Host that
// re-lints the buffer after edits.
package editor

import (
	"strings"
	"unicode"

	"github.com/okian/codearena/internal/domain/model"
)

// IndentUnit is the width of one indentation level. Indentation is always
// written as spaces.
const IndentUnit = 4

// tabSize is the column width a literal tab counts for when measuring indentation.
const tabSize = 4

// StarterCode is the buffer content a fresh or reset editor starts with.
const StarterCode = `# Write your Python solution here
def solve():
    # Your code goes here
    pass`

// Pos is a zero-based line and rune column.
type Pos = model.Pos

// Buffer is a line-oriented text buffer. It is not safe for concurrent use;
// Host serializes access.
type Buffer struct {
	lines  [][]rune
	anchor Pos
	head   Pos
}

// NewBuffer returns a buffer holding text with the cursor at the origin.
func NewBuffer(text string) *Buffer {
	b := &Buffer{}
	b.SetText(text)
	return b
}

// SetText replaces the whole content and moves the cursor to the origin.
func (b *Buffer) SetText(text string) {
	parts := strings.Split(text, "\n")
	b.lines = make([][]rune, len(parts))
	for i, p := range parts {
		b.lines[i] = []rune(p)
	}
	b.anchor, b.head = Pos{}, Pos{}
}

// Reset restores StarterCode.
func (b *Buffer) Reset() { b.SetText(StarterCode) }

// Text returns the content joined with newlines.
func (b *Buffer) Text() string {
	parts := make([]string, len(b.lines))
	for i, l := range b.lines {
		parts[i] = string(l)
	}
	return strings.Join(parts, "\n")
}

// LineCount returns the number of lines; an empty buffer has one line.
func (b *Buffer) LineCount() int { return len(b.lines) }

// Line returns line i, or "" when out of range.
func (b *Buffer) Line(i int) string {
	if i < 0 || i >= len(b.lines) {
		return ""
	}
	return string(b.lines[i])
}

// Cursor returns the head of the selection.
func (b *Buffer) Cursor() Pos { return b.head }

// SetCursor moves the cursor and collapses the selection.
func (b *Buffer) SetCursor(p Pos) {
	p = b.clamp(p)
	b.anchor, b.head = p, p
}

// Select sets a selection from anchor to head.
func (b *Buffer) Select(anchor, head Pos) {
	b.anchor, b.head = b.clamp(anchor), b.clamp(head)
}

// SelectLines selects whole lines first..last inclusive.
func (b *Buffer) SelectLines(first, last int) {
	if first > last {
		first, last = last, first
	}
	last = b.clampLine(last)
	b.Select(Pos{Line: first}, Pos{Line: last, Col: len(b.lines[last])})
}

// SomethingSelected reports whether the selection is non-empty.
func (b *Buffer) SomethingSelected() bool { return b.anchor != b.head }

// Selection returns the ordered selection bounds.
func (b *Buffer) Selection() (from, to Pos) {
	if less(b.head, b.anchor) {
		return b.head, b.anchor
	}
	return b.anchor, b.head
}

// SelectedText returns the text inside the selection.
func (b *Buffer) SelectedText() string {
	from, to := b.Selection()
	if from.Line == to.Line {
		return string(b.lines[from.Line][from.Col:to.Col])
	}
	var sb strings.Builder
	sb.WriteString(string(b.lines[from.Line][from.Col:]))
	for i := from.Line + 1; i < to.Line; i++ {
		sb.WriteByte('\n')
		sb.WriteString(string(b.lines[i]))
	}
	sb.WriteByte('\n')
	sb.WriteString(string(b.lines[to.Line][:to.Col]))
	return sb.String()
}

// ReplaceSelection replaces the selection (or inserts at the cursor) and
// leaves the cursor at the end of the inserted text.
func (b *Buffer) ReplaceSelection(text string) {
	from, to := b.Selection()
	prefix := b.lines[from.Line][:from.Col]
	suffix := b.lines[to.Line][to.Col:]

	joined := string(prefix) + text + string(suffix)
	parts := strings.Split(joined, "\n")
	repl := make([][]rune, len(parts))
	for i, p := range parts {
		repl[i] = []rune(p)
	}

	lines := make([][]rune, 0, len(b.lines)-(to.Line-from.Line)+len(repl)-1)
	lines = append(lines, b.lines[:from.Line]...)
	lines = append(lines, repl...)
	lines = append(lines, b.lines[to.Line+1:]...)
	b.lines = lines

	last := from.Line + len(repl) - 1
	b.SetCursor(Pos{Line: last, Col: len(repl[len(repl)-1]) - len(suffix)})
}

// touchedLines returns the line range an indent or comment operation acts on.
// A multi-line selection ending at column zero does not include its last line.
func (b *Buffer) touchedLines() (first, last int) {
	if !b.SomethingSelected() {
		return b.head.Line, b.head.Line
	}
	from, to := b.Selection()
	last = to.Line
	if to.Col == 0 && to.Line > from.Line {
		last--
	}
	return from.Line, last
}

// setLine replaces line i and shifts selection columns on that line by the
// change in indentation.
func (b *Buffer) setLine(i int, text []rune, oldIndent, newIndent int) {
	b.lines[i] = text
	shift := func(p Pos) Pos {
		if p.Line != i {
			return p
		}
		if p.Col >= oldIndent {
			p.Col += newIndent - oldIndent
		} else if p.Col > newIndent {
			p.Col = newIndent
		}
		if p.Col < 0 {
			p.Col = 0
		}
		if p.Col > len(text) {
			p.Col = len(text)
		}
		return p
	}
	b.anchor, b.head = shift(b.anchor), shift(b.head)
}

func (b *Buffer) clampLine(i int) int {
	if i < 0 {
		return 0
	}
	if i >= len(b.lines) {
		return len(b.lines) - 1
	}
	return i
}

func (b *Buffer) clamp(p Pos) Pos {
	p.Line = b.clampLine(p.Line)
	if p.Col < 0 {
		p.Col = 0
	}
	if n := len(b.lines[p.Line]); p.Col > n {
		p.Col = n
	}
	return p
}

func less(a, b Pos) bool {
	return a.Line < b.Line || (a.Line == b.Line && a.Col < b.Col)
}

// leading splits a line into its leading whitespace and the rest.
func leading(line []rune) (ws, rest []rune) {
	for i, r := range line {
		if !unicode.IsSpace(r) {
			return line[:i], line[i:]
		}
	}
	return line, nil
}

// indentColumn measures leading whitespace in columns, counting tabs as tabSize.
func indentColumn(ws []rune) int {
	c := 0
	for _, r := range ws {
		if r == '\t' {
			c += tabSize - c%tabSize
			continue
		}
		c++
	}
	return c
}
