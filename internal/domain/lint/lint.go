// Package lint implements a best-effort Python linter used for editor
// annotations. It is a flat pass over physical lines with independent pattern
// checks; it does not tokenize or parse, and multi-line constructs may be
// reported as errors.
package lint

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/okian/codearena/internal/domain/model"
)

// Indentation width the indentation check enforces.
const indentUnit = 4

// Messages emitted by the checks.
const (
	MsgUnclosedBracket   = "Unclosed bracket, parenthesis, or brace"
	MsgIndentation       = "Indentation should be a multiple of 4 spaces"
	MsgAssignInCondition = "Use '==' for comparison, not '=' (assignment)"
	MsgMultipleStmts     = "Avoid multiple statements on one line (PEP 8)"
	MsgOperatorSpacing   = "Missing whitespace around operator (PEP 8)"
)

var (
	colonKeywords = regexp.MustCompile(`^(def|if|elif|else|for|while|try|except|finally|class|with)\s+`)
	assignInCond  = regexp.MustCompile(`^(if|while|elif)\s+.*[^=!<>]=[^=]`)
	// Compound assignment missing whitespace on at least one side.
	tightOperator = regexp.MustCompile(`\w\s*[+\-*/%]=\w|\w[+\-*/%]=\s*\w`)
)

type typo struct {
	wrong string
	right string
	re    *regexp.Regexp
}

// Order is observable: annotations for one line follow this list.
var typos = newTypos([][2]string{
	{"prnt", "print"},
	{"retrun", "return"},
	{"eslif", "elif"},
	{"esle", "else"},
	{"dfe", "def"},
	{"improt", "import"},
	{"form", "from"},
})

func newTypos(pairs [][2]string) []typo {
	out := make([]typo, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, typo{
			wrong: p[0],
			right: p[1],
			re:    regexp.MustCompile(`\b` + regexp.QuoteMeta(p[0]) + `\b`),
		})
	}
	return out
}

// Lint returns the annotations for text in line order, and within a line in
// check order. It never fails; an empty slice means nothing was found.
func Lint(text string) []model.Annotation {
	out := []model.Annotation{}
	for n, line := range strings.Split(text, "\n") {
		out = lintLine(out, n, line)
	}
	return out
}

func lintLine(out []model.Annotation, n int, line string) []model.Annotation {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return out
	}
	end := utf8.RuneCountInString(line)

	// 1. unclosed brackets, counted on this line only
	opens := strings.Count(line, "(") + strings.Count(line, "[") + strings.Count(line, "{")
	closes := strings.Count(line, ")") + strings.Count(line, "]") + strings.Count(line, "}")
	if opens > closes {
		from := 0
		if i := strings.Index(line, "("); i >= 0 {
			from = col(line, i)
		}
		out = append(out, span(n, from, end, MsgUnclosedBracket, model.SeverityError))
	}

	// 2. missing colon
	if colonKeywords.MatchString(trimmed) && !strings.Contains(line, ":") {
		kw := strings.Fields(trimmed)[0]
		out = append(out, span(n, 0, end,
			"Missing colon (:) at the end of "+kw+" statement", model.SeverityError))
	}

	// 3. indentation multiple
	if indent := firstNonSpace(line); indent != -1 && indent%indentUnit != 0 {
		out = append(out, span(n, 0, indent, MsgIndentation, model.SeverityWarning))
	}

	// 4. typos
	for _, t := range typos {
		for _, m := range t.re.FindAllStringIndex(line, -1) {
			from := col(line, m[0])
			out = append(out, span(n, from, from+utf8.RuneCountInString(t.wrong),
				"Did you mean '"+t.right+"'?", model.SeverityError))
		}
	}

	// 5. assignment in condition
	if assignInCond.MatchString(trimmed) {
		at := col(line, strings.Index(line, "="))
		out = append(out, span(n, at, at+1, MsgAssignInCondition, model.SeverityWarning))
	}

	// 6. multiple statements
	if i := strings.Index(line, ";"); i >= 0 {
		at := col(line, i)
		out = append(out, span(n, at, at+1, MsgMultipleStmts, model.SeverityWarning))
	}

	// 7. operator spacing
	if tightOperator.MatchString(trimmed) && !strings.Contains(trimmed, "==") {
		out = append(out, span(n, 0, end, MsgOperatorSpacing, model.SeverityInfo))
	}

	return out
}

func span(line, from, to int, msg string, sev model.Severity) model.Annotation {
	return model.Annotation{
		From:     model.Pos{Line: line, Col: from},
		To:       model.Pos{Line: line, Col: to},
		Message:  msg,
		Severity: sev,
	}
}

// col converts a byte offset into a rune column.
func col(line string, byteIdx int) int {
	return utf8.RuneCountInString(line[:byteIdx])
}

// firstNonSpace returns the rune column of the first non-space rune, or -1.
func firstNonSpace(line string) int {
	c := 0
	for _, r := range line {
		if !unicode.IsSpace(r) {
			return c
		}
		c++
	}
	return -1
}
