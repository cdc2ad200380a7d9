package model

// Severity grades a lint annotation.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Rank orders severities so callers can filter by a minimum level.
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 3
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}

// Pos is a zero-based line and rune column.
type Pos struct {
	Line int
	Col  int
}

// Annotation describes an issue spanning [From, To) in the source text.
type Annotation struct {
	From     Pos
	To       Pos
	Message  string
	Severity Severity
}
