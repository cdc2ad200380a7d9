// Package model contains domain models passed between layers.
package model

// Example is a worked input/output pair shown with a problem statement.
type Example struct {
	Input       string
	Output      string
	Explanation string
}

// Problem is a static catalog entry. Values are never mutated after load.
type Problem struct {
	ID           string
	Title        string
	Description  string
	InputFormat  string
	OutputFormat string
	Constraints  []string
	Examples     []Example
}

// TestCase is a single input with its expected output.
type TestCase struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expected_output"`
}

// ProblemDetail mirrors GET /problem/{id}.
type ProblemDetail struct {
	ProblemID   string     `json:"problem_id"`
	PublicTests []TestCase `json:"public_tests"`
	HiddenTests []TestCase `json:"hidden_tests,omitempty"`
	TotalTests  int        `json:"total_tests"`
}

// HiddenCount reports how many tests are withheld from the user.
// An explicit hidden list wins; otherwise the count is derived from TotalTests.
func (d ProblemDetail) HiddenCount() int {
	if len(d.HiddenTests) > 0 {
		return len(d.HiddenTests)
	}
	n := d.TotalTests - len(d.PublicTests)
	if n < 0 {
		return 0
	}
	return n
}

// User is the locally remembered identity.
type User struct {
	Username string `json:"username"`
}
