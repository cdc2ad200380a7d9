package model

// ReplayResult is the backend-assigned outcome of a graded submission.
type ReplayResult string

const (
	ReplayPassed    ReplayResult = "passed"
	ReplayPartially ReplayResult = "partially"
	ReplayFailed    ReplayResult = "failed"
)

// TestResult is one public test outcome from POST /run.
type TestResult struct {
	TestNumber     int     `json:"test_number"`
	Input          string  `json:"input"`
	Success        bool    `json:"success"`
	Passed         bool    `json:"passed"`
	ExpectedOutput string  `json:"expected_output"`
	ActualOutput   string  `json:"actual_output"`
	Error          string  `json:"error"`
	ExecutionTime  float64 `json:"execution_time"`
}

// RunSummary aggregates a run.
type RunSummary struct {
	Passed     int     `json:"passed"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// RunResult mirrors the POST /run response.
type RunResult struct {
	Success bool         `json:"success"`
	Results []TestResult `json:"results,omitempty"`
	Summary *RunSummary  `json:"summary,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// Grade is the scored outcome of POST /submit.
type Grade struct {
	Score        int          `json:"score"`
	Total        int          `json:"total"`
	ReplayResult ReplayResult `json:"replay_result"`
	ErrorDetails []string     `json:"error_details,omitempty"`
}

// SubmitResult wraps Grade as returned on the wire.
type SubmitResult struct {
	Grade Grade `json:"grade"`
}

// LeaderboardEntry is one row of GET /leaderboard, already ranked by the backend.
type LeaderboardEntry struct {
	UserID       string       `json:"user_id"`
	ProblemID    string       `json:"problem_id"`
	Score        int          `json:"score"`
	ReplayResult ReplayResult `json:"replay_result"`
	Timestamp    string       `json:"timestamp"`
}
