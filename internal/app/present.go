package app

import (
	"time"

	"github.com/okian/codearena/internal/domain/catalog"
	"github.com/okian/codearena/internal/domain/model"
)

// Status is the rendering class of a result.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusPartial Status = "partial"
	StatusFailed  Status = "failed"
)

// ProblemOption is one entry of the problem picker.
type ProblemOption struct {
	ID   string
	Name string
}

// RunView is a POST /run result prepared for display.
type RunView struct {
	Success    bool
	Error      string
	Status     Status
	Passed     int
	Total      int
	Percentage float64
	Tests      []model.TestResult
}

// SubmissionView is a graded submission prepared for display.
type SubmissionView struct {
	ProblemID    string
	ProblemName  string
	Username     string
	Score        int
	Total        int
	Result       model.ReplayResult
	Status       Status
	StatusText   string
	Headline     string
	ErrorDetails []string
	SubmittedAt  time.Time
}

// LeaderboardRow is one ranked leaderboard line.
type LeaderboardRow struct {
	Rank    int
	User    string
	Problem string
	Score   int
	Result  string
	Time    string
}

// Modal headlines.
const (
	HeadlinePassed    = "Perfect Solution! 🎉"
	HeadlinePartially = "Good Progress! 🔄"
	HeadlineFailed    = "Keep Trying! 💪"
)

func problemOptions(ids []string) []ProblemOption {
	out := make([]ProblemOption, 0, len(ids))
	for _, id := range ids {
		out = append(out, ProblemOption{ID: id, Name: catalog.FormatName(id)})
	}
	return out
}

// NewRunView classifies a run result.
func NewRunView(r model.RunResult) RunView {
	v := RunView{Success: r.Success, Tests: r.Results, Status: StatusFailed}
	if !r.Success {
		v.Error = r.Error
		if v.Error == "" {
			v.Error = "Unknown error"
		}
		return v
	}
	if r.Summary != nil {
		v.Passed, v.Total, v.Percentage = r.Summary.Passed, r.Summary.Total, r.Summary.Percentage
	} else {
		for _, t := range r.Results {
			if t.Passed {
				v.Passed++
			}
		}
		v.Total = len(r.Results)
		if v.Total > 0 {
			v.Percentage = float64(v.Passed) * 100 / float64(v.Total)
		}
	}
	switch {
	case v.Total > 0 && v.Passed == v.Total:
		v.Status = StatusPassed
	case v.Passed > 0:
		v.Status = StatusPartial
	}
	return v
}

// NewSubmissionView classifies a grade.
func NewSubmissionView(user, problemID string, g model.Grade, at time.Time) SubmissionView {
	v := SubmissionView{
		ProblemID:    problemID,
		ProblemName:  catalog.FormatName(problemID),
		Username:     user,
		Score:        g.Score,
		Total:        g.Total,
		Result:       g.ReplayResult,
		ErrorDetails: g.ErrorDetails,
		SubmittedAt:  at,
	}
	switch g.ReplayResult {
	case model.ReplayPassed:
		v.Status, v.StatusText, v.Headline = StatusPassed, "All Tests Passed!", HeadlinePassed
	case model.ReplayPartially:
		v.Status, v.StatusText, v.Headline = StatusPartial, "Partially Correct", HeadlinePartially
	default:
		v.Status, v.StatusText, v.Headline = StatusFailed, "Failed", HeadlineFailed
	}
	return v
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// formatTimestamp renders a backend timestamp; unparseable values pass through.
func formatTimestamp(ts string) string {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t.Format("2006-01-02 15:04:05")
		}
	}
	return ts
}

func leaderboardRows(entries []model.LeaderboardEntry) []LeaderboardRow {
	rows := make([]LeaderboardRow, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, LeaderboardRow{
			Rank:    i + 1,
			User:    e.UserID,
			Problem: catalog.FormatName(e.ProblemID),
			Score:   e.Score,
			Result:  string(e.ReplayResult),
			Time:    formatTimestamp(e.Timestamp),
		})
	}
	return rows
}
