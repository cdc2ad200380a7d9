// Package catalog holds the static problem table and merges it with
// test cases fetched from the backend.
package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/okian/codearena/internal/domain/model"
	"github.com/okian/codearena/pkg/logger"
	"github.com/okian/codearena/pkg/metrics"
)

const (
	// MaxSamples is how many public tests are rendered with a problem.
	MaxSamples = 3
	// AssumedHidden is the hidden test count assumed when the backend is unreachable.
	AssumedHidden = 5
)

var byID = func() map[string]model.Problem {
	m := make(map[string]model.Problem, len(builtin))
	for _, p := range builtin {
		m[p.ID] = p
	}
	return m
}()

// Fetcher loads problem detail from the backend.
type Fetcher interface {
	GetProblem(ctx context.Context, id string) (model.ProblemDetail, error)
}

// Lookup returns the static entry for id.
func Lookup(id string) (model.Problem, bool) {
	p, ok := byID[id]
	return p, ok
}

// IDs returns every static problem id in sorted order.
func IDs() []string {
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// FormatName turns "power-of-two" into "Power Of Two".
func FormatName(id string) string {
	words := strings.Split(id, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// Fallback synthesizes problem detail from the static examples.
func Fallback(id string) (model.ProblemDetail, bool) {
	p, ok := byID[id]
	if !ok {
		return model.ProblemDetail{}, false
	}
	tests := make([]model.TestCase, 0, len(p.Examples))
	for _, ex := range p.Examples {
		tests = append(tests, model.TestCase{Input: ex.Input, ExpectedOutput: ex.Output})
	}
	return model.ProblemDetail{
		ProblemID:   id,
		PublicTests: tests,
		TotalTests:  len(tests) + AssumedHidden,
	}, true
}

// View is a problem ready for rendering.
type View struct {
	ID      string
	Title   string
	Known   bool
	Problem model.Problem
	Detail  model.ProblemDetail
	// Offline is set when Detail came from Fallback.
	Offline bool
}

// Samples returns at most MaxSamples public tests.
func (v View) Samples() []model.TestCase {
	if len(v.Detail.PublicTests) <= MaxSamples {
		return v.Detail.PublicTests
	}
	return v.Detail.PublicTests[:MaxSamples]
}

// MorePublic is the number of public tests not included in Samples.
func (v View) MorePublic() int {
	if n := len(v.Detail.PublicTests) - MaxSamples; n > 0 {
		return n
	}
	return 0
}

// Hidden is the number of withheld tests.
func (v View) Hidden() int { return v.Detail.HiddenCount() }

// TestCount is the number of test cases the problem is graded against.
func (v View) TestCount() int { return len(v.Detail.PublicTests) + v.Hidden() }

// HiddenNote is the short "+N hidden tests" label, empty when nothing is hidden.
func (v View) HiddenNote() string {
	n := v.Hidden()
	if n == 0 {
		return ""
	}
	if n == 1 {
		return "+1 hidden test"
	}
	return fmt.Sprintf("+%d hidden tests", n)
}

// Resolve fetches detail for id and falls back to the static examples when the
// backend fails.
func Resolve(ctx context.Context, f Fetcher, id string) (View, error) {
	log := logger.Named("catalog")
	p, known := byID[id]

	detail, err := f.GetProblem(ctx, id)
	offline := false
	if err != nil {
		fb, ok := Fallback(id)
		if !ok {
			log.Warn(ctx, "problem detail unavailable", logger.String("problem_id", id), logger.Error(err))
			return View{}, fmt.Errorf("%w: %s", ErrProblemNotFound, id)
		}
		log.Info(ctx, "using static problem detail", logger.String("problem_id", id), logger.Error(err))
		metrics.RecordCatalogFallback()
		detail, offline = fb, true
	}
	if detail.ProblemID == "" {
		detail.ProblemID = id
	}

	title := FormatName(id)
	if known {
		title = p.Title
	}
	return View{
		ID:      id,
		Title:   title,
		Known:   known,
		Problem: p,
		Detail:  detail,
		Offline: offline,
	}, nil
}
