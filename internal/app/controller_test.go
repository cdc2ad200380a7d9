package app_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/okian/codearena/internal/adapters/api"
	"github.com/okian/codearena/internal/adapters/store"
	"github.com/okian/codearena/internal/app"
	"github.com/okian/codearena/internal/domain/editor"
	"github.com/okian/codearena/internal/domain/model"
	"github.com/okian/codearena/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

const solution = "def solve():\n    print(int(input()) & 1 == 0)"

type harness struct {
	ctx     context.Context
	view    *fakeView
	backend *fakeBackend
	srv     *httptest.Server
	prefs   *store.Store
	host    *editor.Host
	ctrl    *app.Controller
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	if err := logger.InitWriter(&strings.Builder{}); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	ctx := context.Background()
	b := newFakeBackend()
	srv := startBackend(b)
	prefs, err := store.Open(ctx, filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	host := editor.NewHost(editor.WithLintDelay(0))
	ctrl := app.New(api.New(srv.URL), prefs, host,
		app.WithLogger(logger.Named("app")),
		app.WithClock(func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }),
	)
	view := newFakeView()
	ctrl.Register(view)
	return &harness{ctx: ctx, view: view, backend: b, srv: srv, prefs: prefs, host: host, ctrl: ctrl}
}

func (h *harness) close() {
	h.host.Close()
	h.srv.Close()
}

// fill makes the form complete.
func (h *harness) fill() {
	h.backend.set("/problem/power-of-two", http.StatusInternalServerError, `{}`)
	h.view.fire(h.ctx, app.EventUsernameInput, "ada")
	h.view.fire(h.ctx, app.EventProblemSelect, "power-of-two")
	h.view.fire(h.ctx, app.EventCodeChange, solution)
}

func TestControllerStart(t *testing.T) {
	Convey("Given a backend listing two problems", t, func() {
		h := newHarness(t)
		Reset(h.close)
		h.backend.set("/problems", http.StatusOK, `{"problems":["three-sum","power-of-two"]}`)

		Convey("When a remembered user and dark theme exist", func() {
			So(h.prefs.SaveUser(model.User{Username: "grace"}), ShouldBeNil)
			So(h.prefs.SetDarkMode(true), ShouldBeNil)
			h.ctrl.Start(h.ctx)

			Convey("Then the session and view are restored", func() {
				s := h.ctrl.Session()
				So(s.Username, ShouldEqual, "grace")
				So(s.DarkMode, ShouldBeTrue)
				So(s.Problems, ShouldResemble, []string{"three-sum", "power-of-two"})
				So(h.view.username, ShouldEqual, "grace")
				So(h.view.dark, ShouldBeTrue)
				So(h.view.problems, ShouldResemble, []app.ProblemOption{
					{ID: "three-sum", Name: "Three Sum"},
					{ID: "power-of-two", Name: "Power Of Two"},
				})
				So(h.view.loading, ShouldResemble, []string{"show:Loading problems...", "hide"})
				So(h.view.alerts, ShouldBeEmpty)
				So(h.view.submitEnabled, ShouldBeFalse)
			})
		})

		Convey("When the stored user is malformed", func() {
			So(h.prefs.Set(store.KeyUser, "{broken"), ShouldBeNil)
			h.ctrl.Start(h.ctx)

			Convey("Then it is treated as absent", func() {
				So(h.ctrl.Session().Username, ShouldBeEmpty)
				So(h.view.alerts, ShouldBeEmpty)
			})
		})
	})

	Convey("Given a backend that is down", t, func() {
		h := newHarness(t)
		Reset(h.close)
		h.backend.set("/problems", http.StatusServiceUnavailable, `down`)
		h.ctrl.Start(h.ctx)

		Convey("Then one prefixed alert is shown and loading is hidden", func() {
			So(h.view.alerts, ShouldResemble, []string{"Error: " + app.MsgLoadProblems})
			So(h.view.loading, ShouldResemble, []string{"show:Loading problems...", "hide"})
			So(h.view.problems, ShouldBeNil)
		})
	})
}

func TestControllerSelectProblem(t *testing.T) {
	Convey("Given no remote detail for power-of-two", t, func() {
		h := newHarness(t)
		Reset(h.close)
		h.backend.set("/problem/power-of-two", http.StatusNotFound, `{"detail":"Problem not found"}`)

		Convey("When it is selected", func() {
			h.view.fire(h.ctx, app.EventProblemSelect, "power-of-two")

			Convey("Then the static examples and a +5 hidden tests note are rendered", func() {
				So(h.view.alerts, ShouldBeEmpty)
				So(h.view.problem, ShouldNotBeNil)
				So(h.view.problem.Title, ShouldEqual, "Power of Two")
				So(h.view.problem.Problem.Examples, ShouldHaveLength, 3)
				So(h.view.problem.Samples(), ShouldHaveLength, 3)
				So(h.view.problem.HiddenNote(), ShouldEqual, "+5 hidden tests")
				So(h.ctrl.Session().ProblemID, ShouldEqual, "power-of-two")
			})

			Convey("Then clearing the selection hides it", func() {
				h.view.fire(h.ctx, app.EventProblemSelect, "")
				So(h.view.problemHidden, ShouldBeTrue)
				So(h.ctrl.Session().ProblemID, ShouldBeEmpty)
			})
		})

		Convey("When an unknown problem fails to load", func() {
			h.view.fire(h.ctx, app.EventProblemSelect, "mystery")

			Convey("Then the user is alerted", func() {
				So(h.view.lastAlert(), ShouldEqual, "Error: "+app.MsgLoadProblem)
				So(h.view.problem, ShouldBeNil)
			})
		})
	})
}

func TestControllerValidation(t *testing.T) {
	Convey("Given an empty form", t, func() {
		h := newHarness(t)
		Reset(h.close)

		Convey("Then the form is invalid", func() {
			So(h.ctrl.Validate(), ShouldBeFalse)
		})

		Convey("When every field is filled", func() {
			h.fill()

			Convey("Then submit is enabled", func() {
				So(h.ctrl.Validate(), ShouldBeTrue)
				So(h.view.submitEnabled, ShouldBeTrue)
			})

			Convey("Then whitespace-only code disables it again", func() {
				h.host.SetText("   \n\t")
				So(h.view.submitEnabled, ShouldBeFalse)
			})

			Convey("Then editor changes publish annotations", func() {
				h.host.SetText("prnt(1)")
				last := h.view.annotations[len(h.view.annotations)-1]
				So(last, ShouldHaveLength, 1)
				So(last[0].Severity, ShouldEqual, model.SeverityError)
			})
		})
	})
}

func TestControllerSubmit(t *testing.T) {
	Convey("Given a form with an empty username", t, func() {
		h := newHarness(t)
		Reset(h.close)
		h.fill()
		h.view.fire(h.ctx, app.EventUsernameInput, "   ")

		Convey("When submit is triggered", func() {
			h.view.fire(h.ctx, app.EventSubmit, "")

			Convey("Then an alert is shown and no request is sent", func() {
				So(h.view.lastAlert(), ShouldEqual, "Error: "+app.MsgIncompleteForm)
				So(h.backend.count("/submit"), ShouldEqual, 0)
				So(h.view.loading, ShouldBeEmpty)
			})
		})
	})

	Convey("Given a complete form", t, func() {
		h := newHarness(t)
		Reset(h.close)
		h.fill()

		Convey("When the solution passes", func() {
			h.backend.set("/submit", http.StatusOK, `{"grade":{"score":8,"total":8,"replay_result":"passed"}}`)
			h.view.fire(h.ctx, app.EventSubmit, "")

			Convey("Then results, modal and confetti are shown", func() {
				So(h.view.alerts, ShouldBeEmpty)
				So(h.backend.count("/submit"), ShouldEqual, 1)
				var sent map[string]string
				So(json.Unmarshal([]byte(h.backend.body("/submit")), &sent), ShouldBeNil)
				So(sent, ShouldResemble, map[string]string{
					"user_id":    "ada",
					"problem_id": "power-of-two",
					"code":       solution,
				})
				So(h.view.submission.Status, ShouldEqual, app.StatusPassed)
				So(h.view.submission.StatusText, ShouldEqual, "All Tests Passed!")
				So(h.view.submission.ProblemName, ShouldEqual, "Power Of Two")
				So(h.view.modalOpen, ShouldBeTrue)
				So(h.view.modal.Headline, ShouldEqual, app.HeadlinePassed)
				So(h.view.confetti, ShouldEqual, 1)
				So(h.view.submitting, ShouldResemble, []bool{true, false})
				So(h.view.loading, ShouldResemble, []string{"show:Evaluating your solution...", "hide"})
				So(h.view.submitEnabled, ShouldBeTrue)
				So(h.ctrl.Session().Submitting, ShouldBeFalse)
			})

			Convey("Then the user is remembered", func() {
				u, ok := h.prefs.LoadUser(h.ctx)
				So(ok, ShouldBeTrue)
				So(u.Username, ShouldEqual, "ada")
			})

			Convey("Then try-another resets the form", func() {
				h.view.fire(h.ctx, app.EventTryAnother, "")
				So(h.view.modalOpen, ShouldBeFalse)
				So(h.view.resets, ShouldEqual, 1)
				So(h.host.Text(), ShouldEqual, editor.StarterCode)
				So(h.ctrl.Session().Username, ShouldBeEmpty)
				So(h.ctrl.Session().ProblemID, ShouldBeEmpty)
				So(h.view.submitEnabled, ShouldBeFalse)
			})
		})

		Convey("When the solution is partially correct", func() {
			h.backend.set("/submit", http.StatusOK, `{"grade":{"score":3,"total":8,"replay_result":"partially","error_details":["Test 4: wrong answer"]}}`)
			h.view.fire(h.ctx, app.EventSubmit, "")

			Convey("Then no confetti is fired", func() {
				So(h.view.confetti, ShouldEqual, 0)
				So(h.view.modal.Headline, ShouldEqual, app.HeadlinePartially)
				So(h.view.submission.ErrorDetails, ShouldResemble, []string{"Test 4: wrong answer"})
			})
		})

		Convey("When the solution fails", func() {
			h.backend.set("/submit", http.StatusOK, `{"grade":{"score":0,"total":8,"replay_result":"failed"}}`)
			h.view.fire(h.ctx, app.EventSubmit, "")

			Convey("Then the failure headline is used", func() {
				So(h.view.confetti, ShouldEqual, 0)
				So(h.view.modal.Headline, ShouldEqual, app.HeadlineFailed)
				So(h.view.submission.Status, ShouldEqual, app.StatusFailed)
			})
		})

		Convey("When the backend rejects the submission", func() {
			h.backend.set("/submit", http.StatusInternalServerError, `boom`)
			h.view.fire(h.ctx, app.EventSubmit, "")

			Convey("Then an alert carries the status and the form is usable again", func() {
				So(h.view.lastAlert(), ShouldStartWith, "Error: Failed to submit solution: HTTP error! status: 500")
				So(h.view.modal, ShouldBeNil)
				So(h.view.loading, ShouldResemble, []string{"show:Evaluating your solution...", "hide"})
				So(h.ctrl.Session().Submitting, ShouldBeFalse)
				So(h.view.submitEnabled, ShouldBeTrue)
			})
		})

		Convey("When submit is triggered while a submission is in flight", func() {
			h.backend.set("/submit", http.StatusOK, `{"grade":{"score":8,"total":8,"replay_result":"passed"}}`)
			h.backend.mu.Lock()
			h.backend.gate = make(chan struct{})
			h.backend.entered = make(chan struct{}, 1)
			gate, entered := h.backend.gate, h.backend.entered
			h.backend.mu.Unlock()

			done := make(chan struct{})
			go func() {
				defer close(done)
				h.ctrl.Submit(h.ctx)
			}()
			<-entered
			h.ctrl.Submit(h.ctx)
			busy := h.ctrl.Session().Submitting
			close(gate)
			<-done

			Convey("Then the second submit is a no-op", func() {
				So(busy, ShouldBeTrue)
				So(h.backend.count("/submit"), ShouldEqual, 1)
				So(h.view.alerts, ShouldBeEmpty)
			})
		})
	})
}

func TestControllerRun(t *testing.T) {
	Convey("Given the run endpoint", t, func() {
		h := newHarness(t)
		Reset(h.close)

		Convey("When no problem is selected", func() {
			h.view.fire(h.ctx, app.EventRun, "")

			Convey("Then the user is asked to pick one", func() {
				So(h.view.lastAlert(), ShouldEqual, "Error: "+app.MsgNoProblem)
				So(h.backend.count("/run"), ShouldEqual, 0)
			})
		})

		Convey("When the editor is empty", func() {
			h.fill()
			h.host.SetText("  ")
			h.view.fire(h.ctx, app.EventRun, "")

			Convey("Then the user is asked for code", func() {
				So(h.view.lastAlert(), ShouldEqual, "Error: "+app.MsgNoCode)
			})
		})

		Convey("When some tests pass", func() {
			h.fill()
			h.backend.set("/run", http.StatusOK, `{"success":true,"results":[{"test_number":1,"passed":true,"success":true},{"test_number":2,"passed":false,"success":true}],"summary":{"passed":1,"total":2,"percentage":50}}`)
			h.view.fire(h.ctx, app.EventRun, "")

			Convey("Then a partial result is rendered", func() {
				So(h.view.alerts, ShouldBeEmpty)
				So(h.view.run.Status, ShouldEqual, app.StatusPartial)
				So(h.view.run.Passed, ShouldEqual, 1)
				So(h.view.run.Total, ShouldEqual, 2)
				So(h.view.run.Tests, ShouldHaveLength, 2)
			})
		})

		Convey("When the backend cannot be reached", func() {
			h.fill()
			h.srv.Close()
			h.view.fire(h.ctx, app.EventRun, "")

			Convey("Then the run failure is alerted", func() {
				So(h.view.lastAlert(), ShouldEqual, "Error: "+app.MsgRunFailed)
				So(h.view.run, ShouldBeNil)
			})
		})
	})
}

func TestControllerLeaderboardThemeLogout(t *testing.T) {
	Convey("Given a running controller", t, func() {
		h := newHarness(t)
		Reset(h.close)

		Convey("When the leaderboard is shown", func() {
			h.backend.set("/leaderboard", http.StatusOK, `{"leaderboard":[
				{"user_id":"ada","problem_id":"three-sum","score":8,"replay_result":"passed","timestamp":"2024-05-01T10:00:00"},
				{"user_id":"bob","problem_id":"merge-sort","score":2,"replay_result":"failed","timestamp":"yesterday"}]}`)
			h.view.fire(h.ctx, app.EventLeaderboard, "")

			Convey("Then rows keep backend order with 1-based ranks", func() {
				So(h.view.rows, ShouldResemble, []app.LeaderboardRow{
					{Rank: 1, User: "ada", Problem: "Three Sum", Score: 8, Result: "passed", Time: "2024-05-01 10:00:00"},
					{Rank: 2, User: "bob", Problem: "Merge Sort", Score: 2, Result: "failed", Time: "yesterday"},
				})
			})
		})

		Convey("When view-leaderboard is chosen from the modal", func() {
			h.backend.set("/leaderboard", http.StatusOK, `{"leaderboard":[]}`)
			h.view.modalOpen = true
			h.view.fire(h.ctx, app.EventViewLeaderboard, "")

			Convey("Then the modal closes and an empty board renders", func() {
				So(h.view.modalOpen, ShouldBeFalse)
				So(h.view.rows, ShouldNotBeNil)
				So(h.view.rows, ShouldBeEmpty)
			})
		})

		Convey("When the leaderboard fails", func() {
			h.view.fire(h.ctx, app.EventLeaderboard, "")

			Convey("Then the failure is alerted", func() {
				So(h.view.lastAlert(), ShouldEqual, "Error: "+app.MsgLeaderboard)
			})
		})

		Convey("When the theme is toggled twice", func() {
			h.view.fire(h.ctx, app.EventThemeToggle, "")
			first := h.prefs.DarkMode()
			h.view.fire(h.ctx, app.EventThemeToggle, "")

			Convey("Then each choice is persisted", func() {
				So(first, ShouldBeTrue)
				So(h.prefs.DarkMode(), ShouldBeFalse)
				So(h.view.dark, ShouldBeFalse)
			})
		})

		Convey("When logout is declined", func() {
			So(h.prefs.SaveUser(model.User{Username: "ada"}), ShouldBeNil)
			h.view.confirmAnswer = false
			h.view.fire(h.ctx, app.EventLogout, "")

			Convey("Then the user is kept", func() {
				So(h.view.confirms, ShouldResemble, []string{app.MsgConfirmLogout})
				_, ok := h.prefs.LoadUser(h.ctx)
				So(ok, ShouldBeTrue)
			})
		})

		Convey("When logout is confirmed", func() {
			So(h.prefs.SaveUser(model.User{Username: "ada"}), ShouldBeNil)
			h.view.fire(h.ctx, app.EventUsernameInput, "ada")
			h.view.confirmAnswer = true
			h.view.fire(h.ctx, app.EventLogout, "")

			Convey("Then the user is forgotten", func() {
				_, ok := h.prefs.LoadUser(h.ctx)
				So(ok, ShouldBeFalse)
				So(h.ctrl.Session().Username, ShouldBeEmpty)
			})
		})
	})
}

func TestNewRunView(t *testing.T) {
	Convey("Given run results", t, func() {
		Convey("A failed execution carries its error", func() {
			v := app.NewRunView(model.RunResult{Success: false})
			So(v.Status, ShouldEqual, app.StatusFailed)
			So(v.Error, ShouldEqual, "Unknown error")
		})

		Convey("A missing summary is derived from the tests", func() {
			v := app.NewRunView(model.RunResult{Success: true, Results: []model.TestResult{{Passed: true}, {Passed: true}}})
			So(v.Status, ShouldEqual, app.StatusPassed)
			So(v.Percentage, ShouldEqual, 100)
		})

		Convey("Zero passing tests is a failure", func() {
			v := app.NewRunView(model.RunResult{Success: true, Summary: &model.RunSummary{Passed: 0, Total: 3}})
			So(v.Status, ShouldEqual, app.StatusFailed)
		})
	})
}
