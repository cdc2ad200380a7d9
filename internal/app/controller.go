// Package app is the view controller: it reacts to user events, drives the
// backend client and pushes results into a View.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/okian/codearena/internal/adapters/api"
	"github.com/okian/codearena/internal/adapters/store"
	"github.com/okian/codearena/internal/domain/catalog"
	"github.com/okian/codearena/internal/domain/editor"
	"github.com/okian/codearena/internal/domain/model"
	"github.com/okian/codearena/pkg/logger"
	"github.com/okian/codearena/pkg/metrics"
)

// Alert messages shown after the fixed "Error: " prefix.
const (
	MsgLoadProblems   = "Failed to load problems. Please ensure the backend is running."
	MsgLoadProblem    = "Failed to load problem details."
	MsgNoCode         = "Please write some code first."
	MsgNoProblem      = "Please select a problem first."
	MsgRunFailed      = "Failed to run code. Please try again."
	MsgIncompleteForm = "Please fill in all fields before submitting."
	MsgLeaderboard    = "Failed to load leaderboard."
	MsgConfirmLogout  = "Are you sure you want to logout?"
)

// Backend is the subset of the API client the controller uses.
type Backend interface {
	ListProblems(ctx context.Context) ([]string, error)
	GetProblem(ctx context.Context, id string) (model.ProblemDetail, error)
	Run(ctx context.Context, req api.RunRequest) (model.RunResult, error)
	Submit(ctx context.Context, req api.SubmitRequest) (model.Grade, error)
	Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error)
}

// Preferences is the persisted client state.
type Preferences interface {
	LoadUser(ctx context.Context) (model.User, bool)
	SaveUser(u model.User) error
	Remove(key string) error
	DarkMode() bool
	SetDarkMode(dark bool) error
}

// submissionForm holds the trimmed fields a submission needs.
type submissionForm struct {
	Username  string `validate:"required"`
	ProblemID string `validate:"required"`
	Code      string `validate:"required"`
}

// Controller wires a View to the backend and the editor.
type Controller struct {
	mu       sync.Mutex
	session  Session
	backend  Backend
	prefs    Preferences
	editor   *editor.Host
	view     View
	validate *validator.Validate
	logger   logger.Logger
	now      func() time.Time
}

// New creates a controller. Register must be called before any operation.
func New(backend Backend, prefs Preferences, host *editor.Host, opts ...Option) *Controller {
	c := &Controller{
		backend:  backend,
		prefs:    prefs,
		editor:   host,
		validate: validator.New(),
		logger:   logger.Nop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register binds every event of view to its operation and subscribes to editor changes.
func (c *Controller) Register(view View) {
	c.mu.Lock()
	c.view = view
	c.mu.Unlock()

	view.Bind(EventUsernameInput, func(ctx context.Context, v string) { c.SetUsername(ctx, v) })
	view.Bind(EventProblemSelect, func(ctx context.Context, v string) { c.SelectProblem(ctx, v) })
	view.Bind(EventCodeChange, func(_ context.Context, v string) { c.editor.SetText(v) })
	view.Bind(EventRun, func(ctx context.Context, _ string) { c.Run(ctx) })
	view.Bind(EventSubmit, func(ctx context.Context, _ string) { c.Submit(ctx) })
	view.Bind(EventThemeToggle, func(ctx context.Context, _ string) { c.ToggleTheme(ctx) })
	view.Bind(EventLeaderboard, func(ctx context.Context, _ string) { c.ShowLeaderboard(ctx) })
	view.Bind(EventCloseModal, func(context.Context, string) { c.CloseModal() })
	view.Bind(EventViewLeaderboard, func(ctx context.Context, _ string) {
		c.CloseModal()
		c.ShowLeaderboard(ctx)
	})
	view.Bind(EventTryAnother, func(ctx context.Context, _ string) { c.TryAnother(ctx) })
	view.Bind(EventLogout, func(ctx context.Context, _ string) { c.Logout(ctx) })

	c.editor.SetListeners(func() { c.Validate() }, view.RenderAnnotations)
}

// Session returns a copy of the current state.
func (c *Controller) Session() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.session
	s.Problems = append([]string(nil), c.session.Problems...)
	return s
}

// Start restores the remembered user and theme and loads the problem list.
func (c *Controller) Start(ctx context.Context) {
	if u, ok := c.prefs.LoadUser(ctx); ok {
		c.mu.Lock()
		c.session.Username = u.Username
		c.mu.Unlock()
		c.view.SetUsername(u.Username)
		c.logger.Info(ctx, "username restored", logger.String("username", u.Username))
	}

	c.LoadProblems(ctx)

	dark := c.prefs.DarkMode()
	c.mu.Lock()
	c.session.DarkMode = dark
	c.mu.Unlock()
	c.view.SetTheme(dark)
	c.Validate()
}

// LoadProblems fetches the problem list and fills the picker.
func (c *Controller) LoadProblems(ctx context.Context) {
	c.view.ShowLoading("Loading problems...")
	ids, err := c.backend.ListProblems(ctx)
	c.view.HideLoading()
	if err != nil {
		c.fail(ctx, MsgLoadProblems, err)
		return
	}

	c.mu.Lock()
	c.session.Problems = ids
	c.mu.Unlock()
	metrics.UpdateProblemsLoaded(len(ids))
	c.view.RenderProblems(problemOptions(ids))
}

// SetUsername records the typed username.
func (c *Controller) SetUsername(_ context.Context, name string) {
	c.mu.Lock()
	c.session.Username = name
	c.mu.Unlock()
	c.Validate()
}

// SelectProblem shows the description and sample tests of id. An empty id
// clears the selection.
func (c *Controller) SelectProblem(ctx context.Context, id string) {
	c.mu.Lock()
	c.session.ProblemID = id
	c.mu.Unlock()

	if id == "" {
		c.view.HideProblem()
		c.Validate()
		return
	}

	v, err := catalog.Resolve(ctx, c.backend, id)
	if err != nil {
		c.fail(ctx, MsgLoadProblem, err)
	} else {
		c.view.RenderProblem(v)
	}
	c.Validate()
}

// Validate reports whether a submission could be sent and updates the submit affordance.
func (c *Controller) Validate() bool {
	c.mu.Lock()
	busy := c.session.Submitting
	view := c.view
	c.mu.Unlock()

	err := c.checkForm()
	ok := err == nil
	if view != nil && !busy {
		view.SetSubmitEnabled(ok)
	}
	return ok
}

func (c *Controller) form() submissionForm {
	c.mu.Lock()
	user, problem := c.session.Username, c.session.ProblemID
	c.mu.Unlock()
	return submissionForm{
		Username:  strings.TrimSpace(user),
		ProblemID: problem,
		Code:      strings.TrimSpace(c.editor.Text()),
	}
}

func (c *Controller) checkForm() error {
	if err := c.validate.Struct(c.form()); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Field())
			}
			return fmt.Errorf("%w: missing %s", ErrIncompleteForm, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %w", ErrIncompleteForm, err)
	}
	return nil
}

// Run executes the editor code against the public tests.
func (c *Controller) Run(ctx context.Context) {
	code := strings.TrimSpace(c.editor.Text())
	c.mu.Lock()
	problem := c.session.ProblemID
	c.mu.Unlock()

	if code == "" {
		c.fail(ctx, MsgNoCode, nil)
		return
	}
	if problem == "" {
		c.fail(ctx, MsgNoProblem, nil)
		return
	}

	c.view.ShowLoading("Running your code with public test cases...")
	res, err := c.backend.Run(ctx, api.RunRequest{ProblemID: problem, Code: code})
	c.view.HideLoading()
	if err != nil {
		metrics.RecordRunOutcome("error")
		c.fail(ctx, MsgRunFailed, err)
		return
	}

	rv := NewRunView(res)
	metrics.RecordRunOutcome(string(rv.Status))
	c.view.RenderRunResult(rv)
}

// Submit sends the editor code for grading. It is a no-op while another
// submission is in flight; an incomplete form alerts without a request.
func (c *Controller) Submit(ctx context.Context) {
	c.mu.Lock()
	if c.session.Submitting {
		c.mu.Unlock()
		c.logger.Debug(ctx, "submit ignored", logger.Error(ErrBusy))
		return
	}
	c.mu.Unlock()

	if err := c.checkForm(); err != nil {
		c.logger.Debug(ctx, "submit rejected", logger.Error(err))
		c.fail(ctx, MsgIncompleteForm, nil)
		return
	}
	f := c.form()

	c.mu.Lock()
	if c.session.Submitting {
		c.mu.Unlock()
		return
	}
	c.session.Submitting = true
	c.mu.Unlock()

	c.view.ShowLoading("Evaluating your solution...")
	c.view.SetSubmitting(true)
	c.view.SetSubmitEnabled(false)

	grade, err := c.backend.Submit(ctx, api.SubmitRequest{
		UserID:    f.Username,
		ProblemID: f.ProblemID,
		Code:      f.Code,
	})

	c.view.HideLoading()
	c.mu.Lock()
	c.session.Submitting = false
	c.mu.Unlock()
	c.view.SetSubmitting(false)
	c.Validate()

	if err != nil {
		c.fail(ctx, fmt.Sprintf("Failed to submit solution: %s. Please check the logs for details.", err), err)
		return
	}

	metrics.RecordSubmission(string(grade.ReplayResult))
	c.logger.Info(ctx, "solution graded",
		logger.String("problem_id", f.ProblemID),
		logger.Int("score", grade.Score),
		logger.Int("total", grade.Total),
		logger.String("replay_result", string(grade.ReplayResult)))

	sv := NewSubmissionView(f.Username, f.ProblemID, grade, c.now())
	c.view.RenderSubmission(sv)
	c.view.ShowModal(sv)
	if grade.ReplayResult == model.ReplayPassed {
		c.view.Confetti()
	}

	if err := c.prefs.SaveUser(model.User{Username: f.Username}); err != nil {
		c.logger.Warn(ctx, "failed to remember user", logger.Error(err))
	}
}

// ShowLeaderboard fetches and renders the ranked leaderboard.
func (c *Controller) ShowLeaderboard(ctx context.Context) {
	c.view.ShowLoading("Loading leaderboard...")
	entries, err := c.backend.Leaderboard(ctx)
	c.view.HideLoading()
	if err != nil {
		c.fail(ctx, MsgLeaderboard, err)
		return
	}
	c.view.RenderLeaderboard(leaderboardRows(entries))
}

// ToggleTheme flips and persists the theme.
func (c *Controller) ToggleTheme(ctx context.Context) {
	c.mu.Lock()
	c.session.DarkMode = !c.session.DarkMode
	dark := c.session.DarkMode
	c.mu.Unlock()

	if err := c.prefs.SetDarkMode(dark); err != nil {
		c.logger.Warn(ctx, "failed to persist theme", logger.Error(err))
	}
	c.view.SetTheme(dark)
}

// CloseModal hides the result modal.
func (c *Controller) CloseModal() { c.view.CloseModal() }

// TryAnother closes the modal and resets the form.
func (c *Controller) TryAnother(ctx context.Context) {
	c.CloseModal()
	c.ResetForm(ctx)
}

// ResetForm clears the username, the selection and the editor.
func (c *Controller) ResetForm(_ context.Context) {
	c.mu.Lock()
	c.session.Username = ""
	c.session.ProblemID = ""
	c.mu.Unlock()

	c.view.Reset()
	c.editor.Reset()
	c.Validate()
}

// Logout forgets the remembered user after confirmation.
func (c *Controller) Logout(ctx context.Context) bool {
	if !c.view.Confirm(MsgConfirmLogout) {
		return false
	}
	if err := c.prefs.Remove(store.KeyUser); err != nil {
		c.logger.Warn(ctx, "failed to forget user", logger.Error(err))
	}
	c.mu.Lock()
	c.session.Username = ""
	c.mu.Unlock()
	c.view.SetUsername("")
	c.Validate()
	c.logger.Info(ctx, "logged out")
	return true
}

// fail reports msg to the user with the fixed prefix.
func (c *Controller) fail(ctx context.Context, msg string, err error) {
	metrics.RecordAlert()
	if err != nil {
		c.logger.Error(ctx, msg, logger.Error(err))
	}
	c.view.Alert("Error: " + msg)
}
