package app

import (
	"context"

	"github.com/okian/codearena/internal/domain/catalog"
	"github.com/okian/codearena/internal/domain/model"
)

// Event names a user action a View can raise.
type Event string

const (
	EventUsernameInput   Event = "username-input"
	EventProblemSelect   Event = "problem-select"
	EventCodeChange      Event = "code-change"
	EventRun             Event = "run"
	EventSubmit          Event = "submit"
	EventThemeToggle     Event = "theme-toggle"
	EventLeaderboard     Event = "leaderboard"
	EventCloseModal      Event = "close-modal"
	EventViewLeaderboard Event = "view-leaderboard"
	EventTryAnother      Event = "try-another"
	EventLogout          Event = "logout"
)

// Events lists every event in registration order.
var Events = []Event{
	EventUsernameInput,
	EventProblemSelect,
	EventCodeChange,
	EventRun,
	EventSubmit,
	EventThemeToggle,
	EventLeaderboard,
	EventCloseModal,
	EventViewLeaderboard,
	EventTryAnother,
	EventLogout,
}

// Handler reacts to an event. value carries the field contents for input
// events and is empty otherwise.
type Handler func(ctx context.Context, value string)

// View is the presentation surface the controller drives.
type View interface {
	Bind(ev Event, h Handler)

	Alert(msg string)
	Confirm(msg string) bool
	ShowLoading(msg string)
	HideLoading()

	SetUsername(name string)
	RenderProblems(opts []ProblemOption)
	RenderProblem(v catalog.View)
	HideProblem()
	RenderAnnotations(anns []model.Annotation)

	RenderRunResult(r RunView)
	RenderSubmission(s SubmissionView)
	ShowModal(s SubmissionView)
	CloseModal()
	Confetti()
	RenderLeaderboard(rows []LeaderboardRow)

	SetTheme(dark bool)
	SetSubmitEnabled(enabled bool)
	SetSubmitting(busy bool)
	Reset()
}
