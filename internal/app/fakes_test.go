package app_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/okian/codearena/internal/app"
	"github.com/okian/codearena/internal/domain/catalog"
	"github.com/okian/codearena/internal/domain/model"
)

// fakeView records everything the controller pushes into it.
type fakeView struct {
	mu            sync.Mutex
	handlers      map[app.Event]app.Handler
	alerts        []string
	loading       []string
	username      string
	problems      []app.ProblemOption
	problem       *catalog.View
	problemHidden bool
	annotations   [][]model.Annotation
	run           *app.RunView
	submission    *app.SubmissionView
	modal         *app.SubmissionView
	modalOpen     bool
	confetti      int
	rows          []app.LeaderboardRow
	dark          bool
	submitEnabled bool
	submitting    []bool
	resets        int
	confirmAnswer bool
	confirms      []string
}

func newFakeView() *fakeView {
	return &fakeView{handlers: map[app.Event]app.Handler{}}
}

func (f *fakeView) fire(ctx context.Context, ev app.Event, value string) {
	f.mu.Lock()
	h := f.handlers[ev]
	f.mu.Unlock()
	h(ctx, value)
}

func (f *fakeView) Bind(ev app.Event, h app.Handler) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[ev] = h
}

func (f *fakeView) Alert(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alerts = append(f.alerts, msg)
}

func (f *fakeView) Confirm(msg string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.confirms = append(f.confirms, msg)
	return f.confirmAnswer
}

func (f *fakeView) ShowLoading(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loading = append(f.loading, "show:"+msg)
}

func (f *fakeView) HideLoading() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loading = append(f.loading, "hide")
}

func (f *fakeView) SetUsername(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.username = name
}

func (f *fakeView) RenderProblems(opts []app.ProblemOption) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.problems = opts
}

func (f *fakeView) RenderProblem(v catalog.View) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.problem = &v
	f.problemHidden = false
}

func (f *fakeView) HideProblem() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.problemHidden = true
}

func (f *fakeView) RenderAnnotations(anns []model.Annotation) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.annotations = append(f.annotations, anns)
}

func (f *fakeView) RenderRunResult(r app.RunView) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.run = &r
}

func (f *fakeView) RenderSubmission(s app.SubmissionView) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submission = &s
}

func (f *fakeView) ShowModal(s app.SubmissionView) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.modal = &s
	f.modalOpen = true
}

func (f *fakeView) CloseModal() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.modalOpen = false
}

func (f *fakeView) Confetti() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.confetti++
}

func (f *fakeView) RenderLeaderboard(rows []app.LeaderboardRow) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = rows
}

func (f *fakeView) SetTheme(dark bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dark = dark
}

func (f *fakeView) SetSubmitEnabled(enabled bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitEnabled = enabled
}

func (f *fakeView) SetSubmitting(busy bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = append(f.submitting, busy)
}

func (f *fakeView) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets++
}

func (f *fakeView) lastAlert() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.alerts) == 0 {
		return ""
	}
	return f.alerts[len(f.alerts)-1]
}

// route is a canned backend answer.
type route struct {
	status int
	body   string
}

// fakeBackend serves canned JSON per path and counts hits.
type fakeBackend struct {
	mu     sync.Mutex
	routes map[string]route
	hits   map[string]int
	bodies map[string]string
	// gate, when set, blocks /submit until closed; entered is signalled first.
	gate    chan struct{}
	entered chan struct{}
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		routes: map[string]route{},
		hits:   map[string]int{},
		bodies: map[string]string{},
	}
}

func (b *fakeBackend) set(path string, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[path] = route{status: status, body: body}
}

func (b *fakeBackend) count(path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[path]
}

func (b *fakeBackend) body(path string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bodies[path]
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data, _ := io.ReadAll(r.Body)
	b.mu.Lock()
	b.hits[r.URL.Path]++
	b.bodies[r.URL.Path] = string(data)
	rt, ok := b.routes[r.URL.Path]
	gate, entered := b.gate, b.entered
	b.mu.Unlock()

	if r.URL.Path == "/submit" && gate != nil {
		entered <- struct{}{}
		<-gate
	}
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rt.status)
	_, _ = io.WriteString(w, rt.body)
}

func startBackend(b *fakeBackend) *httptest.Server {
	return httptest.NewServer(b)
}
