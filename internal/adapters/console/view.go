// Package console renders the challenge client in a terminal and turns typed
// commands into controller events.
package console

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"text/template"
	"time"

	"github.com/okian/codearena/internal/app"
	"github.com/okian/codearena/internal/domain/catalog"
	"github.com/okian/codearena/internal/domain/model"
	"github.com/okian/codearena/pkg/logger"
)

const wrapWidth = 88

// View implements app.View over an io.Writer.
type View struct {
	mu       sync.Mutex
	out      io.Writer
	tmpl     *template.Template
	handlers map[app.Event]app.Handler
	logger   logger.Logger

	color   bool
	dark    bool
	confirm func(msg string) bool
	sleep   func(time.Duration)
	rnd     *rand.Rand

	username      string
	problems      []app.ProblemOption
	problemID     string
	annotations   []model.Annotation
	submitEnabled bool
	submitting    bool
	loading       bool
	modalOpen     bool
}

var _ app.View = (*View)(nil)

// New creates a view writing to out. Colour is on and confirmations are
// declined unless configured otherwise.
func New(out io.Writer, opts ...Option) *View {
	v := &View{
		out:      out,
		handlers: map[app.Event]app.Handler{},
		logger:   logger.Nop(),
		color:    true,
		confirm:  func(string) bool { return false },
		sleep:    time.Sleep,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // decoration only
	}
	for _, opt := range opts {
		opt(v)
	}
	v.tmpl = parseTemplates(template.FuncMap{
		"paint":   v.paint,
		"add":     func(a, b int) int { return a + b },
		"num":     func(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) },
		"indent":  func(s string) string { return indent(s, 2) },
		"indentN": indent,
		"wrap":    func(s string) string { return indent(wrap(s, wrapWidth-2), 2) },
		"stamp":   func(t time.Time) string { return t.Format("2006-01-02 15:04:05") },
		"rule":    func() string { return strings.Repeat("=", 60) },
	})
	return v
}

// SetOutput redirects rendering, e.g. to a line editor's stdout.
func (v *View) SetOutput(w io.Writer) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.out = w
}

// SetConfirm replaces the confirmation prompt.
func (v *View) SetConfirm(fn func(msg string) bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if fn != nil {
		v.confirm = fn
	}
}

// Bind registers h for ev, replacing any earlier handler.
func (v *View) Bind(ev app.Event, h app.Handler) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.handlers[ev] = h
}

// Dispatch runs the handler bound to ev.
func (v *View) Dispatch(ctx context.Context, ev app.Event, value string) error {
	v.mu.Lock()
	h, ok := v.handlers[ev]
	v.mu.Unlock()
	if !ok {
		v.logger.Warn(ctx, "event dropped", logger.String("event", string(ev)))
		return fmt.Errorf("%w: %s", ErrUnbound, ev)
	}
	h(ctx, value)
	return nil
}

// Alert prints msg prominently.
func (v *View) Alert(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.printf("%s\n", v.paint("alert", "! "+msg))
}

// Confirm asks a yes/no question.
func (v *View) Confirm(msg string) bool {
	v.mu.Lock()
	fn := v.confirm
	v.mu.Unlock()
	return fn(msg)
}

// ShowLoading prints a progress line.
func (v *View) ShowLoading(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = true
	v.printf("%s\n", v.paint("loading", "... "+msg))
}

// HideLoading clears the loading state.
func (v *View) HideLoading() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = false
}

// SetUsername records the username shown in the prompt.
func (v *View) SetUsername(name string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.username = name
}

// RenderProblems prints the numbered problem list.
func (v *View) RenderProblems(opts []app.ProblemOption) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.problems = opts
	v.render("problems", opts)
}

// ShowProblems reprints the last problem list.
func (v *View) ShowProblems() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.render("problems", v.problems)
}

// Problems returns the last rendered problem list.
func (v *View) Problems() []app.ProblemOption {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]app.ProblemOption(nil), v.problems...)
}

// RenderProblem prints a problem statement with its sample tests.
func (v *View) RenderProblem(p catalog.View) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.problemID = p.ID
	v.render("problem", p)
}

// HideProblem forgets the displayed problem.
func (v *View) HideProblem() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.problemID = ""
}

// RenderAnnotations stores the latest lint result and prints a one-line summary when it changes.
func (v *View) RenderAnnotations(anns []model.Annotation) {
	v.mu.Lock()
	defer v.mu.Unlock()
	changed := !sameAnnotations(v.annotations, anns)
	v.annotations = anns
	if changed && len(anns) > 0 {
		v.printf("%s\n", v.paint("muted", "lint: "+summarize(anns)+" (type 'lint' for details)"))
	}
}

// Annotations returns the latest lint result.
func (v *View) Annotations() []model.Annotation {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]model.Annotation(nil), v.annotations...)
}

// ShowAnnotations prints every annotation of the latest lint result.
func (v *View) ShowAnnotations() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.annotations) == 0 {
		v.printf("%s\n", v.paint("passed", "lint: no problems"))
		return
	}
	for _, a := range v.annotations {
		role := "muted"
		switch a.Severity {
		case model.SeverityError:
			role = "failed"
		case model.SeverityWarning:
			role = "partial"
		}
		v.printf("%d:%d: %s: %s\n", a.From.Line+1, a.From.Col+1, v.paint(role, string(a.Severity)), a.Message)
	}
}

// ShowCode prints the buffer with line numbers, a gutter mark per annotated
// line and the cursor position.
func (v *View) ShowCode(lines []string, cursor model.Pos) {
	v.mu.Lock()
	defer v.mu.Unlock()
	marks := map[int]model.Severity{}
	for _, a := range v.annotations {
		if cur, ok := marks[a.From.Line]; !ok || a.Severity.Rank() > cur.Rank() {
			marks[a.From.Line] = a.Severity
		}
	}
	for i, line := range lines {
		gutter := " "
		if sev, ok := marks[i]; ok {
			gutter = strings.ToUpper(string(sev)[:1])
		}
		arrow := " "
		if i == cursor.Line {
			arrow = ">"
		}
		v.printf("%s%s%4d | %s\n", gutter, arrow, i+1, line)
	}
	v.printf("%s\n", v.paint("muted", fmt.Sprintf("cursor %d:%d", cursor.Line+1, cursor.Col+1)))
}

// RenderRunResult prints public test results.
func (v *View) RenderRunResult(r app.RunView) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.render("run", r)
}

// RenderSubmission prints a graded submission.
func (v *View) RenderSubmission(s app.SubmissionView) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.render("submission", s)
}

// ShowModal prints the result box.
func (v *View) ShowModal(s app.SubmissionView) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.modalOpen = true
	v.render("modal", s)
}

// CloseModal dismisses the result box.
func (v *View) CloseModal() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.modalOpen = false
}

// ModalOpen reports whether the result box is showing.
func (v *View) ModalOpen() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.modalOpen
}

// Confetti prints three bursts, pausing for each burst's delay.
func (v *View) Confetti() {
	var last time.Duration
	for _, b := range bursts {
		if wait := b.delay - last; wait > 0 {
			v.sleep(wait)
		}
		last = b.delay
		v.mu.Lock()
		v.printf("%s", v.renderBurst(b))
		v.mu.Unlock()
	}
}

// RenderLeaderboard prints the ranked table.
func (v *View) RenderLeaderboard(rows []app.LeaderboardRow) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.render("leaderboard", rows)
}

// SetTheme switches the palette.
func (v *View) SetTheme(dark bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.dark = dark
	mode := "Light Mode"
	if dark {
		mode = "Dark Mode"
	}
	v.printf("%s\n", v.paint("muted", "theme: "+mode))
}

// SetSubmitEnabled records whether the form is complete.
func (v *View) SetSubmitEnabled(enabled bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.submitEnabled = enabled
}

// SetSubmitting records an in-flight submission.
func (v *View) SetSubmitting(busy bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.submitting = busy
	if busy {
		v.printf("%s\n", v.paint("muted", "Submitting..."))
	}
}

// Reset clears the form fields and hides every section.
func (v *View) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.username = ""
	v.problemID = ""
	v.modalOpen = false
	v.printf("%s\n", v.paint("muted", "form reset"))
}

// Prompt is the line editor prompt reflecting the form state.
func (v *View) Prompt() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	user := v.username
	if user == "" {
		user = "?"
	}
	problem := v.problemID
	if problem == "" {
		problem = "-"
	}
	state := ""
	switch {
	case v.submitting:
		state = " …"
	case v.submitEnabled:
		state = " ✓"
	}
	return fmt.Sprintf("codearena[%s@%s]%s> ", user, problem, state)
}

// Printf writes a free-form line.
func (v *View) Printf(format string, args ...interface{}) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.printf(format, args...)
}

// Help prints the command reference.
func (v *View) Help(cmds []CommandHelp) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.render("help", cmds)
}

// render executes the named template. Callers hold mu.
func (v *View) render(name string, data interface{}) {
	var sb strings.Builder
	if err := v.tmpl.ExecuteTemplate(&sb, name, data); err != nil {
		v.logger.Error(context.Background(), "render failed", logger.String("template", name), logger.Error(err))
		v.printf("render %s: %v\n", name, err)
		return
	}
	v.printf("%s", sb.String())
}

// printf writes to out. Callers hold mu.
func (v *View) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(v.out, format, args...)
}

// paint wraps text in the colour for role. It never locks; templates call it
// while mu is held.
func (v *View) paint(role, text string) string {
	if !v.color || text == "" {
		return text
	}
	p := lightPalette
	if v.dark {
		p = darkPalette
	}
	code, ok := p[role]
	if !ok {
		return text
	}
	return code + text + ansiReset
}

func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = pad + l
		}
	}
	return strings.Join(lines, "\n")
}

// wrap breaks s at spaces so lines stay within width; explicit newlines are kept.
func wrap(s string, width int) string {
	var out []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		line := ""
		for _, w := range words {
			switch {
			case line == "":
				line = w
			case len([]rune(line))+1+len([]rune(w)) > width:
				out = append(out, line)
				line = w
			default:
				line += " " + w
			}
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func summarize(anns []model.Annotation) string {
	counts := map[model.Severity]int{}
	for _, a := range anns {
		counts[a.Severity]++
	}
	parts := make([]string, 0, 3)
	for _, sev := range []model.Severity{model.SeverityError, model.SeverityWarning, model.SeverityInfo} {
		if n := counts[sev]; n > 0 {
			label := string(sev)
			if n > 1 {
				label += "s"
			}
			parts = append(parts, fmt.Sprintf("%d %s", n, label))
		}
	}
	return strings.Join(parts, ", ")
}

func sameAnnotations(a, b []model.Annotation) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
