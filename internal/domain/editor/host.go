package editor

import (
	"sync"
	"time"

	"github.com/okian/codearena/internal/domain/lint"
	"github.com/okian/codearena/internal/domain/model"
	"github.com/okian/codearena/pkg/metrics"
)

// DefaultLintDelay is how long the host waits after the last edit before linting.
const DefaultLintDelay = 500 * time.Millisecond

// LintFunc computes annotations for a full buffer text.
type LintFunc func(text string) []model.Annotation

// Option applies a configuration option to the Host.
type Option func(*Host)

// WithLintDelay sets the debounce delay. Zero or negative lints synchronously
// after every edit.
func WithLintDelay(d time.Duration) Option {
	return func(h *Host) {
		h.delay = d
	}
}

// WithLinter replaces the linter.
func WithLinter(fn LintFunc) Option {
	return func(h *Host) {
		if fn != nil {
			h.lint = fn
		}
	}
}

// WithLintListener registers a callback for fresh annotations.
func WithLintListener(fn func([]model.Annotation)) Option {
	return func(h *Host) {
		h.onLint = fn
	}
}

// WithChangeListener registers a callback invoked after every edit.
func WithChangeListener(fn func()) Option {
	return func(h *Host) {
		h.onChange = fn
	}
}

// WithText sets the initial content instead of StarterCode.
func WithText(text string) Option {
	return func(h *Host) {
		h.buf.SetText(text)
	}
}

// Host owns a Buffer and re-lints it after edits, debounced. Listener
// callbacks run outside the host lock and may call back into the host.
type Host struct {
	mu       sync.Mutex
	buf      *Buffer
	delay    time.Duration
	lint     LintFunc
	onLint   func([]model.Annotation)
	onChange func()
	timer    *time.Timer
	seq      uint64
	last     []model.Annotation
	closed   bool
}

// NewHost creates a host holding StarterCode.
func NewHost(opts ...Option) *Host {
	h := &Host{
		buf:   NewBuffer(StarterCode),
		delay: DefaultLintDelay,
		lint:  lint.Lint,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// SetListeners replaces the change and lint listeners. Nil leaves a listener unchanged.
func (h *Host) SetListeners(onChange func(), onLint func([]model.Annotation)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if onChange != nil {
		h.onChange = onChange
	}
	if onLint != nil {
		h.onLint = onLint
	}
}

// Edit applies fn to the buffer under the host lock, then notifies the change
// listener and schedules a lint.
func (h *Host) Edit(fn func(b *Buffer)) {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	fn(h.buf)
	h.seq++
	seq := h.seq
	immediate := h.delay <= 0
	if !immediate {
		if h.timer != nil {
			h.timer.Stop()
		}
		h.timer = time.AfterFunc(h.delay, func() { h.runLint(seq) })
	}
	onChange := h.onChange
	h.mu.Unlock()

	if onChange != nil {
		onChange()
	}
	if immediate {
		h.runLint(seq)
	}
}

// View runs fn with read access to the buffer.
func (h *Host) View(fn func(b *Buffer)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fn(h.buf)
}

// Text returns the current content.
func (h *Host) Text() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.buf.Text()
}

// SetText replaces the content.
func (h *Host) SetText(text string) { h.Edit(func(b *Buffer) { b.SetText(text) }) }

// Reset restores StarterCode.
func (h *Host) Reset() { h.Edit((*Buffer).Reset) }

// Newline applies the Enter key handler.
func (h *Host) Newline() { h.Edit((*Buffer).Newline) }

// Tab applies the Tab key handler.
func (h *Host) Tab() { h.Edit((*Buffer).Tab) }

// ShiftTab applies the Shift-Tab key handler.
func (h *Host) ShiftTab() { h.Edit((*Buffer).ShiftTab) }

// ToggleComment applies the comment toggle handler.
func (h *Host) ToggleComment() { h.Edit((*Buffer).ToggleComment) }

// Annotations returns the result of the most recent lint.
func (h *Host) Annotations() []model.Annotation {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]model.Annotation, len(h.last))
	copy(out, h.last)
	return out
}

// Flush cancels any pending lint and lints now.
func (h *Host) Flush() []model.Annotation {
	h.mu.Lock()
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
	seq := h.seq
	h.mu.Unlock()
	h.runLint(seq)
	return h.Annotations()
}

// Close stops the pending lint; later edits are ignored.
func (h *Host) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
}

// runLint lints the text of edit seq; results for superseded edits are dropped.
func (h *Host) runLint(seq uint64) {
	h.mu.Lock()
	if h.seq != seq {
		h.mu.Unlock()
		return
	}
	text := h.buf.Text()
	fn := h.lint
	h.mu.Unlock()

	start := time.Now()
	anns := fn(text)
	recordLint(time.Since(start), anns)

	h.mu.Lock()
	if h.seq != seq {
		h.mu.Unlock()
		return
	}
	h.last = anns
	onLint := h.onLint
	h.mu.Unlock()

	if onLint != nil {
		onLint(anns)
	}
}

func recordLint(d time.Duration, anns []model.Annotation) {
	metrics.RecordLintRun(float64(d) / float64(time.Millisecond))
	for _, a := range anns {
		metrics.RecordLintAnnotation(string(a.Severity))
	}
}
