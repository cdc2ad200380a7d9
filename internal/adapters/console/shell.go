package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/shlex"
	"github.com/okian/codearena/internal/app"
	"github.com/okian/codearena/internal/domain/editor"
	"github.com/okian/codearena/pkg/logger"
)

// CommandHelp documents one shell command.
type CommandHelp struct {
	Usage   string
	Summary string
}

type command struct {
	help CommandHelp
	run  func(ctx context.Context, args []string) error
	// text commands take the rest of the line verbatim instead of shell tokens.
	text func(ctx context.Context, rest string) error
}

// Shell reads commands from a line editor and applies them to the view and editor.
type Shell struct {
	view        *View
	host        *editor.Host
	historyFile string
	stdin       io.ReadCloser
	stdout      io.Writer
	logger      logger.Logger
	commands    map[string]command
	order       []string
}

// ShellOption applies a configuration option to the Shell.
type ShellOption func(*Shell)

// WithHistoryFile persists line history at path.
func WithHistoryFile(path string) ShellOption {
	return func(s *Shell) { s.historyFile = path }
}

// WithIO replaces the terminal streams.
func WithIO(in io.ReadCloser, out io.Writer) ShellOption {
	return func(s *Shell) {
		if in != nil {
			s.stdin = in
		}
		if out != nil {
			s.stdout = out
		}
	}
}

// WithShellLogger sets the logger for command failures.
func WithShellLogger(l logger.Logger) ShellOption {
	return func(s *Shell) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewShell creates a shell driving view and host.
func NewShell(view *View, host *editor.Host, opts ...ShellOption) *Shell {
	s := &Shell{
		view:   view,
		host:   host,
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.register()
	return s
}

func (s *Shell) add(name, usage, summary string, run func(ctx context.Context, args []string) error) {
	s.commands[name] = command{help: CommandHelp{Usage: usage, Summary: summary}, run: run}
	s.order = append(s.order, name)
}

func (s *Shell) addText(name, usage, summary string, text func(ctx context.Context, rest string) error) {
	s.commands[name] = command{help: CommandHelp{Usage: usage, Summary: summary}, text: text}
	s.order = append(s.order, name)
}

func (s *Shell) event(ev app.Event) func(ctx context.Context, args []string) error {
	return func(ctx context.Context, args []string) error {
		return s.view.Dispatch(ctx, ev, strings.Join(args, " "))
	}
}

func (s *Shell) register() {
	s.commands = map[string]command{}

	s.add("user", "user <name>", "set the username", func(ctx context.Context, args []string) error {
		return s.view.Dispatch(ctx, app.EventUsernameInput, strings.Join(args, " "))
	})
	s.add("problems", "problems", "list problems", func(context.Context, []string) error {
		s.view.ShowProblems()
		return nil
	})
	s.add("select", "select [<id>|<number>]", "show a problem; no argument clears", s.selectProblem)
	s.add("load", "load <file>", "replace the code with a file", s.load)
	s.add("save", "save <file>", "write the code to a file", s.save)
	s.add("show", "show", "print the code", func(context.Context, []string) error {
		s.show()
		return nil
	})
	s.add("goto", "goto <line> [<col>]", "move the cursor", s.moveCursor)
	s.addText("type", "type <text>", "insert text at the cursor", func(_ context.Context, text string) error {
		if text == "" {
			return fmt.Errorf("%w: type <text>", ErrUsage)
		}
		s.host.Edit(func(b *editor.Buffer) { b.ReplaceSelection(text) })
		return nil
	})
	s.addText("set", "set <line> <text>", "replace a line", s.setLine)
	s.addText("append", "append <text>", "add a line at the end", s.appendLine)
	s.add("newline", "newline", "break the line at the cursor with smart indent", func(context.Context, []string) error {
		s.host.Newline()
		return nil
	})
	s.add("tab", "tab", "indent", func(context.Context, []string) error {
		s.host.Tab()
		return nil
	})
	s.add("untab", "untab", "dedent", func(context.Context, []string) error {
		s.host.ShiftTab()
		return nil
	})
	s.add("comment", "comment", "toggle comments on the selected lines", func(context.Context, []string) error {
		s.host.ToggleComment()
		return nil
	})
	s.add("select-lines", "select-lines <from> [<to>]", "select whole lines", s.selectLines)
	s.add("lint", "lint", "lint now and list problems", func(context.Context, []string) error {
		s.host.Flush()
		s.view.ShowAnnotations()
		return nil
	})
	s.add("run", "run", "run against public tests", s.event(app.EventRun))
	s.add("submit", "submit", "submit for grading", s.event(app.EventSubmit))
	s.add("leaderboard", "leaderboard", "show the leaderboard", func(ctx context.Context, _ []string) error {
		if s.view.ModalOpen() {
			return s.view.Dispatch(ctx, app.EventViewLeaderboard, "")
		}
		return s.view.Dispatch(ctx, app.EventLeaderboard, "")
	})
	s.add("theme", "theme", "toggle dark mode", s.event(app.EventThemeToggle))
	s.add("close", "close", "close the result box", s.event(app.EventCloseModal))
	s.add("reset", "reset", "clear the form and try another problem", s.event(app.EventTryAnother))
	s.add("logout", "logout", "forget the remembered user", s.event(app.EventLogout))
	s.add("help", "help", "show this help", func(context.Context, []string) error {
		s.view.Help(s.Help())
		return nil
	})
	s.add("exit", "exit", "quit", func(context.Context, []string) error { return nil })
}

// Help lists commands in registration order.
func (s *Shell) Help() []CommandHelp {
	out := make([]CommandHelp, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.commands[name].help)
	}
	return out
}

// Exec runs one command line. quit is set for exit and quit. Code-editing
// commands receive everything after the command name verbatim; all others
// get shell-style tokens.
func (s *Shell) Exec(ctx context.Context, line string) (quit bool, err error) {
	if name, rest := splitWord(line); name != "" {
		if cmd, ok := s.commands[name]; ok && cmd.text != nil {
			return false, cmd.text(ctx, rest)
		}
	}

	tokens, err := shlex.Split(line)
	if err != nil {
		return false, fmt.Errorf("parse command failed: %w", err)
	}
	if len(tokens) == 0 {
		return false, nil
	}
	name, args := tokens[0], tokens[1:]
	if name == "exit" || name == "quit" {
		return true, nil
	}
	cmd, ok := s.commands[name]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	return false, cmd.run(ctx, args)
}

// Run reads and executes commands until exit, EOF or ctx cancellation.
func (s *Shell) Run(ctx context.Context) error {
	names := make([]readline.PrefixCompleterInterface, 0, len(s.order))
	for _, name := range s.order {
		names = append(names, readline.PcItem(name))
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.view.Prompt(),
		HistoryFile:     s.historyFile,
		AutoComplete:    readline.NewPrefixCompleter(names...),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdin:           s.stdin,
		Stdout:          s.stdout,
	})
	if err != nil {
		return fmt.Errorf("start line editor: %w", err)
	}
	defer func() { _ = rl.Close() }()

	s.view.SetOutput(rl.Stdout())
	s.view.SetConfirm(func(msg string) bool {
		rl.SetPrompt(msg + " [y/N] ")
		defer rl.SetPrompt(s.view.Prompt())
		answer, err := rl.Readline()
		if err != nil {
			return false
		}
		answer = strings.ToLower(strings.TrimSpace(answer))
		return answer == "y" || answer == "yes"
	})
	s.view.Printf("Type 'help' for commands.\n")

	for {
		if ctx.Err() != nil {
			return nil
		}
		rl.SetPrompt(s.view.Prompt())
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		quit, err := s.Exec(ctx, line)
		if err != nil {
			s.logger.Debug(ctx, "command failed", logger.String("line", line), logger.Error(err))
			s.view.Printf("error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

func (s *Shell) selectProblem(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return s.view.Dispatch(ctx, app.EventProblemSelect, "")
	}
	id := args[0]
	if n, err := strconv.Atoi(id); err == nil {
		opts := s.view.Problems()
		if n < 1 || n > len(opts) {
			return fmt.Errorf("%w: select 1..%d", ErrUsage, len(opts))
		}
		id = opts[n-1].ID
	}
	return s.view.Dispatch(ctx, app.EventProblemSelect, id)
}

func (s *Shell) load(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: load <file>", ErrUsage)
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("load %s: %w", args[0], err)
	}
	return s.view.Dispatch(ctx, app.EventCodeChange, string(data))
}

func (s *Shell) save(_ context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: save <file>", ErrUsage)
	}
	if err := os.WriteFile(args[0], []byte(s.host.Text()), 0o600); err != nil {
		return fmt.Errorf("save %s: %w", args[0], err)
	}
	s.view.Printf("saved %s\n", args[0])
	return nil
}

func (s *Shell) show() {
	var lines []string
	var cursor editor.Pos
	s.host.View(func(b *editor.Buffer) {
		lines = make([]string, b.LineCount())
		for i := range lines {
			lines[i] = b.Line(i)
		}
		cursor = b.Cursor()
	})
	s.view.ShowCode(lines, cursor)
}

// lineArg parses a 1-based line number into a buffer index.
func (s *Shell) lineArg(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%w: line must be a number, got %q", ErrUsage, arg)
	}
	var count int
	s.host.View(func(b *editor.Buffer) { count = b.LineCount() })
	if n < 1 || n > count {
		return 0, fmt.Errorf("%w: line must be within 1..%d", ErrUsage, count)
	}
	return n - 1, nil
}

func (s *Shell) moveCursor(_ context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: goto <line> [<col>]", ErrUsage)
	}
	line, err := s.lineArg(args[0])
	if err != nil {
		return err
	}
	col := -1
	if len(args) == 2 {
		c, err := strconv.Atoi(args[1])
		if err != nil || c < 1 {
			return fmt.Errorf("%w: column must be a positive number", ErrUsage)
		}
		col = c - 1
	}
	s.host.View(func(b *editor.Buffer) {
		if col < 0 {
			col = len([]rune(b.Line(line)))
		}
		b.SetCursor(editor.Pos{Line: line, Col: col})
	})
	return nil
}

func (s *Shell) setLine(_ context.Context, rest string) error {
	arg, text := splitWord(rest)
	if arg == "" {
		return fmt.Errorf("%w: set <line> <text>", ErrUsage)
	}
	line, err := s.lineArg(arg)
	if err != nil {
		return err
	}
	s.host.Edit(func(b *editor.Buffer) {
		end := len([]rune(b.Line(line)))
		b.Select(editor.Pos{Line: line}, editor.Pos{Line: line, Col: end})
		b.ReplaceSelection(text)
	})
	return nil
}

func (s *Shell) appendLine(_ context.Context, text string) error {
	s.host.Edit(func(b *editor.Buffer) {
		last := b.LineCount() - 1
		end := len([]rune(b.Line(last)))
		b.SetCursor(editor.Pos{Line: last, Col: end})
		b.ReplaceSelection("\n" + text)
	})
	return nil
}

func (s *Shell) selectLines(_ context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: select-lines <from> [<to>]", ErrUsage)
	}
	from, err := s.lineArg(args[0])
	if err != nil {
		return err
	}
	to := from
	if len(args) == 2 {
		if to, err = s.lineArg(args[1]); err != nil {
			return err
		}
	}
	s.host.View(func(b *editor.Buffer) { b.SelectLines(from, to) })
	return nil
}

// splitWord returns the first blank-separated word of s and the text after
// the single blank that ends it. The remainder keeps quotes, '#' and runs of
// spaces, so Python source survives unchanged.
func splitWord(s string) (word, rest string) {
	s = strings.TrimLeft(s, " \t")
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i+1:]
}
