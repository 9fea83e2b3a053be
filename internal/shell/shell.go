// Package shell runs the interactive read-execute-print loop, either as plain
// line-oriented text or as a terminal UI.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/smileynet/abook/internal/command"
	"github.com/smileynet/abook/internal/ctxlog"
)

// DefaultPrompt is shown before each input line.
const DefaultPrompt = ">>> "

// Shell reads commands, executes them with a Dispatcher and prints the replies.
type Shell interface {
	Run(ctx context.Context, d *command.Dispatcher) error
}

// Options configures shell creation.
type Options struct {
	In         io.Reader // Input source (default: os.Stdin).
	Out        io.Writer // Output destination (default: os.Stdout).
	Prompt     string    // Prompt text (default: DefaultPrompt).
	ForcePlain bool      // Force plain text even if TTY.
}

// New returns a TUI shell when both input and output are terminals, or a
// plain text shell otherwise. ForcePlain overrides TTY detection.
func New(opts Options) Shell {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Prompt == "" {
		opts.Prompt = DefaultPrompt
	}

	if opts.ForcePlain || !isTTY(opts.In) || !isTTY(opts.Out) {
		return &PlainShell{in: opts.In, out: opts.Out, prompt: opts.Prompt}
	}

	return &TUIShell{in: opts.In, out: opts.Out, prompt: opts.Prompt}
}

// isTTY reports whether v is connected to a terminal.
func isTTY(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// UnexpectedError wraps a command failure that has no user-facing message.
// The session stops when one occurs.
type UnexpectedError struct {
	Input string
	Err   error
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("shell: %q: %v", e.Input, e.Err)
}

func (e *UnexpectedError) Unwrap() error { return e.Err }

// step runs one input line and returns the text to print and whether the
// session is over.
func step(d *command.Dispatcher, line string) (text string, isErr, exit bool, err error) {
	reply, err := d.Execute(line)
	if err != nil {
		msg, ok := command.Describe(err)
		if !ok {
			return "", true, true, &UnexpectedError{Input: line, Err: err}
		}
		return msg, true, false, nil
	}
	return reply.Text, false, reply.Exit, nil
}

// PlainShell prints a prompt and reads one line at a time.
type PlainShell struct {
	in     io.Reader
	out    io.Writer
	prompt string
}

// Run loops until a terminal command, end of input, or context cancellation.
func (s *PlainShell) Run(ctx context.Context, d *command.Dispatcher) error {
	logger := ctxlog.FromContext(ctx)
	lines := make(chan string)
	readErr := make(chan error, 1)
	stop := make(chan struct{})
	defer close(stop)

	go func() {
		defer close(lines)
		sc := bufio.NewScanner(s.in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-stop:
				return
			}
		}
		readErr <- sc.Err()
	}()

	for {
		_, _ = fmt.Fprint(s.out, s.prompt)
		select {
		case <-ctx.Done():
			_, _ = fmt.Fprintln(s.out)
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				_, _ = fmt.Fprintln(s.out)
				if err := <-readErr; err != nil {
					return fmt.Errorf("shell: reading input: %w", err)
				}
				logger.Debug("input closed")
				return nil
			}
			text, _, exit, err := step(d, line)
			if err != nil {
				return err
			}
			if text != "" {
				_, _ = fmt.Fprintln(s.out, text)
			}
			if exit {
				return nil
			}
		}
	}
}
