package shell

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/abook/internal/command"
	"github.com/smileynet/abook/internal/ctxlog"
)

// TUIShell runs the prompt as a Bubble Tea terminal UI.
// Falls back to PlainShell if the TUI program fails to start.
type TUIShell struct {
	in     io.Reader
	out    io.Writer
	prompt string
}

// Run starts the Bubble Tea program and blocks until the session ends.
func (s *TUIShell) Run(ctx context.Context, d *command.Dispatcher) error {
	p := tea.NewProgram(NewModel(d, s.prompt),
		tea.WithContext(ctx),
		tea.WithInput(s.in),
		tea.WithOutput(s.out),
	)

	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		ctxlog.FromContext(ctx).Warn("terminal UI failed, falling back to plain text", "error", err)
		plain := &PlainShell{in: s.in, out: s.out, prompt: s.prompt}
		return plain.Run(ctx, d)
	}

	if m, ok := final.(Model); ok {
		return m.Err()
	}
	return nil
}
