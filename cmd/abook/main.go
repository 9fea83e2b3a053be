package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"

	"github.com/smileynet/abook/internal/book"
	"github.com/smileynet/abook/internal/command"
	"github.com/smileynet/abook/internal/config"
	"github.com/smileynet/abook/internal/ctxlog"
	"github.com/smileynet/abook/internal/shell"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// CLI is the top-level command structure for abook.
type CLI struct {
	Version kong.VersionFlag `help:"Show version." short:"V"`
	Repl    ReplCmd          `cmd:"" default:"withargs" help:"Start the interactive address book."`
}

// ReplCmd starts an interactive address book session.
type ReplCmd struct {
	Config   string `help:"Extra config file, applied after the user and project files." type:"path" placeholder:"FILE"`
	PageSize int    `help:"Contacts per page for 'show all' (overrides config)." placeholder:"N"`
	NoTUI    bool   `help:"Force plain text input and output even on a terminal." default:"false"`
	LogLevel string `help:"Log level: debug, info, warn or error (overrides config)." placeholder:"LEVEL"`
}

// setupError marks failures that happen before the session starts.
type setupError struct {
	err error
}

func (e *setupError) Error() string { return e.err.Error() }
func (e *setupError) Unwrap() error { return e.err }

// loadConfig loads layered config from user, project and explicit paths with env overrides.
func loadConfig(extra string) (*config.Config, error) {
	paths := []string{
		os.ExpandEnv("$HOME/.config/abook/config.yaml"),
		".abook.yaml",
	}
	if extra != "" {
		paths = append(paths, extra)
	}
	cfg, err := config.LoadLayered(paths...)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Run executes the repl command.
func (r *ReplCmd) Run() error {
	cfg, err := loadConfig(r.Config)
	if err != nil {
		return &setupError{fmt.Errorf("repl: %w", err)}
	}
	r.applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return &setupError{fmt.Errorf("repl: %w", err)}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return r.run(ctx, os.Stdin, os.Stdout, os.Stderr, cfg)
}

// applyFlags copies flag overrides onto cfg.
func (r *ReplCmd) applyFlags(cfg *config.Config) {
	if r.PageSize != 0 {
		cfg.Shell.PageSize = r.PageSize
	}
	if r.NoTUI {
		cfg.Shell.Plain = true
	}
	if r.LogLevel != "" {
		cfg.Log.Level = r.LogLevel
	}
}

// run wires the address book, dispatcher and shell, enabling testable wiring.
func (r *ReplCmd) run(ctx context.Context, in io.Reader, out, errOut io.Writer, cfg *config.Config) error {
	sh := shell.New(shell.Options{
		In:         in,
		Out:        out,
		Prompt:     cfg.Shell.Prompt,
		ForcePlain: cfg.Shell.Plain,
	})
	_, interactive := sh.(*shell.TUIShell)

	logger, closeLog, err := openLogger(cfg.Log, interactive, errOut)
	if err != nil {
		return &setupError{fmt.Errorf("repl: %w", err)}
	}
	defer closeLog()

	env := command.NewEnv(book.New())
	env.PageSize = cfg.Shell.PageSize
	d := command.NewDispatcher(env, command.WithLogger(logger))

	logger.Info("session started", "tui", interactive, "page_size", env.PageSize)
	err = sh.Run(ctxlog.WithLogger(ctx, logger), d)
	if errors.Is(err, context.Canceled) {
		logger.Info("session interrupted")
		return nil
	}
	if err != nil {
		return err
	}
	logger.Info("session ended", "contacts", env.Book.Len())
	return nil
}

// openLogger returns the session logger. A configured file wins; otherwise
// logs go to errOut, except under the terminal UI where they would corrupt
// the screen.
func openLogger(lc config.Log, interactive bool, errOut io.Writer) (*slog.Logger, func(), error) {
	level, err := ctxlog.ParseLevel(lc.Level)
	if err != nil {
		return nil, nil, err
	}
	if lc.File != "" {
		f, err := os.OpenFile(lc.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		return ctxlog.New(f, level), func() { _ = f.Close() }, nil
	}
	if interactive {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	return ctxlog.New(errOut, level), func() {}, nil
}

// Exit codes.
const (
	exitSuccess = 0
	exitRuntime = 1
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var se *setupError
	if errors.As(err, &se) {
		return exitSetup
	}
	return exitRuntime
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Description("An interactive address book for names, phone numbers and birthdays."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
