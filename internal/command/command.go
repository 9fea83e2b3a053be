// Package command parses REPL input lines and runs the matching address book command.
package command

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/smileynet/abook/internal/book"
	"github.com/smileynet/abook/internal/contact"
)

// Terminator is the literal input that ends a session outside the command table.
const Terminator = "."

// Fallback is the reply for input that matches no command.
const Fallback = "Wrong enter."

var (
	// ErrNoContact is returned when a command names a contact that does not exist.
	ErrNoContact = errors.New("command: no such contact")
	// ErrDuplicate is returned when adding a contact whose name is taken.
	ErrDuplicate = errors.New("command: contact already exists")
	// ErrUsage is returned when a command gets too few or too many arguments.
	ErrUsage = errors.New("command: bad arguments")
)

// User-facing messages for each error category.
const (
	MsgNoContact  = "No user with given name, try again!"
	MsgInvalid    = "This user can not be added!"
	MsgUsage      = "Unknown command or parameters, please try again!"
	MsgNoBirthday = "This contact doesn't have a birthday yet."
)

// Env is the state a handler works on.
type Env struct {
	Book     *book.AddressBook
	Now      func() time.Time
	PageSize int
}

// NewEnv returns an Env over b using the wall clock and the default page size.
func NewEnv(b *book.AddressBook) *Env {
	return &Env{Book: b, Now: time.Now, PageSize: book.DefaultPageSize}
}

func (e *Env) today() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// Reply is what a command produced for the user.
type Reply struct {
	Text string
	Exit bool // Session should end after printing Text.
}

// Handler runs one command. args is the input following the keyword.
type Handler func(env *Env, args string) (Reply, error)

// Describe translates a handler error to the message shown to the user.
// ok is false for errors outside the known categories.
func Describe(err error) (msg string, ok bool) {
	switch {
	case err == nil:
		return "", true
	case errors.Is(err, ErrNoContact):
		return MsgNoContact, true
	case errors.Is(err, ErrUsage):
		return MsgUsage, true
	case errors.Is(err, contact.ErrNoBirthday):
		return MsgNoBirthday, true
	case errors.Is(err, ErrDuplicate),
		errors.Is(err, book.ErrNotFound),
		errors.Is(err, contact.ErrInvalidPhone),
		errors.Is(err, contact.ErrInvalidBirthday),
		errors.Is(err, contact.ErrFutureBirthday):
		return MsgInvalid, true
	}
	return "", false
}

// Dispatcher matches input lines against a Registry and runs the handler.
type Dispatcher struct {
	registry *Registry
	env      *Env
	logger   *slog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used for dispatch diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithRegistry replaces the default command table.
func WithRegistry(r *Registry) Option {
	return func(d *Dispatcher) {
		if r != nil {
			d.registry = r
		}
	}
}

// NewDispatcher creates a Dispatcher over env with the default command table.
func NewDispatcher(env *Env, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		env:    env,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(d)
	}
	if d.registry == nil {
		d.registry = DefaultRegistry()
	}
	return d
}

// Registry returns the command table in use.
func (d *Dispatcher) Registry() *Registry { return d.registry }

// Execute runs the command on line. Handler errors are returned unchanged;
// use Describe to turn them into text.
func (d *Dispatcher) Execute(line string) (Reply, error) {
	if line == Terminator {
		d.logger.Debug("session terminated", "input", line)
		return Reply{Exit: true}, nil
	}

	kw, rest, ok := d.registry.Match(strings.TrimSpace(line))
	if !ok {
		d.logger.Debug("unknown command", "input", line)
		return Reply{Text: Fallback}, nil
	}
	h, _ := d.registry.Lookup(kw)

	d.logger.Debug("dispatching command", "command", kw)
	reply, err := h(d.env, rest)
	if err != nil {
		if _, known := Describe(err); known {
			d.logger.Info("command failed", "command", kw, "error", err)
		} else {
			d.logger.Error("command failed unexpectedly", "command", kw, "error", err)
		}
		return Reply{}, err
	}
	return reply, nil
}
