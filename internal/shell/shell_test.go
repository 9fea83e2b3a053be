package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/smileynet/abook/internal/book"
	"github.com/smileynet/abook/internal/command"
)

func newDispatcher() *command.Dispatcher {
	env := command.NewEnv(book.New())
	env.Now = func() time.Time { return time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC) }
	return command.NewDispatcher(env)
}

// --- isTTY ---

func TestIsTTY_NonFileWriter(t *testing.T) {
	var buf bytes.Buffer
	if isTTY(&buf) {
		t.Error("non-*os.File writer should not be a TTY")
	}
}

func TestIsTTY_RegularFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "test")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()

	if isTTY(f) {
		t.Error("regular file should not be a TTY")
	}
}

// --- New ---

func TestNew_NonTTYReturnsPlain(t *testing.T) {
	var buf bytes.Buffer
	sh := New(Options{In: strings.NewReader(""), Out: &buf})
	if _, ok := sh.(*PlainShell); !ok {
		t.Errorf("New(non-TTY) = %T, want *PlainShell", sh)
	}
}

func TestNew_ForcePlain(t *testing.T) {
	sh := New(Options{In: os.Stdin, Out: os.Stdout, ForcePlain: true})
	if _, ok := sh.(*PlainShell); !ok {
		t.Errorf("New(ForcePlain) = %T, want *PlainShell", sh)
	}
}

func TestNew_DefaultPrompt(t *testing.T) {
	sh := New(Options{In: strings.NewReader(""), Out: io.Discard})
	ps := sh.(*PlainShell)
	if ps.prompt != DefaultPrompt {
		t.Errorf("prompt = %q, want %q", ps.prompt, DefaultPrompt)
	}
}

// --- PlainShell ---

func runPlain(t *testing.T, input string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	sh := &PlainShell{in: strings.NewReader(input), out: &out, prompt: "> "}
	err := sh.Run(context.Background(), newDispatcher())
	return out.String(), err
}

func TestPlainShell_Session(t *testing.T) {
	out, err := runPlain(t, strings.Join([]string{
		"hello",
		"add john 1234567890",
		"phone john",
		"add john 1112223333",
		"nonsense",
		"exit",
		"hello",
	}, "\n"))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := "> How can I help you?\n" +
		"> The user with name john and phone 1234567890 was added!\n" +
		"> john - 1234567890\n" +
		"> This user can not be added!\n" +
		"> Wrong enter.\n" +
		"> Good bye!\n"
	if out != want {
		t.Errorf("output =\n%q\nwant\n%q", out, want)
	}
}

func TestPlainShell_DotTerminates(t *testing.T) {
	out, err := runPlain(t, ".\nhello\n")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if strings.Contains(out, "How can I help you?") {
		t.Errorf("input after '.' should not be executed, output = %q", out)
	}
}

func TestPlainShell_EOFEndsSession(t *testing.T) {
	out, err := runPlain(t, "hello")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.HasSuffix(out, "> \n") {
		t.Errorf("output should end with a final prompt and newline, got %q", out)
	}
}

func TestPlainShell_ContextCancelled(t *testing.T) {
	r, w := io.Pipe()
	defer func() { _ = w.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	sh := &PlainShell{in: r, out: io.Discard, prompt: "> "}

	done := make(chan error, 1)
	go func() { done <- sh.Run(ctx, newDispatcher()) }()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return after cancellation")
	}
}

func TestPlainShell_UnexpectedErrorStops(t *testing.T) {
	boom := errors.New("boom")
	r := command.NewRegistry()
	r.Register("explode", "", func(*command.Env, string) (command.Reply, error) {
		return command.Reply{}, boom
	})
	d := command.NewDispatcher(command.NewEnv(book.New()), command.WithRegistry(r))

	var out bytes.Buffer
	sh := &PlainShell{in: strings.NewReader("explode\nexplode\n"), out: &out, prompt: "> "}
	err := sh.Run(context.Background(), d)

	var ue *UnexpectedError
	if !errors.As(err, &ue) {
		t.Fatalf("Run() error = %v, want *UnexpectedError", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("error should wrap the handler error, got %v", err)
	}
	if ue.Input != "explode" {
		t.Errorf("Input = %q, want %q", ue.Input, "explode")
	}
}
