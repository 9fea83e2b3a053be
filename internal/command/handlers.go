package command

import (
	"fmt"
	"strings"

	"github.com/smileynet/abook/internal/contact"
)

// DefaultRegistry returns the address book command table. Order matters for
// prefix matching: the first registered keyword that matches wins.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("hello", "greet", greeting)
	r.Register("add", "<name> <phone>... create a contact", addContact)
	r.Register("change", "<name> <phone>... toggle phone numbers", changePhone)
	r.Register("phone", "<name-or-phone> show a contact", showPhone)
	r.Register("show all", "list all contacts", showAll)
	r.Register("birthday", "<name> <YYYY-MM-DD> set a birthday", addBirthday)
	r.Register("days to birthday", "<name> days until the next birthday", daysToBirthday)
	r.Register("help", "list commands", func(*Env, string) (Reply, error) {
		return Reply{Text: r.Help() + "\n" + Terminator + "  quit"}, nil
	})
	r.Register("good bye", "quit", goodBye)
	r.Register("exit", "quit", goodBye)
	r.Register("close", "quit", goodBye)
	return r
}

func greeting(*Env, string) (Reply, error) {
	return Reply{Text: "How can I help you?"}, nil
}

func goodBye(*Env, string) (Reply, error) {
	return Reply{Text: "Good bye!", Exit: true}, nil
}

func addContact(env *Env, args string) (Reply, error) {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		return Reply{}, fmt.Errorf("%w: add needs a name and at least one phone", ErrUsage)
	}
	name, phones := fields[0], fields[1:]
	if env.Book.Has(name) {
		return Reply{}, fmt.Errorf("%w: %q", ErrDuplicate, name)
	}
	r := contact.NewRecord(name)
	for _, p := range phones {
		if err := r.AddPhone(p); err != nil {
			return Reply{}, err
		}
	}
	env.Book.AddRecord(r)
	return Reply{Text: fmt.Sprintf("The user with name %s and phone %s was added!", name, strings.Join(phones, ", "))}, nil
}

func changePhone(env *Env, args string) (Reply, error) {
	fields := strings.Fields(args)
	if len(fields) < 1 {
		return Reply{}, fmt.Errorf("%w: change needs a name", ErrUsage)
	}
	name := fields[0]
	r, ok := env.Book.Get(name)
	if !ok {
		return Reply{}, fmt.Errorf("%w: %q", ErrNoContact, name)
	}
	if err := r.ChangePhones(fields[1:]); err != nil {
		return Reply{}, err
	}
	return Reply{Text: fmt.Sprintf("The phone number for name %s was changed!", name)}, nil
}

func showPhone(env *Env, args string) (Reply, error) {
	value := strings.TrimSpace(args)
	if value == "" {
		return Reply{}, fmt.Errorf("%w: phone needs a name or phone number", ErrUsage)
	}
	r, err := env.Book.Search(value)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: r.Info()}, nil
}

func showAll(env *Env, _ string) (Reply, error) {
	if env.Book.Len() == 0 {
		return Reply{Text: "The address book is empty."}, nil
	}
	var b strings.Builder
	pages := env.Book.Pages(env.PageSize)
	for n := 1; ; n++ {
		page, ok := pages.Next()
		if !ok {
			break
		}
		fmt.Fprintf(&b, "Page #%d\n", n)
		for _, r := range page {
			b.WriteString(r.Info())
			b.WriteByte('\n')
		}
	}
	return Reply{Text: strings.TrimSuffix(b.String(), "\n")}, nil
}

func addBirthday(env *Env, args string) (Reply, error) {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return Reply{}, fmt.Errorf("%w: birthday needs a name and a date", ErrUsage)
	}
	name, date := fields[0], fields[1]
	r, ok := env.Book.Get(name)
	if !ok {
		return Reply{}, fmt.Errorf("%w: %q", ErrNoContact, name)
	}
	if err := r.SetBirthday(date, env.today()); err != nil {
		return Reply{}, err
	}
	return Reply{Text: fmt.Sprintf("The birthday %s added to %s.", date, name)}, nil
}

func daysToBirthday(env *Env, args string) (Reply, error) {
	name := strings.TrimSpace(args)
	if name == "" {
		return Reply{}, fmt.Errorf("%w: days to birthday needs a name", ErrUsage)
	}
	r, ok := env.Book.Get(name)
	if !ok {
		return Reply{}, fmt.Errorf("%w: %q", ErrNoContact, name)
	}
	days, err := r.DaysToBirthday(env.today())
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: fmt.Sprintf("%s's birthday will be in %d day(s).", name, days)}, nil
}
