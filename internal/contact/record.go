package contact

import (
	"strings"
	"time"
)

// Record is one address book entry: a name, its phones, and an optional birthday.
type Record struct {
	name     Name
	phones   []Phone
	birthday *Birthday
}

// NewRecord creates a record with no phones and no birthday.
func NewRecord(name string) *Record {
	return &Record{name: NewName(name)}
}

// Name returns the record's name.
func (r *Record) Name() string { return r.name.Value() }

// Phones returns the phone numbers in the order they were added.
func (r *Record) Phones() []string {
	out := make([]string, len(r.phones))
	for i, p := range r.phones {
		out[i] = p.Value()
	}
	return out
}

// Birthday returns the birthday and whether one is set.
func (r *Record) Birthday() (string, bool) {
	if r.birthday == nil {
		return "", false
	}
	return r.birthday.Value(), true
}

// HasPhone reports whether value is one of the record's phones.
func (r *Record) HasPhone(value string) bool {
	return r.indexOf(value) >= 0
}

// AddPhone validates value and appends it. Duplicates are kept.
func (r *Record) AddPhone(value string) error {
	p, err := NewPhone(value)
	if err != nil {
		return err
	}
	r.phones = append(r.phones, p)
	return nil
}

// RemovePhone removes the first phone equal to value and reports whether one was removed.
func (r *Record) RemovePhone(value string) bool {
	i := r.indexOf(value)
	if i < 0 {
		return false
	}
	r.phones = append(r.phones[:i], r.phones[i+1:]...)
	return true
}

// ChangePhones toggles each value in order: a present phone is removed, an
// absent one is added. If any added value fails validation the record is
// left as it was.
func (r *Record) ChangePhones(values []string) error {
	work := &Record{name: r.name, phones: append([]Phone(nil), r.phones...)}
	for _, v := range values {
		if work.RemovePhone(v) {
			continue
		}
		if err := work.AddPhone(v); err != nil {
			return err
		}
	}
	r.phones = work.phones
	return nil
}

// SetBirthday validates value against today and sets or overwrites the birthday.
func (r *Record) SetBirthday(value string, today time.Time) error {
	b, err := NewBirthday(value, today)
	if err != nil {
		return err
	}
	r.birthday = &b
	return nil
}

// DaysToBirthday returns the number of days from today until the next
// occurrence of the birthday, 0 when it is today. A February 29 birthday
// is celebrated on March 1 in non-leap years.
func (r *Record) DaysToBirthday(today time.Time) (int, error) {
	if r.birthday == nil {
		return 0, ErrNoBirthday
	}
	now := dateOf(today)
	bd := r.birthday.Date()
	next := time.Date(now.Year(), bd.Month(), bd.Day(), 0, 0, 0, 0, time.UTC)
	if next.Before(now) {
		next = time.Date(now.Year()+1, bd.Month(), bd.Day(), 0, 0, 0, 0, time.UTC)
	}
	return int(next.Sub(now).Hours() / 24), nil
}

// Info renders the record as "<name> - <phone>, <phone> Birthday: <date>".
func (r *Record) Info() string {
	var b strings.Builder
	b.WriteString(r.Name())
	b.WriteString(" - ")
	b.WriteString(strings.Join(r.Phones(), ", "))
	if r.birthday != nil {
		b.WriteString(" Birthday: ")
		b.WriteString(r.birthday.Value())
	}
	return strings.TrimRight(b.String(), " ")
}

// String implements fmt.Stringer.
func (r *Record) String() string { return r.Info() }

func (r *Record) indexOf(value string) int {
	for i, p := range r.phones {
		if p.Value() == value {
			return i
		}
	}
	return -1
}
