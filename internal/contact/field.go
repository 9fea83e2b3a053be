// Package contact holds the validated values that make up an address book entry.
package contact

import (
	"errors"
	"fmt"
	"time"
)

// PhoneLength is the exact number of digits a phone number must have.
const PhoneLength = 10

// DateLayout is the accepted birthday format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

var (
	// ErrInvalidPhone is returned when a phone number is not exactly ten digits.
	ErrInvalidPhone = errors.New("contact: invalid phone")
	// ErrInvalidBirthday is returned when a birthday is not a YYYY-MM-DD date.
	ErrInvalidBirthday = errors.New("contact: invalid birthday")
	// ErrFutureBirthday is returned when a birthday lies after today.
	ErrFutureBirthday = errors.New("contact: birthday in the future")
	// ErrNoBirthday is returned when a record has no birthday set.
	ErrNoBirthday = errors.New("contact: no birthday set")
)

// Field holds a single string value.
type Field struct {
	value string
}

// Value returns the stored value.
func (f Field) Value() string { return f.value }

// String returns the stored value.
func (f Field) String() string { return f.value }

// Name is a free-form contact name.
type Name struct {
	Field
}

// NewName wraps value without validation.
func NewName(value string) Name {
	return Name{Field{value: value}}
}

// Phone is a ten-digit phone number.
type Phone struct {
	Field
}

// NewPhone validates value and returns it as a Phone.
func NewPhone(value string) (Phone, error) {
	if len(value) != PhoneLength {
		return Phone{}, fmt.Errorf("%w: %q must contain %d digits", ErrInvalidPhone, value, PhoneLength)
	}
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return Phone{}, fmt.Errorf("%w: %q contains non-digit %q", ErrInvalidPhone, value, value[i])
		}
	}
	return Phone{Field{value: value}}, nil
}

// Birthday is a date of birth that is not in the future.
type Birthday struct {
	Field
	date time.Time
}

// NewBirthday parses value as YYYY-MM-DD and rejects dates after today.
// Only the calendar date of today is compared.
func NewBirthday(value string, today time.Time) (Birthday, error) {
	date, err := time.Parse(DateLayout, value)
	if err != nil {
		return Birthday{}, fmt.Errorf("%w: %q: expected YYYY-MM-DD", ErrInvalidBirthday, value)
	}
	if date.After(dateOf(today)) {
		return Birthday{}, fmt.Errorf("%w: %s", ErrFutureBirthday, value)
	}
	return Birthday{Field: Field{value: value}, date: date}, nil
}

// Date returns the parsed birthday at midnight UTC.
func (b Birthday) Date() time.Time { return b.date }

// dateOf truncates t to its calendar date at midnight UTC.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
