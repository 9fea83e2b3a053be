// Package book implements the in-memory address book.
package book

import (
	"errors"
	"fmt"

	"github.com/smileynet/abook/internal/contact"
)

// DefaultPageSize is the page size used when a non-positive size is requested.
const DefaultPageSize = 5

// ErrNotFound is returned when no record matches a search.
var ErrNotFound = errors.New("book: contact not found")

// AddressBook maps contact names to records and remembers insertion order.
// It is not safe for concurrent use.
type AddressBook struct {
	records map[string]*contact.Record
	order   []string
}

// New creates an empty AddressBook.
func New() *AddressBook {
	return &AddressBook{records: make(map[string]*contact.Record)}
}

// AddRecord inserts r under its name. An existing record with the same name
// is replaced and keeps its position.
func (b *AddressBook) AddRecord(r *contact.Record) {
	name := r.Name()
	if _, ok := b.records[name]; !ok {
		b.order = append(b.order, name)
	}
	b.records[name] = r
}

// Get returns the record stored under name.
func (b *AddressBook) Get(name string) (*contact.Record, bool) {
	r, ok := b.records[name]
	return r, ok
}

// Has reports whether a record is stored under name.
func (b *AddressBook) Has(name string) bool {
	_, ok := b.records[name]
	return ok
}

// Len returns the number of records.
func (b *AddressBook) Len() int { return len(b.order) }

// Records returns all records in insertion order.
func (b *AddressBook) Records() []*contact.Record {
	out := make([]*contact.Record, len(b.order))
	for i, name := range b.order {
		out[i] = b.records[name]
	}
	return out
}

// Search returns the record named value, or else the first record in
// insertion order that has value as one of its phones.
func (b *AddressBook) Search(value string) (*contact.Record, error) {
	if r, ok := b.records[value]; ok {
		return r, nil
	}
	for _, name := range b.order {
		r := b.records[name]
		if r.HasPhone(value) {
			return r, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, value)
}

// Pages returns a pager over the current records, size records per page.
func (b *AddressBook) Pages(size int) *Pager {
	if size <= 0 {
		size = DefaultPageSize
	}
	return &Pager{records: b.Records(), size: size}
}
