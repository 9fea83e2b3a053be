package book

import "github.com/smileynet/abook/internal/contact"

// Pager walks a snapshot of the address book one page at a time.
// Once exhausted it stays exhausted; call AddressBook.Pages for a fresh one.
type Pager struct {
	records []*contact.Record
	size    int
	pos     int
}

// Next returns the next page and true, or nil and false when no records remain.
func (p *Pager) Next() ([]*contact.Record, bool) {
	if p.pos >= len(p.records) {
		return nil, false
	}
	end := min(p.pos+p.size, len(p.records))
	page := p.records[p.pos:end:end]
	p.pos = end
	return page, true
}
