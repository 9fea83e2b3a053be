package book

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smileynet/abook/internal/contact"
)

// newRecord builds a record with the given phones, failing the test on invalid input.
func newRecord(t *testing.T, name string, phones ...string) *contact.Record {
	t.Helper()
	r := contact.NewRecord(name)
	for _, p := range phones {
		require.NoError(t, r.AddPhone(p))
	}
	return r
}

// names extracts record names for comparison.
func names(records []*contact.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name()
	}
	return out
}

// fill adds n records named c0, c1, ... to b.
func fill(t *testing.T, b *AddressBook, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		b.AddRecord(newRecord(t, fmt.Sprintf("c%d", i), fmt.Sprintf("%010d", i)))
	}
}

func TestAddRecord(t *testing.T) {
	b := New()
	b.AddRecord(newRecord(t, "john", "1234567890"))
	b.AddRecord(newRecord(t, "jane", "1112223333"))

	assert.Equal(t, 2, b.Len())
	assert.True(t, b.Has("john"))
	assert.False(t, b.Has("jim"))

	r, ok := b.Get("jane")
	require.True(t, ok)
	assert.Equal(t, []string{"1112223333"}, r.Phones())
}

func TestAddRecordOverwriteKeepsPosition(t *testing.T) {
	b := New()
	b.AddRecord(newRecord(t, "john", "1234567890"))
	b.AddRecord(newRecord(t, "jane", "1112223333"))
	b.AddRecord(newRecord(t, "john", "4445556666"))

	if diff := cmp.Diff([]string{"john", "jane"}, names(b.Records())); diff != "" {
		t.Errorf("Records() mismatch (-want +got):\n%s", diff)
	}
	r, _ := b.Get("john")
	assert.Equal(t, []string{"4445556666"}, r.Phones())
}

func TestSearch(t *testing.T) {
	b := New()
	b.AddRecord(newRecord(t, "john", "1234567890"))
	b.AddRecord(newRecord(t, "jane", "1112223333", "4445556666"))
	b.AddRecord(newRecord(t, "jim", "4445556666"))

	t.Run("by name", func(t *testing.T) {
		r, err := b.Search("jane")
		require.NoError(t, err)
		assert.Equal(t, "jane", r.Name())
	})

	t.Run("by phone returns first in insertion order", func(t *testing.T) {
		r, err := b.Search("4445556666")
		require.NoError(t, err)
		assert.Equal(t, "jane", r.Name())
	})

	t.Run("name wins over phone", func(t *testing.T) {
		b.AddRecord(newRecord(t, "1234567890", "9998887777"))
		r, err := b.Search("1234567890")
		require.NoError(t, err)
		assert.Equal(t, "1234567890", r.Name())
	})

	t.Run("not found", func(t *testing.T) {
		_, err := b.Search("nobody")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("exact match only", func(t *testing.T) {
		_, err := b.Search("Jane")
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = b.Search("123456789")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestPagesSizes(t *testing.T) {
	tests := []struct {
		records int
		size    int
		want    []int
	}{
		{records: 0, size: 5, want: nil},
		{records: 1, size: 5, want: []int{1}},
		{records: 5, size: 5, want: []int{5}},
		{records: 6, size: 5, want: []int{5, 1}},
		{records: 12, size: 5, want: []int{5, 5, 2}},
		{records: 3, size: 1, want: []int{1, 1, 1}},
		{records: 7, size: 0, want: []int{5, 2}},
		{records: 7, size: -3, want: []int{5, 2}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d records size %d", tt.records, tt.size), func(t *testing.T) {
			b := New()
			fill(t, b, tt.records)

			p := b.Pages(tt.size)
			var got []int
			for {
				page, ok := p.Next()
				if !ok {
					break
				}
				got = append(got, len(page))
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("page sizes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPagesPreserveOrder(t *testing.T) {
	b := New()
	fill(t, b, 7)

	var got []string
	p := b.Pages(3)
	for page, ok := p.Next(); ok; page, ok = p.Next() {
		got = append(got, names(page)...)
	}
	want := []string{"c0", "c1", "c2", "c3", "c4", "c5", "c6"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestPagerIsNotRestartable(t *testing.T) {
	b := New()
	fill(t, b, 2)

	p := b.Pages(5)
	page, ok := p.Next()
	require.True(t, ok)
	assert.Len(t, page, 2)

	page, ok = p.Next()
	assert.False(t, ok)
	assert.Nil(t, page)
	_, ok = p.Next()
	assert.False(t, ok, "exhausted pager stays exhausted")

	fresh := b.Pages(5)
	_, ok = fresh.Next()
	assert.True(t, ok, "a new pager starts over")
}

func TestPagerSnapshot(t *testing.T) {
	b := New()
	fill(t, b, 2)

	p := b.Pages(5)
	b.AddRecord(newRecord(t, "late", "5555555555"))

	page, ok := p.Next()
	require.True(t, ok)
	assert.Equal(t, []string{"c0", "c1"}, names(page))
}
