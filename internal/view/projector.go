package view

import (
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/shelflog/internal/book"
)

// DefaultLocale is used when no locale is configured.
var DefaultLocale = language.Hebrew

// Projector filters and sorts book collections.
//
// Thread-safety: a Projector holds a collator with internal buffers and is
// not safe for concurrent use.
type Projector struct {
	locale   language.Tag
	collator *collate.Collator
}

// New creates a Projector that orders names by the collation of locale.
func New(locale language.Tag) *Projector {
	return &Projector{
		locale:   locale,
		collator: collate.New(locale),
	}
}

// Locale returns the collation locale.
func (p *Projector) Locale() language.Tag {
	return p.locale
}

// Project filters books by query and sorts the result by key.
func (p *Projector) Project(books []book.Book, query string, key book.SortOption) []book.Book {
	return p.Sort(p.Filter(books, query), key)
}

// Filter returns the books whose name contains query, ignoring case.
// An empty query keeps every book, in order.
func (p *Projector) Filter(books []book.Book, query string) []book.Book {
	if query == "" {
		return slices.Clone(books)
	}

	fold := cases.Fold()
	needle := fold.String(norm.NFC.String(query))

	out := make([]book.Book, 0, len(books))
	for _, b := range books {
		if strings.Contains(fold.String(norm.NFC.String(b.Name)), needle) {
			out = append(out, b)
		}
	}
	return out
}

// Sort returns a copy of books ordered by key. The sort is stable: books
// that compare equal keep their relative order. Unknown keys leave the
// order unchanged.
//
//   - name: ascending by locale collation
//   - rating: descending
//   - date: descending by calendar date; unparsable dates sort last
func (p *Projector) Sort(books []book.Book, key book.SortOption) []book.Book {
	out := slices.Clone(books)

	switch key {
	case book.SortByName:
		slices.SortStableFunc(out, func(a, b book.Book) int {
			return p.collator.CompareString(a.Name, b.Name)
		})
	case book.SortByRating:
		slices.SortStableFunc(out, func(a, b book.Book) int {
			return b.Rating - a.Rating
		})
	case book.SortByDate:
		sortByDate(out)
	}
	return out
}

// sortByDate parses every date once, then orders most recent first.
func sortByDate(books []book.Book) {
	type dated struct {
		b book.Book
		t time.Time
	}

	keyed := make([]dated, len(books))
	for i, b := range books {
		// Unparsable dates keep the zero time and sink to the end.
		t, _ := book.ParseDate(b.Date)
		keyed[i] = dated{b: b, t: t}
	}

	slices.SortStableFunc(keyed, func(x, y dated) int {
		return y.t.Compare(x.t)
	})

	for i, d := range keyed {
		books[i] = d.b
	}
}
