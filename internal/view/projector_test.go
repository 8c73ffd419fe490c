package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"github.com/roach88/shelflog/internal/book"
)

func names(books []book.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.Name
	}
	return out
}

func ratings(books []book.Book) []int {
	out := make([]int, len(books))
	for i, b := range books {
		out[i] = b.Rating
	}
	return out
}

func sample() []book.Book {
	return []book.Book{
		{ID: "1", Name: "First Book", Genre: book.GenreNonFiction, Rating: 5, Date: "25/02/2024"},
		{ID: "2", Name: "Second Book", Genre: book.GenreProse, Rating: 8, Date: "25/02/2024"},
		{ID: "3", Name: "Notes", Genre: book.GenreProse, Rating: 2, Date: "1/1/2023"},
	}
}

func TestFilter_EmptyQueryKeepsEverythingInOrder(t *testing.T) {
	p := New(language.English)
	books := sample()

	assert.Equal(t, books, p.Filter(books, ""))
}

func TestFilter_CaseInsensitive(t *testing.T) {
	p := New(language.English)

	assert.Equal(t, []string{"First Book", "Second Book"}, names(p.Filter(sample(), "book")))
	assert.Equal(t, []string{"First Book"}, names(p.Filter(sample(), "FIRST")))
	assert.Equal(t, []string{"Notes"}, names(p.Filter(sample(), "ote")))
	assert.Empty(t, p.Filter(sample(), "missing"))
}

func TestFilter_HebrewAndNormalization(t *testing.T) {
	p := New(language.Hebrew)
	books := []book.Book{
		{ID: "1", Name: "הארי פוטר"},
		{ID: "2", Name: "Café Stories"},
	}

	assert.Equal(t, []string{"הארי פוטר"}, names(p.Filter(books, "פוטר")))
	// "e" + combining acute accent matches the precomposed "é".
	assert.Equal(t, []string{"Café Stories"}, names(p.Filter(books, "cafe\u0301")))
}

func TestSort_RatingDescending(t *testing.T) {
	p := New(language.English)
	books := []book.Book{
		{ID: "a", Rating: 5},
		{ID: "b", Rating: 8},
		{ID: "c", Rating: 2},
	}

	assert.Equal(t, []int{8, 5, 2}, ratings(p.Sort(books, book.SortByRating)))
}

func TestSort_NameAscending(t *testing.T) {
	p := New(language.English)
	books := []book.Book{
		{ID: "1", Name: "B Book"},
		{ID: "2", Name: "A Book"},
	}

	assert.Equal(t, []string{"A Book", "B Book"}, names(p.Sort(books, book.SortByName)))
}

func TestSort_NameUsesLocaleCollation(t *testing.T) {
	p := New(language.English)
	books := []book.Book{
		{ID: "1", Name: "banana"},
		{ID: "2", Name: "Cherry"},
		{ID: "3", Name: "apple"},
	}

	// Byte order would put "Cherry" first.
	assert.Equal(t, []string{"apple", "banana", "Cherry"}, names(p.Sort(books, book.SortByName)))

	he := New(language.Hebrew)
	hebrew := []book.Book{
		{ID: "1", Name: "גשר"},
		{ID: "2", Name: "אבן"},
		{ID: "3", Name: "בית"},
	}
	assert.Equal(t, []string{"אבן", "בית", "גשר"}, names(he.Sort(hebrew, book.SortByName)))
}

func TestSort_DateMostRecentFirst(t *testing.T) {
	p := New(language.English)
	books := []book.Book{
		{ID: "1", Name: "older", Date: "24/02/2024"},
		{ID: "2", Name: "newer", Date: "25/02/2024"},
	}

	sorted := p.Sort(books, book.SortByDate)
	assert.Equal(t, "25/02/2024", sorted[0].Date)
}

func TestSort_DateMixedLayouts(t *testing.T) {
	p := New(language.English)
	books := []book.Book{
		{ID: "1", Date: "2024-02-25"},
		{ID: "2", Date: "26.2.2024"},
		{ID: "3", Date: "01/03/2024"},
	}

	sorted := p.Sort(books, book.SortByDate)
	assert.Equal(t, []string{"3", "2", "1"}, []string{sorted[0].ID, sorted[1].ID, sorted[2].ID})
}

func TestSort_UnparsableDatesSinkAndKeepOrder(t *testing.T) {
	p := New(language.English)
	books := []book.Book{
		{ID: "bad-1", Date: "someday"},
		{ID: "good", Date: "2024-02-25"},
		{ID: "bad-2", Date: ""},
	}

	sorted := p.Sort(books, book.SortByDate)
	assert.Equal(t, []string{"good", "bad-1", "bad-2"}, []string{sorted[0].ID, sorted[1].ID, sorted[2].ID})
}

func TestSort_StableOnTies(t *testing.T) {
	p := New(language.English)
	books := []book.Book{
		{ID: "1", Rating: 7},
		{ID: "2", Rating: 9},
		{ID: "3", Rating: 7},
		{ID: "4", Rating: 7},
	}

	sorted := p.Sort(books, book.SortByRating)
	assert.Equal(t, []string{"2", "1", "3", "4"}, []string{sorted[0].ID, sorted[1].ID, sorted[2].ID, sorted[3].ID})
}

func TestSort_UnknownKeyKeepsOrder(t *testing.T) {
	p := New(language.English)
	books := sample()

	assert.Equal(t, books, p.Sort(books, book.SortOption("author")))
}

func TestProject_DoesNotModifyInput(t *testing.T) {
	p := New(language.English)
	books := sample()
	before := append([]book.Book(nil), books...)

	_ = p.Project(books, "book", book.SortByRating)
	_ = p.Project(books, "", book.SortByName)

	assert.Equal(t, before, books)
}

func TestProject_FilterThenSort(t *testing.T) {
	p := New(language.English)

	got := p.Project(sample(), "book", book.SortByRating)
	assert.Equal(t, []string{"Second Book", "First Book"}, names(got))
}

func TestDefaultLocale(t *testing.T) {
	assert.Equal(t, language.Hebrew, New(DefaultLocale).Locale())
}
