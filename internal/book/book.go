package book

import (
	"fmt"
	"strings"
)

// Book is a single entry in the reading log.
type Book struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Date        string `json:"date"`
	Rating      int    `json:"rating"`
	Genre       string `json:"genre"`
	Description string `json:"description,omitempty"`
}

// SortOption selects the ordering rule of the displayed collection.
type SortOption string

const (
	SortByName   SortOption = "name"
	SortByRating SortOption = "rating"
	SortByDate   SortOption = "date"
)

// DefaultSort is the sort option a fresh session starts with.
const DefaultSort = SortByDate

// SortOptions lists the valid sort options in display order.
var SortOptions = []SortOption{SortByName, SortByRating, SortByDate}

// ParseSortOption converts user input into a SortOption.
// Matching is case-insensitive; unknown keys are an error.
func ParseSortOption(s string) (SortOption, error) {
	opt := SortOption(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range SortOptions {
		if opt == valid {
			return opt, nil
		}
	}
	return "", fmt.Errorf("invalid sort option %q: must be one of %v", s, SortOptions)
}

// Genres offered by the add form. Free-form genres are also accepted.
const (
	GenreNonFiction = "עיון"
	GenreProse      = "פרוזה"
)

// KnownGenres lists the genres suggested by the form.
var KnownGenres = []string{GenreNonFiction, GenreProse}
