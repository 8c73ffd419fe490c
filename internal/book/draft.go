package book

// Draft is the add/edit form input. It carries everything the user types;
// id and date are assigned when the draft becomes a Book.
type Draft struct {
	Name        string `json:"name"`
	Genre       string `json:"genre"`
	Rating      int    `json:"rating"`
	Description string `json:"description,omitempty"`
}

// NewDraft returns a draft with the form's defaults.
func NewDraft() Draft {
	return Draft{Genre: GenreNonFiction, Rating: 1}
}

// FromBook pre-fills a draft for editing b.
func FromBook(b Book) Draft {
	return Draft{
		Name:        b.Name,
		Genre:       b.Genre,
		Rating:      b.Rating,
		Description: b.Description,
	}
}

// Book builds a new record from the draft.
func (d Draft) Book(id, date string) Book {
	return Book{
		ID:          id,
		Name:        d.Name,
		Genre:       d.Genre,
		Rating:      d.Rating,
		Description: d.Description,
		Date:        date,
	}
}

// Apply returns existing with the draft's fields written over it.
// The id and creation date of existing are kept.
func (d Draft) Apply(existing Book) Book {
	return d.Book(existing.ID, existing.Date)
}
