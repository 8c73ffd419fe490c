package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/roach88/shelflog/internal/book"
)

// ListResult is the list command's JSON payload.
type ListResult struct {
	Books  []book.Book `json:"books"`
	Shown  int         `json:"shown"`
	Total  int         `json:"total"`
	Search string      `json:"search,omitempty"`
	Sort   string      `json:"sort"`
}

func renderList(w io.Writer, result ListResult) error {
	if result.Total == 0 {
		_, err := fmt.Fprintln(w, "No books yet. Add one with: shelflog add --name <name>")
		return err
	}
	if result.Shown == 0 {
		_, err := fmt.Fprintf(w, "No books match %q.\n", result.Search)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tGENRE\tRATING\tDATE\tID")
	for _, b := range result.Books {
		fmt.Fprintf(tw, "%s\t%s\t%d/10\t%s\t%s\n", b.Name, b.Genre, b.Rating, b.Date, b.ID)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%d of %d book(s), sorted by %s\n", result.Shown, result.Total, result.Sort)
	return err
}

func renderBook(w io.Writer, b book.Book) error {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	fmt.Fprintf(tw, "Name:\t%s\n", b.Name)
	fmt.Fprintf(tw, "Genre:\t%s\n", b.Genre)
	fmt.Fprintf(tw, "Rating:\t%d/10\n", b.Rating)
	fmt.Fprintf(tw, "Date:\t%s\n", b.Date)
	fmt.Fprintf(tw, "ID:\t%s\n", b.ID)
	if b.Description != "" {
		fmt.Fprintf(tw, "Description:\t%s\n", b.Description)
	}
	return tw.Flush()
}

func renderValidationErrors(f *OutputFormatter, verrs book.ValidationErrors) error {
	if f.Format == "json" {
		return f.Error(ErrCodeValidation, "invalid book", verrs)
	}
	fmt.Fprintf(f.Writer, "Error [%s]: invalid book\n", ErrCodeValidation)
	for _, v := range verrs {
		fmt.Fprintf(f.Writer, "  %s: %s\n", v.Field, v.Message)
	}
	return nil
}
