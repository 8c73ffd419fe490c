package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/shelflog/internal/book"
)

// EditOptions holds flags for the edit command.
type EditOptions struct {
	*RootOptions
	Name        string
	Genre       string
	Rating      int
	Description string
}

// NewEditCommand creates the edit command.
func NewEditCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EditOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a book",
		Long: `Change fields of an existing book. Only the flags given are changed;
the id and date are kept.

Examples:
  shelflog edit 0190f5a2-... --rating 10
  shelflog edit 0190f5a2-... --description ""`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Name, "name", "n", "", "book name")
	cmd.Flags().StringVarP(&opts.Genre, "genre", "g", "", "genre")
	cmd.Flags().IntVarP(&opts.Rating, "rating", "r", 0, "rating from 1 to 10")
	cmd.Flags().StringVarP(&opts.Description, "description", "d", "", "free-form notes")

	return cmd
}

func runEdit(opts *EditOptions, id string, cmd *cobra.Command) error {
	ctx := commandContext(cmd)

	s, err := openSession(ctx, opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	existing, ok := s.store.Find(id)
	if !ok {
		s.formatter.Error(ErrCodeNotFound, fmt.Sprintf("no book with id %q", id), nil)
		return NewExitError(ExitCommandError, fmt.Sprintf("book not found: %s", id))
	}

	draft := book.FromBook(existing)
	flags := cmd.Flags()
	if flags.Changed("name") {
		draft.Name = opts.Name
	}
	if flags.Changed("genre") {
		draft.Genre = opts.Genre
	}
	if flags.Changed("rating") {
		draft.Rating = opts.Rating
	}
	if flags.Changed("description") {
		draft.Description = opts.Description
	}

	if err := validateDraft(s.formatter, draft); err != nil {
		return err
	}

	updated := draft.Apply(existing)
	s.settle(s.store.Update(ctx, updated))

	if s.formatter.Format == "json" {
		return s.formatter.Success(updated)
	}
	fmt.Fprintf(s.formatter.Writer, "✓ Updated %q (%s)\n", updated.Name, updated.ID)
	return nil
}
