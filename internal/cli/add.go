package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/shelflog/internal/book"
)

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	Name        string
	Genre       string
	Rating      int
	Description string
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}
	defaults := book.NewDraft()

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book",
		Long: `Add a book to the collection.

The name is required. Genre defaults to עיון (non-fiction) and the
rating defaults to 1; ratings run from 1 to 10. The book gets a new
id and today's date.

Examples:
  shelflog add --name "The Hobbit" --genre פרוזה --rating 9
  shelflog add --name "Sapiens" --rating 7 --description "Re-read"`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Name, "name", "n", "", "book name (required)")
	cmd.Flags().StringVarP(&opts.Genre, "genre", "g", defaults.Genre, "genre")
	cmd.Flags().IntVarP(&opts.Rating, "rating", "r", defaults.Rating, "rating from 1 to 10")
	cmd.Flags().StringVarP(&opts.Description, "description", "d", "", "free-form notes")

	return cmd
}

func runAdd(opts *AddOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	draft := book.Draft{
		Name:        opts.Name,
		Genre:       opts.Genre,
		Rating:      opts.Rating,
		Description: opts.Description,
	}
	if err := validateDraft(formatter, draft); err != nil {
		return err
	}

	s, err := openSession(commandContext(cmd), opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	b := draft.Book(opts.ids().Generate(), book.FormatDate(opts.now(), s.cfg.Display.DateLayout))
	s.formatter.VerboseLog("Adding book %s", b.ID)
	s.settle(s.store.Add(commandContext(cmd), b))

	if s.formatter.Format == "json" {
		return s.formatter.Success(b)
	}
	fmt.Fprintf(s.formatter.Writer, "✓ Added %q (%s)\n", b.Name, b.ID)
	return nil
}

// validateDraft runs the draft through the schema and reports field errors.
func validateDraft(formatter *OutputFormatter, draft book.Draft) error {
	validator, err := book.NewValidator()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to build validator", err)
	}

	err = validator.ValidateDraft(draft)
	if err == nil {
		return nil
	}

	var verrs book.ValidationErrors
	if errors.As(err, &verrs) {
		renderValidationErrors(formatter, verrs)
		return WrapExitError(ExitFailure, "invalid book", err)
	}
	return WrapExitError(ExitCommandError, "failed to validate book", err)
}
