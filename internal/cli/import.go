package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/shelflog/internal/book"
	"github.com/roach88/shelflog/internal/shelf"
)

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	*RootOptions
	Replace bool
}

// ImportResult is the import command's JSON payload.
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  []string `json:"skipped,omitempty"` // ids already in the collection
	Replaced bool     `json:"replaced"`
	Total    int      `json:"total"`
}

// RecordError is a validation failure for one imported record.
type RecordError struct {
	Index  int                   `json:"index"`
	ID     string                `json:"id,omitempty"`
	Errors book.ValidationErrors `json:"errors"`
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Read books from a JSON export",
		Long: `Read a JSON array of books (as written by "shelflog export") and add
them to the collection. Use "-" to read from stdin.

Every record is checked first; if any is invalid nothing is imported.
Records whose id is already in the collection are skipped. With
--replace the collection is replaced by the file's contents instead.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Replace, "replace", false, "replace the collection instead of adding to it")

	return cmd
}

func runImport(opts *ImportOptions, file string, cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	formatter := newFormatter(opts.RootOptions, cmd)

	data, err := readImport(cmd, file)
	if err != nil {
		formatter.Error(ErrCodeNotFound, fmt.Sprintf("reading %s: %v", file, err), nil)
		return WrapExitError(ExitCommandError, "failed to read import file", err)
	}

	books, err := shelf.Decode(data)
	if err != nil {
		formatter.Error(ErrCodeDecode, err.Error(), nil)
		return WrapExitError(ExitFailure, "invalid import file", err)
	}

	if recErrs, err := validateRecords(books); err != nil {
		return WrapExitError(ExitCommandError, "failed to validate books", err)
	} else if len(recErrs) > 0 {
		renderRecordErrors(formatter, recErrs)
		return NewExitError(ExitFailure, fmt.Sprintf("%d invalid record(s), nothing imported", len(recErrs)))
	}

	s, err := openSession(ctx, opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	result := ImportResult{Replaced: opts.Replace}
	if opts.Replace {
		s.settle(s.store.ReplaceAll(ctx, books))
		result.Imported = len(books)
	} else {
		var last *shelf.Pending
		for _, b := range books {
			if _, exists := s.store.Find(b.ID); exists {
				result.Skipped = append(result.Skipped, b.ID)
				continue
			}
			last = s.store.Add(ctx, b)
			result.Imported++
		}
		if last != nil {
			s.settle(last)
		}
	}
	result.Total = s.store.Len()

	if s.formatter.Format == "json" {
		return s.formatter.Success(result)
	}
	fmt.Fprintf(s.formatter.Writer, "✓ Imported %d book(s)", result.Imported)
	if len(result.Skipped) > 0 {
		fmt.Fprintf(s.formatter.Writer, ", skipped %d already present", len(result.Skipped))
	}
	fmt.Fprintf(s.formatter.Writer, " (%d total)\n", result.Total)
	return nil
}

func readImport(cmd *cobra.Command, file string) ([]byte, error) {
	if file == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(file)
}

// validateRecords checks every record against the book schema.
func validateRecords(books []book.Book) ([]RecordError, error) {
	validator, err := book.NewValidator()
	if err != nil {
		return nil, err
	}

	var recErrs []RecordError
	for i, b := range books {
		err := validator.ValidateBook(b)
		if err == nil {
			continue
		}
		var verrs book.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, err
		}
		recErrs = append(recErrs, RecordError{Index: i, ID: b.ID, Errors: verrs})
	}
	return recErrs, nil
}

func renderRecordErrors(f *OutputFormatter, recErrs []RecordError) {
	if f.Format == "json" {
		f.Error(ErrCodeValidation, "invalid records", recErrs)
		return
	}
	fmt.Fprintf(f.Writer, "Error [%s]: invalid records\n", ErrCodeValidation)
	for _, re := range recErrs {
		fmt.Fprintf(f.Writer, "  record %d", re.Index)
		if re.ID != "" {
			fmt.Fprintf(f.Writer, " (%s)", re.ID)
		}
		fmt.Fprintln(f.Writer, ":")
		for _, v := range re.Errors {
			fmt.Fprintf(f.Writer, "    %s: %s\n", v.Field, v.Message)
		}
	}
}
