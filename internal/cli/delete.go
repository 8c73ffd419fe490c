package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// DeleteOptions holds flags for the delete command.
type DeleteOptions struct {
	*RootOptions
	Yes bool
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DeleteOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a book",
		Long: `Delete a book from the collection. Asks for confirmation unless --yes
is given.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "delete without asking")

	return cmd
}

func runDelete(opts *DeleteOptions, id string, cmd *cobra.Command) error {
	ctx := commandContext(cmd)

	s, err := openSession(ctx, opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	b, ok := s.store.Find(id)
	if !ok {
		s.formatter.Error(ErrCodeNotFound, fmt.Sprintf("no book with id %q", id), nil)
		return NewExitError(ExitCommandError, fmt.Sprintf("book not found: %s", id))
	}

	if !opts.Yes {
		ok, err := confirm(cmd.InOrStdin(), s.formatter.GetErrWriter(), fmt.Sprintf("Delete %q?", b.Name))
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read confirmation", err)
		}
		if !ok {
			s.formatter.Error(ErrCodeDeclined, "delete cancelled", nil)
			return NewExitError(ExitFailure, "delete cancelled")
		}
	}

	if err := s.settle(s.store.Delete(ctx, id)); err == nil {
		// Re-read so the reported count reflects what was stored.
		_ = s.store.Load(ctx)
	}

	if s.formatter.Format == "json" {
		return s.formatter.Success(map[string]any{"deleted": id, "remaining": s.store.Len()})
	}
	fmt.Fprintf(s.formatter.Writer, "✓ Deleted %q (%d book(s) left)\n", b.Name, s.store.Len())
	return nil
}
