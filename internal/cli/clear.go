package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ClearOptions holds flags for the clear command.
type ClearOptions struct {
	*RootOptions
	Yes bool
}

// NewClearCommand creates the clear command.
func NewClearCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ClearOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every book",
		Long: `Delete every book in the collection. This cannot be undone; consider
running "shelflog export" first. Asks for confirmation unless --yes is
given.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClear(opts, cmd)
		},
	}

	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "clear without asking")

	return cmd
}

func runClear(opts *ClearOptions, cmd *cobra.Command) error {
	ctx := commandContext(cmd)

	s, err := openSession(ctx, opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	count := s.store.Len()
	if !opts.Yes {
		question := fmt.Sprintf("Delete all %d book(s)? This cannot be undone.", count)
		ok, err := confirm(cmd.InOrStdin(), s.formatter.GetErrWriter(), question)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read confirmation", err)
		}
		if !ok {
			s.formatter.Error(ErrCodeDeclined, "clear cancelled", nil)
			return NewExitError(ExitFailure, "clear cancelled")
		}
	}

	s.settle(s.store.Clear(ctx))

	if s.formatter.Format == "json" {
		return s.formatter.Success(map[string]int{"deleted": count})
	}
	fmt.Fprintf(s.formatter.Writer, "✓ Deleted %d book(s)\n", count)
	return nil
}
