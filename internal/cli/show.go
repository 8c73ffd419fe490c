package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "show <id>",
		Short:         "Show one book",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runShow(opts *RootOptions, id string, cmd *cobra.Command) error {
	s, err := openSession(commandContext(cmd), opts, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	b, ok := s.store.Find(id)
	if !ok {
		s.formatter.Error(ErrCodeNotFound, fmt.Sprintf("no book with id %q", id), nil)
		return NewExitError(ExitCommandError, fmt.Sprintf("book not found: %s", id))
	}

	if s.formatter.Format == "json" {
		return s.formatter.Success(b)
	}
	return renderBook(s.formatter.Writer, b)
}
