package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/shelflog/internal/shelf"
)

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write the collection as JSON",
		Long: `Write the whole collection as a JSON array, in insertion order, to
file or to stdout. The output can be read back with "shelflog import".`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var file string
			if len(args) == 1 {
				file = args[0]
			}
			return runExport(rootOpts, file, cmd)
		},
	}
	return cmd
}

func runExport(opts *RootOptions, file string, cmd *cobra.Command) error {
	s, err := openSession(commandContext(cmd), opts, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	data, err := shelf.Encode(s.store.Books())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to encode books", err)
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "", "  "); err != nil {
		return WrapExitError(ExitCommandError, "failed to encode books", err)
	}
	pretty.WriteByte('\n')

	if file == "" || file == "-" {
		_, err := s.formatter.Writer.Write(pretty.Bytes())
		return err
	}

	if err := os.WriteFile(file, pretty.Bytes(), 0644); err != nil {
		s.formatter.Error(ErrCodeWriteFailed, fmt.Sprintf("writing %s: %v", file, err), nil)
		return WrapExitError(ExitCommandError, "failed to write export", err)
	}

	if s.formatter.Format == "json" {
		return s.formatter.Success(map[string]any{"file": file, "count": s.store.Len()})
	}
	fmt.Fprintf(s.formatter.Writer, "✓ Exported %d book(s) to %s\n", s.store.Len(), file)
	return nil
}
