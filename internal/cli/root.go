package cli

import (
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/shelflog/internal/book"
	"github.com/roach88/shelflog/internal/kv"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	Database   string // overrides storage.path
	Backend    string // overrides storage.backend
	Locale     string // overrides display.locale

	// IDs allows overriding the id generator (for testing).
	// If nil, defaults to book.UUIDv7Generator.
	IDs book.IDGenerator

	// Now allows overriding the wall clock (for testing).
	// If nil, defaults to time.Now.
	Now func() time.Time
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the shelflog CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

// newRootCommand builds the command tree around opts. Tests use it to inject
// the id generator and clock.
func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shelflog",
		Short: "shelflog - a personal reading log",
		Long: `A local log of the books you have read.

Each book has a name, a genre, a rating from 1 to 10, an optional
description and the date it was added. The collection is kept in a
local SQLite database by default.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if opts.Backend != "" && !slices.Contains(kv.Backends, opts.Backend) {
				return fmt.Errorf("invalid backend %q: must be one of %v", opts.Backend, kv.Backends)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to a config file")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to the database file (or directory for the file backend)")
	cmd.PersistentFlags().StringVar(&opts.Backend, "backend", "", "storage backend (sqlite|file|memory)")
	cmd.PersistentFlags().StringVar(&opts.Locale, "locale", "", "locale for sorting names (BCP 47, e.g. he, en)")

	// Add subcommands
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewEditCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewClearCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

func (o *RootOptions) ids() book.IDGenerator {
	if o.IDs == nil {
		return book.UUIDv7Generator{}
	}
	return o.IDs
}

func (o *RootOptions) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}
