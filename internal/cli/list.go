package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/shelflog/internal/book"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Search string
	Sort   string
	Watch  bool
}

// slotWatcher is implemented by storage backends that can report external
// changes to a slot.
type slotWatcher interface {
	Watch(ctx context.Context, key string) (<-chan struct{}, error)
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List books",
		Long: `List the books in the collection, optionally filtered and sorted.

The search matches book names case-insensitively. Sort keys are
name (locale collation), rating (highest first) and date (newest first).

With --watch (file backend only) the list is redrawn whenever the
stored collection changes.

Examples:
  shelflog list
  shelflog list --search potter --sort rating
  shelflog list --backend file --db ./shelf --watch`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Search, "search", "s", "", "only show books whose name contains this text")
	cmd.Flags().StringVar(&opts.Sort, "sort", "", "sort key (name|rating|date); defaults to display.sort")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "redraw when the collection changes")

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
	ctx := commandContext(cmd)

	s, err := openSession(ctx, opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if opts.Sort != "" {
		key, err := book.ParseSortOption(opts.Sort)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid sort", err)
		}
		s.store.SetSortOption(key)
	}
	s.store.SetSearchQuery(opts.Search)

	if err := outputList(s); err != nil {
		return err
	}
	if !opts.Watch {
		return nil
	}

	w, ok := s.storage.(slotWatcher)
	if !ok {
		return NewExitError(ExitCommandError, "--watch requires the file backend")
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	changes, err := w.Watch(ctx, s.store.Key())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to watch storage", err)
	}
	return watchList(ctx, s, changes)
}

// watchList reloads and redraws on every change notification until ctx is
// done. It runs on the command goroutine, so the store stays
// single-threaded.
func watchList(ctx context.Context, s *session, changes <-chan struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			s.logger.Debug("collection changed, reloading")
			if err := s.store.Load(ctx); err != nil {
				// Load already logged; keep showing the last good view.
				continue
			}
			if err := outputList(s); err != nil {
				return err
			}
		}
	}
}

func outputList(s *session) error {
	visible := s.store.Visible()
	result := ListResult{
		Books:  visible,
		Shown:  len(visible),
		Total:  s.store.Len(),
		Search: s.store.SearchQuery(),
		Sort:   string(s.store.SortOption()),
	}

	if s.formatter.Format == "json" {
		return s.formatter.Success(result)
	}
	return renderList(s.formatter.Writer, result)
}
