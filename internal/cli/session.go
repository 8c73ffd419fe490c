package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/shelflog/internal/config"
	"github.com/roach88/shelflog/internal/kv"
	"github.com/roach88/shelflog/internal/shelf"
	"github.com/roach88/shelflog/internal/view"
)

// session is everything a command needs to work with the collection:
// resolved config, logger, open storage and a loaded store.
type session struct {
	cfg       *config.Config
	logger    *slog.Logger
	storage   kv.Storage
	store     *shelf.Store
	formatter *OutputFormatter
}

// newFormatter builds the output formatter for cmd.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Diagnostics go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
}

// newLogger builds the diagnostic logger. Verbose switches to debug level.
func newLogger(opts *RootOptions, cmd *cobra.Command, level slog.Level) *slog.Logger {
	if opts.Verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(handler)
}

// loadConfig resolves configuration: defaults, user config, --config file,
// then global flags.
func loadConfig(opts *RootOptions, cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	bootLogger := newLogger(opts, cmd, slog.LevelWarn)

	cfg, err := config.NewLoader(bootLogger).Load(opts.ConfigPath)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}

	if opts.Backend != "" {
		cfg.Storage.Backend = opts.Backend
	}
	if opts.Database != "" {
		cfg.Storage.Path = opts.Database
	}
	if opts.Locale != "" {
		cfg.Display.Locale = opts.Locale
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	return cfg, newLogger(opts, cmd, cfg.LogLevel()), nil
}

// openSession loads config, opens storage and loads the collection.
//
// A slot that cannot be decoded is reported as a warning and the session
// continues with an empty collection. A storage read failure is a command
// error.
func openSession(ctx context.Context, opts *RootOptions, cmd *cobra.Command) (*session, error) {
	cfg, logger, err := loadConfig(opts, cmd)
	if err != nil {
		return nil, err
	}

	path := cfg.StoragePath()
	logger.Debug("opening storage", "backend", cfg.Storage.Backend, "path", path)
	storage, err := kv.Open(cfg.Storage.Backend, path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open storage", err)
	}

	st := shelf.New(storage,
		shelf.WithKey(cfg.Storage.Key),
		shelf.WithLogger(logger),
		shelf.WithProjector(view.New(cfg.Locale())),
	)
	st.SetSortOption(cfg.SortOption())

	s := &session{
		cfg:       cfg,
		logger:    logger,
		storage:   storage,
		store:     st,
		formatter: newFormatter(opts, cmd),
	}

	if err := st.Load(ctx); err != nil {
		var loadErr *shelf.LoadError
		if errors.As(err, &loadErr) && loadErr.Kind == shelf.LoadErrDecode {
			fmt.Fprintf(s.formatter.GetErrWriter(), "warning: stored collection is unreadable, starting empty: %v\n", loadErr.Err)
			return s, nil
		}
		s.Close()
		return nil, WrapExitError(ExitCommandError, "failed to load books", err)
	}
	return s, nil
}

// settle waits for a persist and reports a failure as a warning. The
// mutation stays applied in memory either way.
func (s *session) settle(p *shelf.Pending) error {
	err := p.Wait()
	if err != nil {
		fmt.Fprintf(s.formatter.GetErrWriter(), "warning: changes may not have been saved: %v\n", err)
	}
	return err
}

// Close drains in-flight persists and closes storage.
func (s *session) Close() {
	s.store.Wait()
	if err := s.storage.Close(); err != nil {
		s.logger.Error("error closing storage", "error", err)
	}
}

// commandContext returns cmd's context, or Background if none is set.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
