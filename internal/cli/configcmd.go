package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/shelflog/internal/config"
)

// NewConfigCommand creates the config command group.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:           "show",
		Short:         "Print the resolved configuration",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(rootOpts, cmd)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:           "init",
		Short:         "Write a default user config if none exists",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(rootOpts, cmd)
		},
	})

	return cmd
}

func runConfigShow(opts *RootOptions, cmd *cobra.Command) error {
	cfg, _, err := loadConfig(opts, cmd)
	if err != nil {
		return err
	}
	resolved := *cfg
	resolved.Storage.Path = cfg.StoragePath()

	formatter := newFormatter(opts, cmd)
	if formatter.Format == "json" {
		return formatter.Success(resolved)
	}

	data, err := yaml.Marshal(resolved)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to encode config", err)
	}
	_, err = formatter.Writer.Write(data)
	return err
}

func runConfigInit(opts *RootOptions, cmd *cobra.Command) error {
	logger := newLogger(opts, cmd, slog.LevelInfo)
	path, err := config.NewLoader(logger).EnsureUserConfig()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to write user config", err)
	}

	formatter := newFormatter(opts, cmd)
	if formatter.Format == "json" {
		return formatter.Success(map[string]string{"path": path})
	}
	fmt.Fprintf(formatter.Writer, "Config: %s\n", path)
	return nil
}
