package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/udisondev/l2skilldata/internal/config"
)

const defaultConfigPath = "config/skilldata.yaml"

// commandContext carries state shared by subcommands.
type commandContext struct {
	configPath string
	logLevel   string
	cfg        config.Builder
}

func newRootCommand() *cobra.Command {
	cc := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "skilldata",
		Short:         "Regenerate L2 client skill tables with NPC info, drop and spoil tooltips",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cc.load(cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cc.configPath, "config", "c", "", "Configuration file path (default "+defaultConfigPath+")")
	rootCmd.PersistentFlags().StringVar(&cc.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(newBuildCommand(cc))
	rootCmd.AddCommand(newInspectCommand(cc))
	rootCmd.AddCommand(newImportCommand(cc))

	return rootCmd
}

// load reads the config file and sets up the default logger.
func (cc *commandContext) load(logOut io.Writer) error {
	path := cc.configPath
	if path == "" {
		path = defaultConfigPath
		if p := os.Getenv("L2SKILLDATA_CONFIG"); p != "" {
			path = p
		}
	}

	cfg, err := config.LoadBuilder(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cc.logLevel != "" {
		cfg.LogLevel = cc.logLevel
	}
	cc.cfg = cfg

	slog.SetDefault(slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	return nil
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
