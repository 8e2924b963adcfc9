package main

import (
	"fmt"
	"os"

	"weblog/cli"
	"weblog/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const version = "1.0.0"

func main() {
	var verbose bool
	var logger *zap.Logger

	rootCmd := &cobra.Command{
		Use:           "weblog",
		Short:         "A blog server and its command-line client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			if verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			logger, err = config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			zap.ReplaceGlobals(logger)
			cmd.Root().PersistentPostRun = func(cmd *cobra.Command, args []string) {
				_ = logger.Sync()
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	var configPath string
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the blog API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return service.Run(configPath, logger)
		},
	}
	serveCmd.Flags().StringVarP(&configPath, "config", "c", "weblog.yaml", "path to the config file")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "weblog version %s\n", version)
		},
	}

	rootCmd.AddCommand(serveCmd, versionCmd)
	rootCmd.AddCommand(cli.Commands()...)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
