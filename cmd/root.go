package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

const skipWireAnnotation = "boardroom.skip_wire"

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var configPath string
	var logLevel string

	app := &app{}

	rootCmd := &cobra.Command{
		Use:           "boardroom",
		Short:         "Boardroom: a panel of AI advisors that deliberates until it agrees",
		Long:          "boardroom runs a panel of AI personas through research, presentation, cross-examination and voting rounds until a consensus strategy emerges, then writes a synthesis and keeps the full history.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[skipWireAnnotation] == "true" {
				return nil
			}
			return app.wire(cmd.Context(), wireOptions{
				configPath: configPath,
				logLevel:   logLevel,
				logOutput:  cmd.ErrOrStderr(),
			})
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return app.close()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/boardroom/config.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level override (debug|info|warn|error)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(app),
		newPanelCmd(app),
		newHistoryCmd(app),
		newServeCmd(app),
		newAuthCmd(app),
	)

	return rootCmd
}
