package cmd

import (
	"context"
	"fmt"
	"strings"

	reportadapter "github.com/bnema/boardroom/internal/adapters/render/report"
	"github.com/bnema/boardroom/internal/application"
	"github.com/bnema/boardroom/internal/domain"
	"github.com/spf13/cobra"
)

func newRunCmd(app *app) *cobra.Command {
	var maxIterations int
	var noEmbodiment bool
	var adjustFrom string
	var offline bool
	var format string
	var full bool

	cmd := &cobra.Command{
		Use:   "run <topic>",
		Short: "Deliberate on a topic until the board reaches consensus",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outFormat, err := parseOutputFormat(format)
			if err != nil {
				return err
			}

			service := app.service
			if offline {
				service, err = app.offlineService(cmd.Context())
				if err != nil {
					return err
				}
			}

			command := application.RunDebateCommand{
				Topic:            strings.Join(args, " "),
				MaxIterations:    maxIterations,
				AdjustmentSource: application.AdjustmentSource(adjustFrom),
			}
			if noEmbodiment {
				disabled := false
				command.Embodiment = &disabled
			}

			var report domain.FinalReport
			deliberate := func(ctx context.Context, observer application.Observer) error {
				command.Observer = observer
				var err error
				report, err = service.Run(ctx, command)
				return err
			}

			if outFormat == formatText {
				limit := maxIterations
				if limit <= 0 {
					limit = app.settings.MaxIterations
				}
				err = runDeliberationSpinner(cmd.Context(), cmd.ErrOrStderr(), command.Topic, limit, deliberate)
			} else {
				err = deliberate(cmd.Context(), nil)
			}
			if err != nil {
				return err
			}

			return writeReport(cmd, app, report, outFormat, full)
		},
	}

	cmd.Flags().IntVar(&maxIterations, "max-iterations", 0, "Iteration cap (0 uses deliberation.max_iterations)")
	cmd.Flags().BoolVar(&noEmbodiment, "no-embodiment", false, "Skip the embodiment phase")
	cmd.Flags().StringVar(&adjustFrom, "adjust-from", "", "Adjustment input (embodiment|strategies)")
	cmd.Flags().BoolVar(&offline, "offline", false, "Use the local deterministic provider instead of the model")
	cmd.Flags().StringVar(&format, "format", string(formatText), "Output format (text|json|yaml)")
	cmd.Flags().BoolVar(&full, "full", false, "Print every strategy in full")

	return cmd
}

func writeReport(cmd *cobra.Command, app *app, report domain.FinalReport, format outputFormat, full bool) error {
	if format != formatText {
		return writeStructured(cmd.OutOrStdout(), format, report)
	}

	opts := reportadapter.Options{Now: app.now()}
	if full {
		opts.ExcerptLines = -1
	}
	rendered, err := app.renderReport(report, opts)
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
