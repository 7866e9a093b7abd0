package cmd

import (
	"fmt"

	reportadapter "github.com/bnema/boardroom/internal/adapters/render/report"
	"github.com/bnema/boardroom/internal/domain"
	"github.com/spf13/cobra"
)

type sessionDetail struct {
	Summary domain.SessionSummary `json:"summary" yaml:"summary"`
	Report  *domain.FinalReport   `json:"report,omitempty" yaml:"report,omitempty"`
}

func newHistoryCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse past deliberations",
	}

	cmd.AddCommand(
		newHistoryListCmd(app),
		newHistoryShowCmd(app),
		newHistoryStatsCmd(app),
	)

	return cmd
}

func newHistoryListCmd(app *app) *cobra.Command {
	var format string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded deliberations, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			outFormat, err := parseOutputFormat(format)
			if err != nil {
				return err
			}

			sessions, err := app.service.ListSessions(cmd.Context())
			if err != nil {
				return err
			}
			if limit > 0 && len(sessions) > limit {
				sessions = sessions[:limit]
			}

			if outFormat != formatText {
				if sessions == nil {
					sessions = []domain.SessionSummary{}
				}
				return writeStructured(cmd.OutOrStdout(), outFormat, sessions)
			}

			rendered, err := app.renderSessions(sessions, reportadapter.Options{Now: app.now()})
			if err != nil {
				return fmt.Errorf("render history: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", string(formatText), "Output format (text|json|yaml)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Show at most this many sessions (0 shows all)")

	return cmd
}

func newHistoryShowCmd(app *app) *cobra.Command {
	var format string
	var full bool

	cmd := &cobra.Command{
		Use:   "show <session-id>",
		Short: "Show one deliberation and its final report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outFormat, err := parseOutputFormat(format)
			if err != nil {
				return err
			}

			summary, report, err := app.service.GetSession(cmd.Context(), domain.SessionID(args[0]))
			if err != nil {
				return err
			}

			if outFormat != formatText {
				detail := sessionDetail{Summary: summary}
				if report.SessionID != "" {
					detail.Report = &report
				}
				return writeStructured(cmd.OutOrStdout(), outFormat, detail)
			}

			if report.SessionID != "" {
				return writeReport(cmd, app, report, formatText, full)
			}

			rendered, err := app.renderSessions([]domain.SessionSummary{summary}, reportadapter.Options{Now: app.now()})
			if err != nil {
				return fmt.Errorf("render session: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", string(formatText), "Output format (text|json|yaml)")
	cmd.Flags().BoolVar(&full, "full", false, "Print every strategy in full")

	return cmd
}

func newHistoryStatsCmd(app *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize consensus rates across recorded deliberations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			outFormat, err := parseOutputFormat(format)
			if err != nil {
				return err
			}

			stats, err := app.service.Stats(cmd.Context())
			if err != nil {
				return err
			}

			if outFormat != formatText {
				return writeStructured(cmd.OutOrStdout(), outFormat, stats)
			}

			rendered, err := app.renderStats(stats)
			if err != nil {
				return fmt.Errorf("render stats: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", string(formatText), "Output format (text|json|yaml)")

	return cmd
}
