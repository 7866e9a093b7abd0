package cmd

import (
	"fmt"
	"os"

	"github.com/bnema/boardroom/internal/domain"
	"github.com/spf13/cobra"
)

type panelEntry struct {
	Name      domain.ParticipantName `json:"name" yaml:"name"`
	Specialty string                 `json:"specialty" yaml:"specialty"`
	Role      string                 `json:"role" yaml:"role"`
	Goal      string                 `json:"goal" yaml:"goal"`
}

func newPanelCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "panel",
		Short: "Inspect and initialize the advisory panel",
	}

	cmd.AddCommand(
		newPanelListCmd(app),
		newPanelInitCmd(app),
	)

	return cmd
}

func newPanelListCmd(app *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List panel participants in speaking order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			outFormat, err := parseOutputFormat(format)
			if err != nil {
				return err
			}

			participants, err := app.service.Panel(cmd.Context())
			if err != nil {
				return err
			}

			if outFormat != formatText {
				entries := make([]panelEntry, 0, len(participants))
				for _, p := range participants {
					entries = append(entries, panelEntry{Name: p.Name, Specialty: p.Specialty, Role: p.Persona.Role, Goal: p.Persona.Goal})
				}
				return writeStructured(cmd.OutOrStdout(), outFormat, entries)
			}

			for i, p := range participants {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", i+1, p.Name, p.Specialty)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", string(formatText), "Output format (text|json|yaml)")

	return cmd
}

func newPanelInitCmd(app *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default six-member panel to the panel file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := app.panel.Path()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("panel file %s already exists (use --force to overwrite)", path)
			}

			if err := app.panel.Save(cmd.Context(), domain.DefaultPanel()); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote default panel to %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing panel file")

	return cmd
}
