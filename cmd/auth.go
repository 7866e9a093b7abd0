package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	tomlrepo "github.com/bnema/boardroom/internal/adapters/repo/toml"
	"github.com/bnema/boardroom/internal/domain"
	"github.com/spf13/cobra"
)

func newAuthCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the model provider API key",
	}

	cmd.AddCommand(newAuthSetCmd(app), newAuthRemoveCmd(app), newAuthStatusCmd(app))

	return cmd
}

func newAuthSetCmd(app *app) *cobra.Command {
	var secretKey string
	var secretValue string
	var fromStdin bool

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store the provider API key in the secret store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if fromStdin {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read secret from stdin: %w", err)
				}
				secretValue = line
			}
			secretValue = strings.TrimSpace(secretValue)
			if secretValue == "" {
				return errors.New("secret value is empty (use --secret-value or --stdin)")
			}

			key := resolveSecretKey(app, secretKey)
			if err := app.secrets.Put(cmd.Context(), key, secretValue); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Stored %s\n", key)
			return nil
		},
	}

	cmd.Flags().StringVar(&secretKey, "secret-key", "", "Secret reference (default provider.api_key_ref)")
	cmd.Flags().StringVar(&secretValue, "secret-value", "", "Secret value")
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "Read the secret value from stdin")
	cmd.MarkFlagsMutuallyExclusive("secret-value", "stdin")

	return cmd
}

func newAuthRemoveCmd(app *app) *cobra.Command {
	var secretKey string

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove the provider API key from writable secret stores",
		RunE: func(cmd *cobra.Command, _ []string) error {
			key := resolveSecretKey(app, secretKey)
			if err := app.secrets.Delete(cmd.Context(), key); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", key)
			return nil
		},
	}

	cmd.Flags().StringVar(&secretKey, "secret-key", "", "Secret reference (default provider.api_key_ref)")

	return cmd
}

func newAuthStatusCmd(app *app) *cobra.Command {
	var secretKey string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Report whether the provider API key can be resolved",
		RunE: func(cmd *cobra.Command, _ []string) error {
			key := resolveSecretKey(app, secretKey)
			_, backend, err := app.secrets.Lookup(cmd.Context(), key)
			switch {
			case err == nil:
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: configured (%s)\n", key, backend)
				return nil
			case errors.Is(err, domain.ErrSecretNotFound):
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: missing\n", key)
				return nil
			default:
				return err
			}
		},
	}

	cmd.Flags().StringVar(&secretKey, "secret-key", "", "Secret reference (default provider.api_key_ref)")

	return cmd
}

func resolveSecretKey(app *app, flagValue string) string {
	if key := strings.TrimSpace(flagValue); key != "" {
		return key
	}
	return app.config.GetString(tomlrepo.KeyProviderAPIKeyRef)
}
