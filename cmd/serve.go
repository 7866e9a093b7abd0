package cmd

import (
	tomlrepo "github.com/bnema/boardroom/internal/adapters/repo/toml"
	"github.com/bnema/boardroom/internal/adapters/server"
	"github.com/bnema/boardroom/internal/version"
	"github.com/spf13/cobra"
)

func newServeCmd(app *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the deliberation API over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = app.config.GetString(tomlrepo.KeyServerAddr)
			}

			srv := server.New(app.service, server.Options{
				Addr:        addr,
				CORSOrigins: app.config.GetStringSlice(tomlrepo.KeyCORSOrigins),
				Logger:      app.logger,
				Version:     version.Version,
			})
			return srv.Serve(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default server.addr)")

	return cmd
}
