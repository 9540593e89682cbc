package commands

import (
	"github.com/spf13/cobra"

	"github.com/erraggy/specdiff/internal/server"
)

func (a *app) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the comparison API and web frontend over HTTP",
		Long: `Serve exposes the comparison over HTTP:

  POST /api/analyze        multipart old_file, new_file -> JSON report
  POST /api/release-notes  multipart old_file, new_file[, date] -> Markdown
  POST /api/full-diff      multipart old_file, new_file -> line diff
  GET  /healthz
  GET  /metrics            Prometheus metrics

With --static-dir, other GET requests serve the frontend build, falling back
to index.html for client-side routes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			policy, err := a.cfg.BuildPolicy()
			if err != nil {
				return err
			}
			srv := server.New(server.Options{
				Config:   a.cfg.Server,
				Policy:   policy,
				Validate: a.cfg.Validate,
				Logger:   a.log,
			})
			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().String("addr", "", "listen address (default from config: :8000)")
	cmd.Flags().String("static-dir", "", "directory holding the frontend build")
	return cmd
}
