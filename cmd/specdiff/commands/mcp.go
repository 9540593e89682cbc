package commands

import (
	"github.com/spf13/cobra"

	"github.com/erraggy/specdiff/internal/logging"
	"github.com/erraggy/specdiff/internal/mcpserver"
)

func (a *app) mcpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run an MCP server over stdio",
		Long: `Mcp serves the compare, release_notes, and full_diff tools to an MCP client over
stdin and stdout. Logs go to stderr or the configured log file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			policy, err := a.cfg.BuildPolicy()
			if err != nil {
				return err
			}
			opts := mcpserver.OptionsFromConfig(a.cfg.MCP)
			opts.Policy = policy
			opts.Loader = a.loader()
			opts.Logger = logging.NewZapAdapter(a.log)

			a.log.Info("mcp server starting")
			return mcpserver.New(opts).Run(cmd.Context())
		},
	}

	cmd.Flags().Int("detail-limit", 0, "default per-operation detail cap for the compare tool (default from config: 50)")
	cmd.Flags().Bool("allow-private-ips", false, "let url inputs reach loopback and private networks")
	addFetchFlags(cmd)
	return cmd
}
