package commands

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/DrSkyle/linkpath/pkg/config"
	"github.com/DrSkyle/linkpath/pkg/server"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Answer queries over HTTP",
		Long: `Load the graph once and answer path, length, reach and batch queries
over a JSON HTTP API until interrupted.

With --metrics prometheus the query metrics are served at /metrics.`,
		Example: "  linkpath serve --listen-addr :8080 --metrics prometheus\n  curl 'localhost:8080/v1/path?from=Cat&to=Dog'",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := a.engine(cmd)
			if err != nil {
				return err
			}
			defer closeEngine(cmd, eng)

			if a.cfg.LogLevel != "debug" {
				gin.SetMode(gin.ReleaseMode)
			}
			return server.New(eng, a.cfg.ListenAddr).Run(cmd.Context())
		},
	}

	cmd.Flags().String("listen-addr", config.DefaultListenAddr, "Address to listen on")
	_ = a.v.BindPFlag("listen_addr", cmd.Flags().Lookup("listen-addr"))
	return cmd
}
