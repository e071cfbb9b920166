package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DrSkyle/linkpath/pkg/graph"
)

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarise the loaded graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := a.engine(cmd)
			if err != nil {
				return err
			}
			defer closeEngine(cmd, eng)

			g := eng.Graph()
			stats := eng.Stats()
			var maxOut int
			for id := range g.Len() {
				maxOut = max(maxOut, g.OutDegree(graph.ID(id)))
			}

			out := cmd.OutOrStdout()
			r := a.renderer()
			fmt.Fprintln(out, r.Field("vertices", stats.Vertices))
			fmt.Fprintln(out, r.Field("edges", stats.Edges))
			fmt.Fprintln(out, r.Field("skipped", stats.Skipped))
			fmt.Fprintln(out, r.Field("components", graph.Components(g)))
			fmt.Fprintln(out, r.Field("max degree", maxOut))
			return nil
		},
	}
}
