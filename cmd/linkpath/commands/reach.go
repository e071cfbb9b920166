package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DrSkyle/linkpath/pkg/display"
)

func newReachCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reach ROOT...",
		Short: "Count vertices reachable from one or more roots",
		Long: `Sweep outward from every ROOT at once and report how much of the graph
is reachable, how deep the sweep went and which vertex lies farthest out.

--max-depth and --filter apply as they do to path queries.`,
		Example: "  linkpath reach Albert_Einstein\n  linkpath --max-depth 2 reach Physics Chemistry",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := a.engine(cmd)
			if err != nil {
				return err
			}
			defer closeEngine(cmd, eng)

			res, err := eng.Reach(cmd.Context(), args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			r := a.renderer()
			fmt.Fprintln(out, r.Field("reached", res.Reached))
			fmt.Fprintln(out, r.Field("unreached", res.Unreached))
			fmt.Fprintln(out, r.Field("depth", res.Depth))
			fmt.Fprintln(out, r.Field("farthest", display.Decode(res.Farthest)))
			return nil
		},
	}
}
