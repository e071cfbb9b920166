package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLengthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "length FROM TO",
		Short: "Print the shortest path length",
		Long: `Print the number of edges on a shortest path from FROM to TO.

Prints -1 when there is no path or a vertex is unknown.`,
		Example: "  linkpath length Albert_Einstein Kevin_Bacon",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := a.engine(cmd)
			if err != nil {
				return err
			}
			defer closeEngine(cmd, eng)

			n, err := eng.Length(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
}
