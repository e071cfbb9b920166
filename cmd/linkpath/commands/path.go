package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DrSkyle/linkpath/pkg/batch"
	"github.com/DrSkyle/linkpath/pkg/engine/report"
)

func newPathCmd(a *app) *cobra.Command {
	var (
		through       string
		randomThrough bool
		exportLoc     string
		format        string
	)

	cmd := &cobra.Command{
		Use:   "path [FROM [THROUGH] TO]",
		Short: "Find a shortest path",
		Long: `Print a shortest path between two vertices, optionally through a third.

With no arguments both endpoints are picked at random.`,
		Example: `  linkpath path Albert_Einstein Kevin_Bacon
  linkpath path Albert_Einstein Physics Kevin_Bacon
  linkpath path --random-through --seed 7
  linkpath path A B --export s3://reports/run.json`,
		Args: pathArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseFormat(format)
			if err != nil {
				return err
			}
			if len(args) == 3 && through != "" {
				return errors.New("give the intermediate vertex either as an argument or with --through, not both")
			}

			eng, err := a.engine(cmd)
			if err != nil {
				return err
			}
			defer closeEngine(cmd, eng)

			var q batch.Query
			switch len(args) {
			case 0:
				if q, err = eng.Random(randomThrough); err != nil {
					return err
				}
				if through != "" {
					q.Through = through
				}
			case 2:
				q = batch.Query{From: args[0], Through: through, To: args[1]}
			case 3:
				q = batch.Query{From: args[0], Through: args[1], To: args[2]}
			}

			res, err := eng.Run(cmd.Context(), q)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.renderer().Result(q.From, q.Through, q.To, res.Path, res.Found))

			if exportLoc != "" {
				return eng.Export(cmd.Context(), exportLoc, f, []report.Result{res})
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&through, "through", "", "Vertex the path must visit")
	cmd.Flags().BoolVar(&randomThrough, "random-through", false, "Pick a random intermediate vertex when endpoints are random")
	cmd.Flags().StringVar(&exportLoc, "export", "", "Write the result to a local path or s3://bucket/key")
	cmd.Flags().StringVar(&format, "format", "", "Export format: json, csv or yaml (default from extension)")
	return cmd
}

func pathArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 1 || len(args) > 3 {
		return fmt.Errorf("path takes no arguments, FROM TO, or FROM THROUGH TO; got %d", len(args))
	}
	return nil
}

// parseFormat accepts an empty format, meaning "infer from the file name".
func parseFormat(s string) (report.Format, error) {
	if s == "" {
		return "", nil
	}
	return report.ParseFormat(s)
}
