package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/DrSkyle/linkpath/pkg/batch"
)

func newBatchCmd(a *app) *cobra.Command {
	var (
		vars   []string
		outLoc string
		format string
	)

	cmd := &cobra.Command{
		Use:   "batch FILE",
		Short: "Run the queries listed in an HCL file",
		Long: `Run every query block in FILE concurrently and print the results in file order.

FILE may be a local path or s3://bucket/key. Values passed with --var are
visible in the file as var.<name>.`,
		Example: `  linkpath batch queries.hcl --var via=Physics
  linkpath batch queries.hcl --out results.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseFormat(format)
			if err != nil {
				return err
			}
			values, err := batch.ParseVars(vars)
			if err != nil {
				return err
			}

			eng, err := a.engine(cmd)
			if err != nil {
				return err
			}
			defer closeEngine(cmd, eng)

			rc, err := eng.Open(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to open batch file: %w", err)
			}
			src, err := io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return fmt.Errorf("failed to read batch file: %w", err)
			}
			queries, err := batch.Parse(args[0], src, values)
			if err != nil {
				return err
			}

			results, err := eng.Batch(cmd.Context(), queries)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			r := a.renderer()
			var found, failed int
			for _, res := range results {
				fmt.Fprintf(out, "[%s]\n", res.Label)
				if res.Error != "" {
					failed++
					fmt.Fprintln(out, r.Field("error", res.Error))
					fmt.Fprintln(out)
					continue
				}
				if res.Found {
					found++
				}
				fmt.Fprintln(out, r.Result(res.From, res.Through, res.To, res.Path, res.Found))
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "%d queries, %d found, %d failed\n", len(results), found, failed)

			if outLoc != "" {
				return eng.Export(cmd.Context(), outLoc, f, results)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&vars, "var", nil, "Variable for the batch file as name=value (repeatable)")
	cmd.Flags().StringVar(&outLoc, "out", "", "Write results to a local path or s3://bucket/key")
	cmd.Flags().StringVar(&format, "format", "", "Report format: json, csv or yaml (default from extension)")
	return cmd
}
