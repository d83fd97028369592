package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"photojson/internal/config"
	"photojson/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check [path] [destination]",
		Short: "Check that a catalog run can read its root and write its output",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.configCopy()
			if err != nil {
				return err
			}
			root := "."
			if len(args) > 0 {
				root = args[0]
			}
			if len(args) > 1 {
				dest, err := config.ExpandPath(args[1])
				if err != nil {
					return fmt.Errorf("resolve destination: %w", err)
				}
				cfg.Output.Destination = dest
			}

			results := preflight.RunAll(cfg, root)
			rows := make([][]string, 0, len(results))
			for _, r := range results {
				rows = append(rows, []string{r.Name, passFail(r.Passed), r.Detail})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Check", "Status", "Detail"}, rows, nil))

			if failed := preflight.Failed(results); len(failed) > 0 {
				return fmt.Errorf("%d of %d checks failed", len(failed), len(results))
			}
			return nil
		},
	}
}
