package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"filmpress/internal/deps"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify external tool availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.CheckBinaries(deps.ConfigRequirements(cfg))
			rows := make([][]string, 0, len(statuses))
			missing := 0
			for _, status := range statuses {
				detail := status.Version
				if !status.Available {
					detail = status.Detail
					if !status.Optional {
						missing++
					}
				}
				rows = append(rows, []string{
					status.Name,
					status.Command,
					yesNo(status.Available),
					detail,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"Tool", "Command", "Found", "Detail"}, rows))

			if missing > 0 {
				return fmt.Errorf("%d required tools missing", missing)
			}
			return nil
		},
	}
}
