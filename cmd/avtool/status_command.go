package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"avtool/internal/deps"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check that the external tools are available",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			statuses := deps.Check(cfg.Tools.FFmpeg, cfg.Tools.FFprobe)

			rows := make([][]string, 0, len(statuses))
			missing := false
			for _, status := range statuses {
				detail := status.Command
				if !status.Available {
					detail = status.Detail
					missing = true
				}
				rows = append(rows, []string{
					status.Name,
					yesNo(status.Available),
					detail,
					status.Description,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderListing(
				[]string{"Tool", "Available", "Location", "Used for"},
				rows, nil,
			))
			if missing {
				return fmt.Errorf("one or more required tools are missing")
			}
			return nil
		},
	}
}
