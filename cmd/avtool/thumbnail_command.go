package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newThumbnailCommand(ctx *commandContext) *cobra.Command {
	var output string
	var seek time.Duration
	var format string

	cmd := &cobra.Command{
		Use:   "thumbnail SOURCE",
		Short: "Extract a single frame as an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if format == "" {
				format = cfg.Thumbnail.Format
			}

			toolkit, err := ctx.toolkit()
			if err != nil {
				return err
			}
			image, err := toolkit.Thumbnail(cmd.Context(), args[0], seek, format)
			if err != nil {
				return err
			}

			target := strings.TrimSpace(output)
			if target == "-" {
				_, err := cmd.OutOrStdout().Write(image)
				return err
			}
			if target == "" {
				base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
				target = base + "." + format
			}
			if err := os.WriteFile(target, image, 0o644); err != nil {
				return fmt.Errorf("write thumbnail: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", target, len(image))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination path (\"-\" for stdout)")
	cmd.Flags().DurationVar(&seek, "seek", 0, "Position to take the frame from")
	cmd.Flags().StringVar(&format, "format", "", "Image format: png, jpg, gif, tiff, bmp")
	return cmd
}
