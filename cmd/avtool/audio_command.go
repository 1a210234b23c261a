package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAudioCommand(ctx *commandContext) *cobra.Command {
	audioCmd := &cobra.Command{
		Use:   "audio",
		Short: "Audio stream extraction and removal",
	}

	audioCmd.AddCommand(newAudioExtractCommand(ctx))
	audioCmd.AddCommand(newAudioRemoveCommand(ctx))
	return audioCmd
}

func newAudioExtractCommand(ctx *commandContext) *cobra.Command {
	var codec string
	var format string

	cmd := &cobra.Command{
		Use:   "extract SOURCE TARGET",
		Short: "Extract the audio streams into a new file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			toolkit, err := ctx.toolkit()
			if err != nil {
				return err
			}
			if err := toolkit.ExtractAudio(cmd.Context(), args[0], args[1], codec, format); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", args[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&codec, "codec", "", "Re-encode with this audio codec (default: stream copy)")
	cmd.Flags().StringVar(&format, "format", "", "Force a container format (default: inferred from TARGET)")
	return cmd
}

func newAudioRemoveCommand(ctx *commandContext) *cobra.Command {
	var stripSubtitles bool

	cmd := &cobra.Command{
		Use:   "remove SOURCE TARGET",
		Short: "Copy the file without its audio streams",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			toolkit, err := ctx.toolkit()
			if err != nil {
				return err
			}
			if err := toolkit.RemoveAudio(cmd.Context(), args[0], args[1], !stripSubtitles); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", args[1])
			return nil
		},
	}

	cmd.Flags().BoolVar(&stripSubtitles, "strip-subtitles", false, "Drop subtitle streams as well")
	return cmd
}
