package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"avtool/internal/media/shortcuts"
)

type convertFunc func(t *shortcuts.Toolkit, ctx context.Context, source, target string, opts shortcuts.ConvertOptions) error

func newConvertCommand(ctx *commandContext) *cobra.Command {
	convertCmd := &cobra.Command{
		Use:   "convert",
		Short: "Transcode media into common delivery formats",
	}

	convertCmd.AddCommand(newConvertSubcommand(ctx, "webm",
		"Convert to WebM (VP9 video, Opus audio)",
		(*shortcuts.Toolkit).ConvertToWebM))
	convertCmd.AddCommand(newConvertSubcommand(ctx, "h264",
		"Convert to MP4 with H.264 video and AAC audio",
		(*shortcuts.Toolkit).ConvertToH264))
	convertCmd.AddCommand(newConvertSubcommand(ctx, "hevc",
		"Convert to MP4 with H.265 video and AAC audio",
		(*shortcuts.Toolkit).ConvertToHEVC))
	convertCmd.AddCommand(newConvertSubcommand(ctx, "aac",
		"Extract and re-encode audio as AAC in MP4",
		(*shortcuts.Toolkit).ConvertToAAC))
	convertCmd.AddCommand(newConvertSubcommand(ctx, "opus",
		"Extract and re-encode audio as Opus in Ogg",
		(*shortcuts.Toolkit).ConvertToOpus))

	return convertCmd
}

func newConvertSubcommand(ctx *commandContext, name, short string, convert convertFunc) *cobra.Command {
	var opts shortcuts.ConvertOptions

	cmd := &cobra.Command{
		Use:   name + " SOURCE TARGET",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("crf") {
				opts.CRF = cfg.Convert.CRF
			}
			if opts.Preset == "" {
				opts.Preset = cfg.Convert.Preset
			}
			if opts.VideoBitRate == "" {
				opts.VideoBitRate = cfg.Convert.VideoBitrate
			}
			if opts.AudioBitRate == "" {
				opts.AudioBitRate = cfg.Convert.AudioBitrate
			}

			toolkit, err := ctx.toolkit()
			if err != nil {
				return err
			}
			if err := convert(toolkit, cmd.Context(), args[0], args[1], opts); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", args[1])
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.CRF, "crf", 0, "Constant rate factor (0 uses the encoder default)")
	cmd.Flags().StringVar(&opts.Preset, "preset", "", "Encoder speed preset (h264/hevc)")
	cmd.Flags().StringVar(&opts.Scale, "scale", "", "Output size as W:H, -1 preserves aspect ratio")
	cmd.Flags().StringVar(&opts.VideoBitRate, "video-bitrate", "", "Target video bit rate, e.g. 2M")
	cmd.Flags().StringVar(&opts.AudioBitRate, "audio-bitrate", "", "Target audio bit rate, e.g. 128k")
	return cmd
}
