package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"avtool/internal/media/caps"
)

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func newCapsCommand(ctx *commandContext) *cobra.Command {
	capsCmd := &cobra.Command{
		Use:   "caps",
		Short: "Inspect the installed ffmpeg's capabilities",
	}

	capsCmd.AddCommand(newCapsVersionsCommand(ctx))
	capsCmd.AddCommand(newCapsCodecsCommand(ctx))
	capsCmd.AddCommand(newCapsEncodersCommand(ctx))
	capsCmd.AddCommand(newCapsFormatsCommand(ctx))
	return capsCmd
}

func newCapsVersionsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "versions",
		Short: "Show ffmpeg and ffprobe versions",
		RunE: func(cmd *cobra.Command, args []string) error {
			capabilities, err := ctx.caps()
			if err != nil {
				return err
			}
			ffmpegVersion, err := capabilities.FFmpegVersion(cmd.Context())
			if err != nil {
				return err
			}
			ffprobeVersion, err := capabilities.FFprobeVersion(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ffmpeg  %s\n", ffmpegVersion)
			fmt.Fprintf(out, "ffprobe %s\n", ffprobeVersion)
			return nil
		},
	}
}

func newCapsCodecsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "codecs",
		Short: "List the codecs ffmpeg knows about",
		RunE: func(cmd *cobra.Command, args []string) error {
			capabilities, err := ctx.caps()
			if err != nil {
				return err
			}
			codecs, err := capabilities.Codecs(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, codecs)
			}
			rows := make([][]string, 0, len(codecs))
			for _, name := range sortedKeys(codecs) {
				codec := codecs[name]
				rows = append(rows, []string{
					codec.Name,
					string(codec.Type),
					yesNo(codec.CanDecode),
					yesNo(codec.CanEncode),
					codec.Description,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderListing(
				[]string{"Codec", "Kind", "Decode", "Encode", "Description"},
				rows, nil,
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the listing as JSON")
	return cmd
}

func newCapsEncodersCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	var kindFilter string

	cmd := &cobra.Command{
		Use:   "encoders",
		Short: "List the available encoders",
		RunE: func(cmd *cobra.Command, args []string) error {
			capabilities, err := ctx.caps()
			if err != nil {
				return err
			}
			encoders, err := capabilities.Encoders(cmd.Context())
			if err != nil {
				return err
			}
			if kindFilter != "" {
				filtered := make(map[string]caps.Encoder)
				for name, enc := range encoders {
					if string(enc.Type) == kindFilter {
						filtered[name] = enc
					}
				}
				encoders = filtered
			}
			if asJSON {
				return writeJSON(cmd, encoders)
			}
			rows := make([][]string, 0, len(encoders))
			for _, name := range sortedKeys(encoders) {
				enc := encoders[name]
				rows = append(rows, []string{enc.Name, string(enc.Type), enc.Description})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderListing(
				[]string{"Encoder", "Kind", "Description"},
				rows, nil,
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the listing as JSON")
	cmd.Flags().StringVar(&kindFilter, "kind", "", "Only show encoders of this kind: video, audio, subtitle")
	return cmd
}

func newCapsFormatsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "formats",
		Short: "List the supported container formats",
		RunE: func(cmd *cobra.Command, args []string) error {
			capabilities, err := ctx.caps()
			if err != nil {
				return err
			}
			formats, err := capabilities.Formats(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, formats)
			}
			rows := make([][]string, 0, len(formats))
			for _, name := range sortedKeys(formats) {
				format := formats[name]
				rows = append(rows, []string{
					format.Name,
					yesNo(format.CanDemux),
					yesNo(format.CanMux),
					format.Description,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderListing(
				[]string{"Format", "Demux", "Mux", "Description"},
				rows, nil,
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the listing as JSON")
	return cmd
}
