package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"avtool/internal/media/probe"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect SOURCE",
		Short: "Probe a media file and describe its contents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			toolkit, err := ctx.toolkit()
			if err != nil {
				return err
			}
			info, err := toolkit.Inspect(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, info)
			}
			renderMediaInfo(cmd, info)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the full probe result as JSON")
	return cmd
}

func renderMediaInfo(cmd *cobra.Command, info *probe.MediaInfo) {
	out := cmd.OutOrStdout()

	name := info.Format.Name
	if info.Format.Description != "" {
		name = fmt.Sprintf("%s (%s)", name, info.Format.Description)
	}
	fmt.Fprintf(out, "Format:   %s\n", name)
	fmt.Fprintf(out, "Duration: %s\n", formatDuration(info.Format.Duration))
	fmt.Fprintf(out, "Size:     %s bytes\n", formatCount(info.Format.Size))
	fmt.Fprintf(out, "Bit rate: %s b/s\n", formatCount(info.Format.BitRate))
	fmt.Fprintln(out)

	rows := make([][]string, 0, len(info.Streams))
	for _, s := range info.Streams {
		rows = append(rows, []string{
			strconv.Itoa(s.Index),
			string(s.Type),
			s.Codec.Name,
			streamDetails(s),
			languageName(s.Language()),
		})
	}
	fmt.Fprintln(out, renderListing(
		[]string{"#", "Type", "Codec", "Details", "Language"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
	))
}

func streamDetails(s probe.Stream) string {
	switch s.Type {
	case probe.KindVideo:
		var parts []string
		if s.Width > 0 && s.Height > 0 {
			parts = append(parts, fmt.Sprintf("%dx%d", s.Width, s.Height))
		}
		if s.PixelFormat != "" {
			parts = append(parts, s.PixelFormat)
		}
		if s.FrameRate != "" {
			parts = append(parts, s.FrameRate+" fps")
		}
		return strings.Join(parts, ", ")
	case probe.KindAudio:
		var parts []string
		if s.SampleRate != nil {
			parts = append(parts, fmt.Sprintf("%d Hz", *s.SampleRate))
		}
		if s.Channels > 0 {
			parts = append(parts, fmt.Sprintf("%d ch", s.Channels))
		}
		if s.ChannelLayout != "" {
			parts = append(parts, s.ChannelLayout)
		}
		return strings.Join(parts, ", ")
	default:
		return s.Codec.Profile
	}
}
