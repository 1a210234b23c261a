package main

import (
	"os"
	"strconv"
	"time"

	"github.com/mattn/go-isatty"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

func stdoutIsTTY() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// languageName renders a BCP 47 language code as its English display name.
// Codes that do not parse (ffmpeg also emits ISO 639-2/B tags like "fre")
// are returned unchanged.
func languageName(code string) string {
	if code == "" {
		return ""
	}
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return code
}

func formatDuration(d *time.Duration) string {
	if d == nil {
		return "-"
	}
	return d.String()
}

func formatCount(n *int64) string {
	if n == nil {
		return "-"
	}
	return strconv.FormatInt(*n, 10)
}
