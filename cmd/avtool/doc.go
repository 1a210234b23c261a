// Command avtool is a thin command line wrapper around ffmpeg and ffprobe:
// media inspection, thumbnail extraction, common conversions, and capability
// discovery, driven by a small TOML configuration file.
package main
