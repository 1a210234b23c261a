// Package caps discovers the capabilities of the installed ffmpeg and
// ffprobe binaries: versions, known codecs, available encoders, and
// supported container formats. Listings are fetched lazily and cached for
// the lifetime of a Caps value.
package caps
