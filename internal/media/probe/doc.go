// Package probe maps ffprobe JSON output into typed media descriptions.
//
// Parse is pure: it performs no I/O and either returns a fully populated
// MediaInfo or fails with ErrMalformedProbeData. Numeric fields that ffprobe
// reports as strings (duration, bit rate, size) are parsed strictly; a value
// that does not parse fails the whole document rather than defaulting to
// zero. Unknown keys are kept in overflow maps so newer ffprobe versions
// lose no information.
package probe
