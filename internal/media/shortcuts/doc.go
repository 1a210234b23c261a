// Package shortcuts offers the high-level media operations most callers
// want: probing, thumbnail extraction, format conversions, and audio
// extraction or removal, each a single call on a Toolkit.
package shortcuts
