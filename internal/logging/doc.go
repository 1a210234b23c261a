// Package logging constructs slog loggers for avtool.
//
// Two output formats are supported: a compact console format for interactive
// use and JSON for machine consumption. Components receive a *slog.Logger
// and never configure output themselves.
package logging
