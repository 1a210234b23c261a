// Package config loads and validates avtool's TOML configuration.
//
// Load applies defaults, file values, and environment overrides in that
// order, then normalizes paths and validates the result. A missing config
// file is not an error; defaults are used.
package config
