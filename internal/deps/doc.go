// Package deps reports availability of the external binaries avtool shells
// out to. It only resolves paths; versions and capabilities are the caps
// package's job.
package deps
