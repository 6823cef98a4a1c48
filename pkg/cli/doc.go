// Package cli implements the arbitrary command line: sample, validate,
// domains and version.
package cli
