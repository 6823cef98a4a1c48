// Package logging provides structured logging configuration for arbitrary.
//
// This package wraps log/slog so the generator core, the pipeline and the
// CLI log the same way.
//
// # Usage
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.ParseLevel("debug"),
//	    Format: logging.FormatJSON,
//	})
//
//	logger.Debug("constraint not satisfied", "op", "filter", "attempts", 10000)
//
// # Integration
//
// Components accept a *slog.Logger in their constructor or options. A nil
// logger means logging.Nop(); use OrNop to normalize it.
package logging
