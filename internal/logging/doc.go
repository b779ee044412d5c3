// Package logging builds the slog loggers used across storyreel.
//
// Loggers are constructed once at process start from configuration and passed
// down explicitly; components attach a standardized component attribute via
// WithComponent so daemon output stays filterable.
package logging
