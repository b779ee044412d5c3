// Package daemon assembles the long-running storyreel process: it wires the
// job registry, pipeline manager, and HTTP server from configuration and
// guards against concurrent instances with a file lock.
package daemon
