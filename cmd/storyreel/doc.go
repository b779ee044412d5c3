// Package main hosts the storyreel CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into HTTP
// calls against the storyreeld daemon: job submission, status polling, job
// listing, health checks, and configuration scaffolding. Configuration
// resolution and daemon address discovery are centralized so subcommands can
// focus on user experience instead of wiring.
package main
