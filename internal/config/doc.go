// Package config loads, normalizes, and validates storyreel's TOML
// configuration. Load resolves the config path, applies repository defaults
// for missing keys, expands home-relative paths, and rejects unusable
// combinations before the daemon starts.
package config
