// Package config handles configuration management for mkt.
// It layers the embedded defaults, the user's config.toml and MKT_*
// environment variables (MKT_COMMANDS_TIMEOUT=30s sets commands.timeout).
package config
