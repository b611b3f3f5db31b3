// Package paths provides centralized path handling for mkt.
//
// It handles:
//
//   - The mkt home, where the template registry lives
//   - The XDG config directory and the user configuration file
//   - The state directory used for the log file
//
// # Environment Variables
//
//   - MKT_HOME: registry location (default: $XDG_DATA_HOME/mkt)
//   - MKT_CONFIG_DIR: config directory (default: $XDG_CONFIG_HOME/mkt)
//   - XDG_STATE_HOME: base of the state directory (default: ~/.local/state)
//
// # Usage
//
//	p := paths.New("")
//	p.TemplatesDir() // $XDG_DATA_HOME/mkt/templates
//	p.ConfigFile()   // $XDG_CONFIG_HOME/mkt/config.toml
package paths
