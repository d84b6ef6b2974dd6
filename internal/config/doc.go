// Package config loads the compositor configuration.
//
// Configuration comes from three places, later ones overriding earlier:
//
//  1. Built-in defaults (Default)
//  2. The configuration file, $XDG_CONFIG_HOME/holo/config.toml by default.
//     YAML (.yaml, .yml) and Lua (.lua) files are accepted too.
//  3. HOLO_* environment variables (ApplyEnv)
//
// # File Format
//
//	gaps = 10
//	workspaces = 9
//	terminal = "foot"
//
//	[log]
//	level = "info"
//	format = "text"
//
//	[tty]
//	cell_width = 8
//	cell_height = 16
//	demo_windows = 2
//
//	[[keybindings]]
//	keys = "Super+Shift+Q"
//	action = "quit"
//
//	[[keybindings]]
//	keys = "Super+2"
//	action = "workspace"
//	workspace = 2
//
// When no keybindings are configured the built-in set is used. A configured
// list replaces the built-in set entirely.
//
// # Live Reload
//
// Watch returns a Watcher that reloads the file when it changes and sends
// each valid configuration on its Updates channel. Invalid files are
// reported on Errors and do not replace the running configuration.
package config
