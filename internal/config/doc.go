// Package config loads kisan's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/kisan/config.toml (default)
//  3. If the config file doesn't exist, fall back to Defaults()
//  4. If the file exists but fields are missing/empty, use defaults
//
// A file that exists but cannot be parsed is an error; kisan refuses to start
// rather than silently talk to the wrong backend.
//
// # Fields
//
//	market_api        = "127.0.0.1:5000"   # market-data API (host:port or URL)
//	assistant_api     = ""                 # defaults to market_api
//	api_token         = ""                 # forwarded as a bearer token
//	default_commodity = "wheat"
//	region            = ""                 # sent to the assistant
//	debounce_ms       = 500                # search debounce
//	toast_ms          = 5000               # notification lifetime
//	poll_seconds      = 60                 # background price refresh
//	log_file          = "~/.local/share/kisan/kisan.log"
//	appearance_file   = "~/.config/kisan/appearance"
//	prefs_file        = "~/.config/kisan/prefs.toml"
//
// Paths beginning with ~ are expanded to the user's home directory.
package config
