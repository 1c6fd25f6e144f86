// Package config loads hnsearch settings from a TOML file and the environment.
//
// # Resolution Order
//
//  1. Built-in defaults (see Default)
//  2. ~/.config/hnsearch/config.toml, or the path passed to Load
//  3. HNSEARCH_* environment variables
//
// A missing config file is not an error. An unreadable or malformed one is,
// and so is an unknown store kind, log level, or timeout.
//
// # TOML Format
//
//	endpoint = "https://hn.algolia.com/api/v1/search"
//	default_query = "React"
//	store = "toml"            # toml, bolt or memory
//	store_path = "~/.config/hnsearch/prefs.toml"
//	log_file = "~/.local/state/hnsearch/hnsearch.log"
//	log_level = "info"
//	metrics_addr = "127.0.0.1:9100"
//	requests_per_second = 1.0
//	request_timeout = "10s"
//
// Every key is optional. Paths get tilde expansion. Setting log_file to the
// empty string turns logging off; leaving it out keeps the default file.
// An empty store_path lets the prefs package pick the backend's default.
package config
