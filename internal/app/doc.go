// Package app is the composition root for hnsearch.
//
// Run loads configuration, opens the log file and the prefs backend, builds
// the search client, and hands a state.Store plus the fetch and query
// controllers to either the TUI or the one-shot printer.
//
//	Run()
//	  ├─> config.Load()          TOML file + HNSEARCH_* env
//	  ├─> logger.Open()          JSON log file (or discard)
//	  ├─> startFixture()         -offline only, loopback endpoint
//	  ├─> startMetrics()         metrics_addr only, /metrics
//	  ├─> hn.NewClient()         rate limit + timeout
//	  ├─> prefs.OpenBackend()    toml, bolt or memory
//	  └─> ui.Run() | runOnce()
//
// Only a configuration error stops startup. An unusable log file or prefs
// backend is reported and replaced by a no-op or in-memory stand-in.
//
// Logs > 0 skips everything after config.Load and prints the tail of the log
// file through logtail.
//
// In one-shot mode a failed search is returned as an error so the command
// exits non-zero.
package app
