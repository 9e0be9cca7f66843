// Package app is kisan's composition root.
//
// # Overview
//
// Run loads configuration, builds every component and runs the background
// poller alongside the TUI until the user quits or the context is cancelled.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> LoadConfig()        config.toml + flag overrides
//	       ├─────> NewLogger()         JSON to the log file
//	       ├─────> OpenPrefs()         prefs.toml + appearance file watcher
//	       ├─────> notify.NewQueue()   toasts, wakes the UI on change
//	       ├─────> NewSearch()         debounced commodity lookup
//	       └─────> errgroup
//	                 ├─> Poll()        refresh tracked commodity, back off on failure
//	                 └─> ui.Run()      blocks; quitting cancels the poller
//
// # Polling Behavior
//
// The poller refreshes the tracked commodity every poll_seconds. Each
// consecutive failure doubles the wait up to five minutes; the first success
// restores the normal cadence. Results for a commodity the user has since
// searched away from are dropped by the store.
//
// # Error Handling
//
// Fatal (returned from Run):
//   - malformed config file
//   - unusable market API address
//   - log file that cannot be created
//
// Recoverable (logged, shown as toasts or header status):
//   - fetch failures during polling or search
//   - prefs file that cannot be read or written (preferences stay in memory)
//   - missing or unparsable appearance file (terminal background is used)
//   - assistant API address that cannot be parsed (assistant disabled)
package app
