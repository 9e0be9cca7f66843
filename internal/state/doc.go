// Package state holds the market data shared between the background poller,
// the debounced search and the UI.
//
// # Overview
//
// Store keeps a single Snapshot for the commodity currently being tracked.
// Two producers write to it: the poller refreshing on a fixed cadence and the
// search coordinator settling a user query. The UI reads copies.
//
//	Poller ──┐
//	         ├── store.Update(commodity, series, err) ──→ store.Snapshot() ──→ render
//	Search ──┘
//
// # Update Semantics
//
//	// Success: replace the series
//	store.Update("onion", &series, nil)
//	→ snapshot.Series = series
//	→ snapshot.LastError = nil
//	→ snapshot.ConsecutiveFailures = 0
//
//	// Error: keep the old series, record the error
//	store.Update("onion", nil, err)
//	→ snapshot.Series = <unchanged>
//	→ snapshot.LastError = err
//	→ snapshot.ConsecutiveFailures++
//
// A result for a commodity that is no longer tracked is dropped, so a slow
// poll for "wheat" cannot overwrite data the user just searched for "onion".
// Commodity names compare case-insensitively.
//
// # Defensive Copying
//
// Snapshot clones the record slice and wraps the error so callers can never
// mutate the stored state.
package state
