// Package ui is kisan's Bubble Tea terminal interface.
//
// # Views
//
//   - Prices: headline figures (latest, change, average, range, projection)
//     and a table of recent mandi arrivals for the tracked commodity
//   - Assistant: a question box and a scrolling transcript of answers
//
// Notifications from notify.Queue are drawn as toasts along the bottom edge;
// loading toasts carry a spinner until they are updated.
//
// # Event Flow
//
// Three producers outside the event loop feed it through non-blocking relays:
//
//   - prefs.Store applies the effective scheme to a SchemeRelay; the model
//     swaps palettes when the scheme arrives
//   - notify.Queue and the search coordinator wake a Signal; the model then
//     copies the toast list and the debounce state
//   - the poller writes state.Store; a tick reads a fresh Snapshot
//
// Preference calls made from Update (T, S, L) therefore never wait on the
// program that is running them.
//
// # Search
//
// "/" opens the search box. Each edit restarts the debounce timer; enter
// dispatches at once and esc cancels. The header shows "waiting" while the
// timer runs and a spinner while the fetch is in flight.
//
// # Key Bindings
//
//   - p / a / tab: Prices, Assistant, switch view
//   - /: Search commodity (enter to confirm, esc to cancel)
//   - r: Refresh now
//   - T: Toggle light/dark
//   - S: Follow the system theme
//   - L: Cycle language (English, हिन्दी, मराठी)
//   - j/k, pgup/pgdown: Scroll
//   - h or ?: Help
//   - q or Ctrl+C: Quit
package ui
