// Package session holds the per-session key/value bags a survey host owns.
//
// Two bags exist per session:
//
//   - the session store, which survives every render pass and holds survey
//     answers and page indexes;
//   - the widget state, which holds the host's ephemeral per-widget values
//     and forgets any widget that was not rendered during the last pass.
//
// Both satisfy Store so callers can inject their own implementation; Memory
// and WidgetState are the in-process defaults.
package session
