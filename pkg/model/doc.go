// Package model defines declarative survey definitions. A Definition is a
// labelled list of pages, each holding the questions drawn on that page.
// Definitions are loaded from JSON or YAML, normalised and validated before
// the orchestrator turns them into survey components. Question ids and labels
// may contain the `{page}` placeholder, expanded to the zero based page index
// when the page is drawn, so a single page template can be repeated.
package model
