// Package orchestrator runs declarative survey definitions against a render
// host. Each call to Pass is one render pass: it rebuilds the survey and page
// controller, draws the visible questions of the current page and the
// navigation, and reports what happened.
package orchestrator
