// Package ui is the Bubble Tea front end for hnsearch.
//
// The model renders the search input, a loading spinner, the last error and
// the current result list from a state.Store snapshot. It never mutates list
// state itself: submissions go through query.Controller and fetch.Controller,
// and removals are dispatched as state.Delete actions.
//
// # Keys
//
//   - enter: submit the draft (ignored while the draft is blank)
//   - up/down: move the selection
//   - ctrl+d: remove the selected story from the list
//   - ctrl+t: cycle the color theme, remembered across runs
//   - esc, ctrl+c: quit
//
// Every other key edits the draft, which is persisted as it changes but only
// searched on enter.
package ui
