// Package state holds the remote list and the transitions that change it.
//
// # Overview
//
// A ListState is the search result collection plus two flags describing the
// request lifecycle. It moves between four observable situations:
//
//	Idle ──FetchStart──> Loading ──FetchSuccess──> Success
//	                        │
//	                        └──FetchFailure──> Error
//
// Success and Error both return to Loading on the next FetchStart. Delete
// edits the collection in any situation and leaves the flags alone.
//
// # Update Semantics
//
//	FetchStart        IsLoading=true, IsError=false, Items kept
//	FetchSuccess(xs)  Items=xs, IsLoading=false, IsError=false
//	FetchFailure(err) IsLoading=false, IsError=true, Items kept
//	Delete(id)        Items without id; absent id is a no-op
//
// Keeping Items across FetchStart and FetchFailure means the last good page
// stays on screen while a refetch runs and after it fails.
//
// # Concurrency Model
//
// Apply is pure. Store is a thin holder around it with no locking; callers
// dispatch from a single goroutine (the Bubble Tea update loop in hnsearch).
// Results of network calls reach the Store only after fetch.Controller has
// checked that they are still current.
package state
