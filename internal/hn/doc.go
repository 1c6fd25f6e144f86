// Package hn provides an HTTP client for the Hacker News search API.
//
// # Overview
//
// The client issues GET <endpoint>?query=<term> and decodes the hits array
// into Items. It is the only network surface in hnsearch.
//
// # Architecture
//
//   - client.go: HTTP client, rate limiting, response normalization
//   - types.go: Item plus the wire types mirroring the API payload
//
// # Client Usage
//
//	client, err := hn.NewClient(hn.DefaultEndpoint, hn.ClientOptions{})
//	if err != nil {
//		return err
//	}
//	items, err := client.Search(ctx, "redux")
//
// # Normalization
//
// Hits become Items in server order with these adjustments:
//
//   - hits without an objectID are dropped
//   - a repeated objectID keeps only its first occurrence
//   - num_comments below zero is clamped to zero
//   - title and author are reduced to plain text
//
// The list store relies on the uniqueness guarantee; it does not re-check it.
//
// # Error Handling
//
// Transport failures, non-2xx statuses and malformed JSON are all returned as
// wrapped errors. The client never retries; callers decide what a failure
// means for their state.
//
// # Timeouts
//
// ClientOptions.Timeout defaults to zero, so a request can hang until the
// context passed to Search is cancelled.
package hn
