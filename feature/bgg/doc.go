// Package bgg is the client for the BoardGameGeek XML API 2.
//
// # Fetching
//
// Client.Fetch issues one GET and follows the export protocol of the API: a 202
// answer means the requested collection export is still being prepared, so the
// request is repeated after a fixed delay until a 200 arrives or the retry cap is
// reached. Every terminal failure is a *FetchError matching ErrRetryExhausted,
// ErrUnexpectedStatus or ErrTransport.
//
// # Parsing
//
//   - ParseCollection: brief collection export to CollectionItem values.
//   - DecodeThings: raw thing entries, used for inspection.
//   - ParseThings: ThingRecord payloads plus the LinkMap of one relation,
//     restricted to targets in the owned game set.
//
// Missing or non-numeric player counts and play times fail with ErrDataShape.
package bgg
