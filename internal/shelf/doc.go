// Package shelf is the single source of truth for the book collection.
//
// A Store owns the in-memory collection and the search/sort selection,
// mediates every mutation, and persists the full collection to one durable
// key-value slot after each mutation.
//
// # Operating Model
//
// A Store is driven from one goroutine (the display surface's). Mutations
// update memory synchronously and return a *Pending for the persist that
// follows. The persist encodes the collection as it is at that moment, then
// writes it on another goroutine. Persists are not ordered against each
// other: if two are in flight, the slot ends up holding whichever finished
// writing last.
//
// # Failure Handling
//
// Load and persist failures never panic and never roll back memory. They
// are logged through the Store's logger and reported to the caller as
// *LoadError or *PersistError, which the caller may ignore. A mutation
// whose persist failed is lost on the next cold start.
//
// # Durable Format
//
// The slot holds a JSON array of objects with fields id, name, date,
// rating, genre and optional description. See Encode and Decode.
package shelf
