// Package kv provides the durable key-value slots that hold a serialized
// book collection.
//
// A slot is a single named location holding one opaque text value. Writes
// always overwrite the whole value; there is no append or partial update.
//
// # Backends
//
//   - SQLite: a slots table in a local database file (default)
//   - File: one JSON file per key in a directory, watchable for changes
//   - Memory: process-local map, with failure injection for tests
//
// All backends are safe for concurrent use. Overlapping writes to the same
// key are not ordered: the last write to complete wins.
package kv
