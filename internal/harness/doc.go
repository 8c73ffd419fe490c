// Package harness runs scripted scenarios against a book store.
//
// A scenario drives a shelf.Store backed by in-memory storage through a
// sequence of steps and checks the collection, the projection and the
// stored slot along the way. Every step is recorded in a trace that can be
// compared against a golden file.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: end_to_end
//	description: "Add, sort, delete"
//	locale: en              # optional, defaults to Hebrew collation
//	seed: '[]'              # optional raw slot payload before the first load
//	steps:
//	  - add: { id: "1", name: "Book A", date: "2024-02-25", rating: 5, genre: "פרוזה" }
//	  - sort: rating
//	  - expect:
//	      visible: ["Book A"]
//	  - delete: "1"
//	assertions:
//	  - type: trace_count
//	    op: add
//	    count: 1
//	  - type: final_state
//	    expect: { count: 0, stored: 0 }
//
// # Steps
//
// Each step holds one action, optionally followed by an expect block that
// is checked after the action runs. A step may also be a bare expect.
//
//   - add, update: a full book record
//   - delete: a book id
//   - clear: true
//   - replace: a list of book records
//   - search, sort: change the selection (sort keys are passed through
//     unparsed, so unknown keys can be exercised)
//   - reload: true
//   - fail_writes, fail_reads: inject or lift storage failures
//   - corrupt: overwrite the stored slot with a raw payload
//
// Mutations wait for their persist to finish before the next step, so
// traces are deterministic.
//
// # Assertion Types
//
//   - trace_contains: an op appears with matching args (subset match)
//   - trace_order: ops appear in the given order
//   - trace_count: an op appears exactly N times
//   - final_state: the final state matches (subset match); keys are
//     count, stored, collection, visible, ids, search, sort
package harness
