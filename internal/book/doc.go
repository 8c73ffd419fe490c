// Package book defines the book record tracked by shelflog and the pieces
// of the add/edit form that sit in front of the store.
//
// A Book is an opaque-id record with a name, genre, rating, optional
// description and a locale-formatted creation date. The store never
// validates records; validation of user input happens here, on a Draft,
// before the store is called.
//
// # Dates
//
// Dates are stored as text exactly as they were formatted when the book was
// created. ParseDate accepts the layouts that have been written over time
// (ISO, day-first slash, he-IL dotted) so that records can be ordered by
// calendar date regardless of which layout produced them.
//
// # Identity
//
// New ids come from an IDGenerator. The default, UUIDv7Generator, embeds a
// millisecond timestamp and random bits, so two books created in the same
// instant still get distinct ids. Ids are otherwise opaque: records created
// with older timestamp ids load and compare the same way.
package book
