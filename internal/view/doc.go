// Package view computes the projection of a book collection that a display
// surface renders: filter by search text, then sort by the selected key.
//
// Projection is pure. Inputs are never modified and every call returns a
// fresh slice, so callers may recompute on every read.
//
// Name matching folds case with Unicode case folding and normalizes to NFC,
// so "book" matches "Book A" and precomposed and decomposed forms of the
// same text match each other. Name ordering uses the collation rules of the
// configured locale.
package view
