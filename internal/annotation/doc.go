// Package annotation holds the user's notes and ratings.
//
// Notes map a section identifier to free text; ratings map an item
// identifier to a model.Rating. Every mutation replaces a single entry and
// writes the whole map through to the database before returning, so the
// stored state always equals the in-memory state after each call.
//
// Design decision: A write is applied to a copy of the map and the copy only
// becomes live once the store accepted it. A failed write therefore leaves
// both the memory and the disk at the previous state.
package annotation
