// Package index implements the single-dimension tag index underlying
// tagspace.
//
// An Index maps tag values to the set of objects holding that value. Posting
// lists are Roaring Bitmaps over dense object IDs interned by a Registry,
// which keeps per-value sets compact and makes cross-dimension intersection
// a bitmap AND.
//
// Two operating modes are fixed at construction: exclusive (default), where
// each object holds at most one value and a reverse map makes retagging and
// object removal O(1), and multi (MultiValued), where an object may hold
// several values for the same dimension at once.
//
// Membership is by strong ownership unless WithLiveness installs a probe, in
// which case the index only observes objects owned elsewhere and lazily
// prunes entries whose objects have gone away.
package index
