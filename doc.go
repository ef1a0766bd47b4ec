// Package tagspace provides an embeddable, in-memory, multi-dimensional tag
// index for Go.
//
// Arbitrary comparable objects are associated with named tags; each tag
// holds one value per object (exclusive mode) or a set of values (multi
// mode). Objects are retrieved by exact value, by membership in a list of
// values, or by an arbitrary predicate over values, across one or more
// dimensions simultaneously with intersection semantics.
//
// # Quick Start
//
//	sp := tagspace.New[int]()
//
//	sp.Tag(tagspace.Tags{"prime": tag.Bool(true)}, 2, 3, 5, 7, 11, 13, 17, 19)
//	sp.Tag(tagspace.Tags{"odd": tag.Bool(true)}, 1, 3, 5, 7, 9, 11, 13, 15, 17, 19)
//
//	objs, _ := sp.Find(tagspace.Query{
//	    "prime": tag.Exact(tag.Bool(true)),
//	    "odd":   tag.Exact(tag.Bool(true)),
//	})
//	// objs: 3, 5, 7, 11, 13, 17, 19 (order unspecified)
//
// # Dimensions
//
// Dimensions can be declared explicitly with constraints or modes:
//
//	sp.Define("score", index.WithConstraint[int](tag.Range(0, 100)))
//	sp.Define("tier", index.WithConstraint[int](tag.Categories("gold", "silver")))
//	sp.Define("alias", index.MultiValued[int]())
//
// With WithStrict, Define is mandatory; otherwise first use of a name on a
// tagging path auto-creates an unconstrained dimension.
//
// # Selectors
//
// Queries and removals accept three selector shapes:
//
//	tag.Exact(tag.String("gold"))                  // exact value
//	tag.OneOf(tag.Int(1), tag.Int(2))              // any of a value list
//	tag.Where(func(v tag.Value) bool { ... })      // arbitrary predicate
//
// # Architecture
//
// Each dimension is an inverted index whose posting lists are Roaring
// Bitmaps over object IDs interned by a registry shared across the space,
// so a multi-dimension query is a bitmap AND. Exclusive dimensions maintain
// a reverse map from object to its single current value, making retagging
// and object removal O(1).
//
// # Concurrency
//
// Reads may run concurrently; mutations take per-dimension write locks.
// Query results are defensive copies. Dimensions created with a liveness
// probe prune dead entries lazily on read, so a query never returns an
// object whose owner has dropped it.
package tagspace
