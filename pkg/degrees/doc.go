// Package degrees finds the shortest chain of shared productions connecting
// two people, the "degrees of separation" between them.
//
// People and productions form an implicit bipartite graph: a person is
// adjacent to every production they starred in, and a production to every
// star. [ShortestPath] searches that graph one person at a time, treating
// two people as neighbors when they share a production, and returns the
// chain as a [Path] of steps. Each step names the production that links the
// previous person to the next one.
//
// # Search
//
// The search is breadth-first by default, which guarantees a chain with
// the fewest steps. [WithFrontier] swaps the frontier strategy; a stack
// frontier still returns a valid chain, but not necessarily a shortest one.
// The goal is tested when a neighbor is generated rather than when it is
// expanded, so the search stops as soon as the target is discovered.
//
// Expansion order follows [dataset.Dataset.Neighbors], which sorts by
// production ID then person ID. Among several shortest chains the one that
// is discovered first in that order wins, so results are reproducible.
//
// # Names
//
// People are identified by ID. [Resolve] and [ResolveWith] map a
// user-supplied name to exactly one ID before a search runs; homonyms are
// reported as an [*AmbiguousError] or settled by a [Chooser].
//
//	src, err := degrees.Resolve(ds, "Kevin Bacon")
//	dst, err := degrees.Resolve(ds, "Tom Hanks")
//	res, err := degrees.ShortestPath(ctx, ds, src, dst)
//	if res.Connected {
//	    for i, link := range degrees.Describe(ds, src, res.Path) {
//	        fmt.Printf("%d: %s and %s starred in %s\n", i+1, link.Person1, link.Person2, link.Title)
//	    }
//	}
package degrees
