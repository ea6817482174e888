// Package search provides the building blocks shared by frontier-driven
// searches: an arena of search nodes and interchangeable frontier strategies.
//
// # Search Nodes
//
// A [Tree] stores every node discovered by a search in a flat slice. Nodes
// point at their parent by [NodeID] instead of by pointer, so the tree is
// acyclic by construction and can only be walked from a node back towards
// the root. [Tree.Trace] performs that walk and returns the nodes in
// root-to-leaf order, which is how a solution path is reconstructed.
//
// # Frontiers
//
// A [Frontier] holds discovered-but-not-yet-expanded nodes. Two strategies
// are provided:
//
//   - [NewQueueFrontier]: first in, first out. Expanding nodes in discovery
//     order makes the search breadth-first, which yields shortest paths on
//     unweighted graphs.
//   - [NewStackFrontier]: last in, first out, which makes the search
//     depth-first. Paths found this way are valid but not necessarily short.
//
// Both answer [Frontier.ContainsState] in constant time so a search can skip
// states that are already waiting to be expanded.
//
//	tree := search.NewTree[string, string]()
//	f := search.NewQueueFrontier[string]()
//	f.Push(tree.Root("alice"), "alice")
//	for !f.Empty() {
//	    id, _ := f.Pop()
//	    // expand tree.Node(id).State ...
//	}
//
// Neither type is safe for concurrent use; each search call owns its own.
package search
