package search

// NodeID addresses a node inside a [Tree].
type NodeID int

// NoParent is the parent of a root node.
const NoParent NodeID = -1

// Node is one discovered state together with the step that reached it.
// The root has Parent == NoParent and a zero Action.
type Node[S, A any] struct {
	State  S
	Parent NodeID
	Action A
}

// IsRoot reports whether the node starts the search.
func (n Node[S, A]) IsRoot() bool { return n.Parent == NoParent }

// Tree is an append-only arena of search nodes.
// The zero value is ready to use.
type Tree[S, A any] struct {
	nodes []Node[S, A]
}

// NewTree creates an empty tree.
func NewTree[S, A any]() *Tree[S, A] {
	return &Tree[S, A]{}
}

// Root adds a node without parent or action and returns its ID.
func (t *Tree[S, A]) Root(state S) NodeID {
	t.nodes = append(t.nodes, Node[S, A]{State: state, Parent: NoParent})
	return NodeID(len(t.nodes) - 1)
}

// Child adds a node reached from parent via action and returns its ID.
// It panics if parent is not a node of t.
func (t *Tree[S, A]) Child(parent NodeID, state S, action A) NodeID {
	if !t.valid(parent) {
		panic("search: child of unknown parent node")
	}
	t.nodes = append(t.nodes, Node[S, A]{State: state, Parent: parent, Action: action})
	return NodeID(len(t.nodes) - 1)
}

// Node returns the node with the given ID.
// It panics if id is not a node of t.
func (t *Tree[S, A]) Node(id NodeID) Node[S, A] {
	if !t.valid(id) {
		panic("search: unknown node")
	}
	return t.nodes[id]
}

// Len returns the number of nodes discovered so far.
func (t *Tree[S, A]) Len() int { return len(t.nodes) }

// Trace returns the non-root nodes on the way from the root to id, in
// root-to-leaf order. Tracing the root yields an empty slice.
func (t *Tree[S, A]) Trace(id NodeID) []Node[S, A] {
	var path []Node[S, A]
	for n := t.Node(id); !n.IsRoot(); n = t.nodes[n.Parent] {
		path = append(path, n)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func (t *Tree[S, A]) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}
