package degrees

import (
	"context"

	"github.com/matzehuels/frontier/pkg/dataset"
	"github.com/matzehuels/frontier/pkg/errors"
	"github.com/matzehuels/frontier/pkg/search"
)

// Graph is the data the search needs. [*dataset.Dataset] satisfies it.
type Graph interface {
	// Neighbors returns the (production, person) pairs adjacent to a person
	// in a stable order. A person is never their own neighbor.
	Neighbors(personID string) []dataset.Neighbor
	// HasPerson reports whether the ID names a known person.
	HasPerson(personID string) bool
}

// Step is one hop in a chain: the production shared with the previous
// person, and the person reached through it.
type Step struct {
	ProductionID string `json:"production_id"`
	PersonID     string `json:"person_id"`
}

// Path is the chain of steps from the source, who is not included, to the
// target, who is the last step's person.
type Path []Step

// Degrees returns the number of steps in the chain.
func (p Path) Degrees() int { return len(p) }

// Result is the outcome of a search. A search that exhausts the frontier
// without reaching the target is not an error: it returns a Result with
// Connected set to false.
type Result struct {
	Path      Path `json:"path"`
	Connected bool `json:"connected"`
	// Explored counts people removed from the frontier and expanded.
	Explored int `json:"explored"`
}

// Option configures a search.
type Option func(*options)

type options struct {
	frontier func() search.Frontier[string]
}

// WithFrontier selects the frontier strategy. The default is
// [search.KindQueue], which yields shortest chains.
func WithFrontier(kind search.Kind) Option {
	return func(o *options) {
		o.frontier = func() search.Frontier[string] { return search.New[string](kind) }
	}
}

// WithFrontierFunc supplies a frontier constructor directly. It is called
// once per search.
func WithFrontierFunc(fn func() search.Frontier[string]) Option {
	return func(o *options) {
		if fn != nil {
			o.frontier = fn
		}
	}
}

// ShortestPath searches for a chain connecting source to target.
//
// Both IDs must name known people, otherwise the error has code
// [errors.ErrCodeNotFound]. When source equals target the result is
// connected with an empty path. The context is checked before each
// expansion; a cancelled search returns the context's error.
func ShortestPath(ctx context.Context, g Graph, source, target string, opts ...Option) (Result, error) {
	o := options{frontier: func() search.Frontier[string] { return search.NewQueueFrontier[string]() }}
	for _, opt := range opts {
		opt(&o)
	}

	for _, id := range []string{source, target} {
		if !g.HasPerson(id) {
			return Result{}, errors.New(errors.ErrCodeNotFound, "person %q not found", id)
		}
	}
	if source == target {
		return Result{Path: Path{}, Connected: true}, nil
	}

	tree := search.NewTree[string, string]()
	frontier := o.frontier()
	frontier.Push(tree.Root(source), source)
	explored := make(map[string]struct{})

	var res Result
	for {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		id, ok := frontier.Pop()
		if !ok {
			return res, nil
		}
		node := tree.Node(id)
		explored[node.State] = struct{}{}
		res.Explored++

		for _, n := range g.Neighbors(node.State) {
			if _, seen := explored[n.PersonID]; seen || frontier.ContainsState(n.PersonID) {
				continue
			}
			child := tree.Child(id, n.PersonID, n.ProductionID)
			if n.PersonID == target {
				res.Path = tracePath(tree, child)
				res.Connected = true
				return res, nil
			}
			frontier.Push(child, n.PersonID)
		}
	}
}

func tracePath(tree *search.Tree[string, string], leaf search.NodeID) Path {
	nodes := tree.Trace(leaf)
	path := make(Path, len(nodes))
	for i, n := range nodes {
		path[i] = Step{ProductionID: n.Action, PersonID: n.State}
	}
	return path
}
