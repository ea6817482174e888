package search

import "errors"

// ErrEmptyFrontier is returned by [MustPop] when nothing is left to expand.
var ErrEmptyFrontier = errors.New("empty frontier")

// Frontier is the working set of discovered-but-not-yet-expanded nodes.
// Implementations differ only in which node Pop hands out next.
type Frontier[S comparable] interface {
	// Push adds a node and the state it holds.
	Push(id NodeID, state S)
	// Pop removes the next node according to the strategy.
	// It returns false when the frontier is empty.
	Pop() (NodeID, bool)
	// Empty reports whether no nodes are waiting.
	Empty() bool
	// ContainsState reports whether a waiting node holds state.
	ContainsState(state S) bool
	// Len returns the number of waiting nodes.
	Len() int
}

// Kind names a frontier strategy, as used in configuration.
type Kind string

const (
	KindQueue Kind = "queue"
	KindStack Kind = "stack"
)

// New returns an empty frontier of the given kind.
// Unknown kinds yield a queue, which keeps searches breadth-first.
func New[S comparable](kind Kind) Frontier[S] {
	if kind == KindStack {
		return NewStackFrontier[S]()
	}
	return NewQueueFrontier[S]()
}

// MustPop removes the next node or returns ErrEmptyFrontier.
func MustPop[S comparable](f Frontier[S]) (NodeID, error) {
	id, ok := f.Pop()
	if !ok {
		return 0, ErrEmptyFrontier
	}
	return id, nil
}

type entry[S comparable] struct {
	id    NodeID
	state S
}

// states counts waiting nodes per state so membership is O(1).
type states[S comparable] map[S]int

func (s states[S]) add(state S) { s[state]++ }

func (s states[S]) remove(state S) {
	if s[state] <= 1 {
		delete(s, state)
		return
	}
	s[state]--
}

// StackFrontier hands out the most recently pushed node first.
type StackFrontier[S comparable] struct {
	items  []entry[S]
	states states[S]
}

// NewStackFrontier creates an empty LIFO frontier.
func NewStackFrontier[S comparable]() *StackFrontier[S] {
	return &StackFrontier[S]{states: states[S]{}}
}

func (f *StackFrontier[S]) Push(id NodeID, state S) {
	f.items = append(f.items, entry[S]{id: id, state: state})
	f.states.add(state)
}

func (f *StackFrontier[S]) Pop() (NodeID, bool) {
	if len(f.items) == 0 {
		return 0, false
	}
	last := f.items[len(f.items)-1]
	f.items = f.items[:len(f.items)-1]
	f.states.remove(last.state)
	return last.id, true
}

func (f *StackFrontier[S]) Empty() bool                { return len(f.items) == 0 }
func (f *StackFrontier[S]) ContainsState(state S) bool { return f.states[state] > 0 }
func (f *StackFrontier[S]) Len() int                   { return len(f.items) }

// QueueFrontier hands out nodes in the order they were pushed.
type QueueFrontier[S comparable] struct {
	items  []entry[S]
	head   int
	states states[S]
}

// NewQueueFrontier creates an empty FIFO frontier.
func NewQueueFrontier[S comparable]() *QueueFrontier[S] {
	return &QueueFrontier[S]{states: states[S]{}}
}

func (f *QueueFrontier[S]) Push(id NodeID, state S) {
	f.items = append(f.items, entry[S]{id: id, state: state})
	f.states.add(state)
}

func (f *QueueFrontier[S]) Pop() (NodeID, bool) {
	if f.head == len(f.items) {
		return 0, false
	}
	first := f.items[f.head]
	f.items[f.head] = entry[S]{}
	f.head++
	// Reclaim the consumed prefix once it dominates the backing array.
	if f.head > 64 && f.head*2 >= len(f.items) {
		f.items = append(f.items[:0], f.items[f.head:]...)
		f.head = 0
	}
	f.states.remove(first.state)
	return first.id, true
}

func (f *QueueFrontier[S]) Empty() bool                { return f.head == len(f.items) }
func (f *QueueFrontier[S]) ContainsState(state S) bool { return f.states[state] > 0 }
func (f *QueueFrontier[S]) Len() int                   { return len(f.items) - f.head }

var (
	_ Frontier[string] = (*StackFrontier[string])(nil)
	_ Frontier[string] = (*QueueFrontier[string])(nil)
)
