package degrees

import (
	"context"
	stderrors "errors"
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"slices"
	"testing"

	"github.com/matzehuels/frontier/pkg/dataset"
	"github.com/matzehuels/frontier/pkg/errors"
	"github.com/matzehuels/frontier/pkg/search"
)

func loadSmall(t testing.TB) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.NewCSVSource(filepath.Join("..", "dataset", "testdata", "small")).Load(context.Background())
	if err != nil {
		t.Fatalf("load small dataset: %v", err)
	}
	return ds
}

// build creates a dataset from a production -> stars table.
func build(people []string, cast map[string][]string) *dataset.Dataset {
	b := dataset.NewBuilder()
	for _, p := range people {
		b.AddPerson(dataset.Person{ID: p, Name: "Person " + p})
	}
	for m, stars := range cast {
		b.AddProduction(dataset.Production{ID: m, Title: "Title " + m})
		for _, s := range stars {
			b.AddStar(s, m)
		}
	}
	return b.Build()
}

// distance is a plain level-by-level BFS used as a reference.
func distance(g Graph, source, target string) int {
	if source == target {
		return 0
	}
	seen := map[string]bool{source: true}
	level := []string{source}
	for d := 1; len(level) > 0; d++ {
		var next []string
		for _, p := range level {
			for _, n := range g.Neighbors(p) {
				if n.PersonID == target {
					return d
				}
				if !seen[n.PersonID] {
					seen[n.PersonID] = true
					next = append(next, n.PersonID)
				}
			}
		}
		level = next
	}
	return -1
}

// checkPath verifies every step links consecutive people.
func checkPath(t *testing.T, ds *dataset.Dataset, source, target string, path Path) {
	t.Helper()
	if len(path) == 0 {
		if source != target {
			t.Fatalf("empty path from %s to %s", source, target)
		}
		return
	}
	prev := source
	for i, step := range path {
		m, ok := ds.Production(step.ProductionID)
		if !ok {
			t.Fatalf("step %d: unknown production %s", i, step.ProductionID)
		}
		if !slices.Contains(m.Stars, prev) || !slices.Contains(m.Stars, step.PersonID) {
			t.Fatalf("step %d: %s does not link %s and %s", i, step.ProductionID, prev, step.PersonID)
		}
		prev = step.PersonID
	}
	if prev != target {
		t.Fatalf("path ends at %s, want %s", prev, target)
	}
}

func TestShortestPathSmall(t *testing.T) {
	ds := loadSmall(t)
	tests := []struct {
		name           string
		source, target string
		degrees        int
		connected      bool
	}{
		{"bacon-cruise", "102", "129", 1, true},
		{"bacon-hanks", "102", "158", 1, true},
		{"elwes-hanks", "144", "158", 2, true},
		{"hoffman-bacon", "163", "102", 2, true},
		{"elwes-hoffman", "144", "163", 5, true},
		{"watson-bacon", "914612", "102", 0, false},
		{"self", "102", "102", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ShortestPath(context.Background(), ds, tt.source, tt.target)
			if err != nil {
				t.Fatalf("ShortestPath: %v", err)
			}
			if res.Connected != tt.connected {
				t.Fatalf("Connected = %v, want %v", res.Connected, tt.connected)
			}
			if !tt.connected {
				if len(res.Path) != 0 {
					t.Errorf("disconnected result has path %v", res.Path)
				}
				return
			}
			if got := res.Path.Degrees(); got != tt.degrees {
				t.Errorf("Degrees() = %d, want %d (path %v)", got, tt.degrees, res.Path)
			}
			checkPath(t, ds, tt.source, tt.target, res.Path)
		})
	}
}

func TestShortestPathSelfIsEmpty(t *testing.T) {
	ds := loadSmall(t)
	res, err := ShortestPath(context.Background(), ds, "914612", "914612")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Connected || res.Path == nil || len(res.Path) != 0 || res.Explored != 0 {
		t.Errorf("self search = %+v, want connected empty path without expansion", res)
	}
}

func TestShortestPathUnknownPerson(t *testing.T) {
	ds := loadSmall(t)
	for _, pair := range [][2]string{{"nope", "102"}, {"102", "nope"}} {
		_, err := ShortestPath(context.Background(), ds, pair[0], pair[1])
		if !errors.Is(err, errors.ErrCodeNotFound) {
			t.Errorf("ShortestPath(%s, %s) error = %v, want NOT_FOUND", pair[0], pair[1], err)
		}
	}
}

func TestShortestPathThroughIntermediary(t *testing.T) {
	ds := build([]string{"a", "b", "c"}, map[string][]string{
		"m1": {"a", "b"},
		"m2": {"b", "c"},
	})
	res, err := ShortestPath(context.Background(), ds, "a", "c")
	if err != nil {
		t.Fatal(err)
	}
	want := Path{{"m1", "b"}, {"m2", "c"}}
	if !slices.Equal(res.Path, want) {
		t.Errorf("Path = %v, want %v", res.Path, want)
	}
}

func TestShortestPathRecordsFirstProduction(t *testing.T) {
	ds := build([]string{"a", "b"}, map[string][]string{
		"m2": {"a", "b"},
		"m1": {"a", "b"},
		"m3": {"a", "b"},
	})
	res, _ := ShortestPath(context.Background(), ds, "a", "b")
	if len(res.Path) != 1 || res.Path[0].ProductionID != "m1" {
		t.Errorf("Path = %v, want the lowest production m1", res.Path)
	}
}

func TestShortestPathStopsAtDiscovery(t *testing.T) {
	// a is linked to b directly; a long detour through c and d exists too.
	ds := build([]string{"a", "b", "c", "d"}, map[string][]string{
		"m1": {"a", "c"},
		"m2": {"c", "d"},
		"m3": {"d", "b"},
		"m4": {"a", "b"},
	})
	res, _ := ShortestPath(context.Background(), ds, "a", "b")
	if res.Explored != 1 {
		t.Errorf("Explored = %d, want 1: the goal must be tested on generation", res.Explored)
	}
	if res.Path.Degrees() != 1 {
		t.Errorf("Degrees() = %d, want 1", res.Path.Degrees())
	}
}

func TestShortestPathMatchesReference(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	for trial := range 40 {
		var people []string
		for i := range 30 {
			people = append(people, fmt.Sprintf("p%02d", i))
		}
		cast := make(map[string][]string)
		for m := range 18 {
			n := 1 + r.IntN(3)
			for range n {
				cast[fmt.Sprintf("m%02d", m)] = append(cast[fmt.Sprintf("m%02d", m)], people[r.IntN(len(people))])
			}
		}
		ds := build(people, cast)

		source, target := people[r.IntN(len(people))], people[r.IntN(len(people))]
		want := distance(ds, source, target)
		res, err := ShortestPath(context.Background(), ds, source, target)
		if err != nil {
			t.Fatalf("trial %d: %v", trial, err)
		}
		if want < 0 {
			if res.Connected {
				t.Errorf("trial %d: %s-%s connected via %v, reference says no", trial, source, target, res.Path)
			}
			continue
		}
		if !res.Connected || res.Path.Degrees() != want {
			t.Errorf("trial %d: %s-%s = %v (connected %v), want %d degrees", trial, source, target, res.Path, res.Connected, want)
			continue
		}
		checkPath(t, ds, source, target, res.Path)
	}
}

func TestShortestPathStackFrontier(t *testing.T) {
	ds := loadSmall(t)
	res, err := ShortestPath(context.Background(), ds, "144", "163", WithFrontier(search.KindStack))
	if err != nil {
		t.Fatal(err)
	}
	if !res.Connected {
		t.Fatal("stack frontier should still find a chain")
	}
	checkPath(t, ds, "144", "163", res.Path)
}

type countingFrontier struct {
	search.Frontier[string]
	pops int
}

func (f *countingFrontier) Pop() (search.NodeID, bool) {
	f.pops++
	return f.Frontier.Pop()
}

func TestShortestPathCustomFrontier(t *testing.T) {
	ds := loadSmall(t)
	var f *countingFrontier
	res, err := ShortestPath(context.Background(), ds, "144", "158", WithFrontierFunc(func() search.Frontier[string] {
		f = &countingFrontier{Frontier: search.NewQueueFrontier[string]()}
		return f
	}))
	if err != nil {
		t.Fatal(err)
	}
	if f == nil || f.pops != res.Explored {
		t.Errorf("custom frontier not used: pops=%v explored=%d", f, res.Explored)
	}
}

func TestShortestPathCancelled(t *testing.T) {
	ds := loadSmall(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ShortestPath(ctx, ds, "144", "163")
	if !stderrors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestDescribe(t *testing.T) {
	ds := loadSmall(t)
	path := Path{{"93779", "705"}, {"109830", "158"}}
	got := Describe(ds, "144", path)
	want := []Link{
		{"Cary Elwes", "Robin Wright", "The Princess Bride"},
		{"Robin Wright", "Tom Hanks", "Forrest Gump"},
	}
	if !slices.Equal(got, want) {
		t.Errorf("Describe = %v, want %v", got, want)
	}

	if got := Describe(ds, "102", Path{{"zz", "yy"}}); got[0] != (Link{"Kevin Bacon", "yy", "zz"}) {
		t.Errorf("unknown IDs should fall back to the raw ID, got %v", got[0])
	}
}

func BenchmarkShortestPath(b *testing.B) {
	ds := loadSmall(b)
	ctx := context.Background()
	for b.Loop() {
		ShortestPath(ctx, ds, "144", "163")
	}
}
