package render

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/frontier/pkg/dataset"
	"github.com/matzehuels/frontier/pkg/degrees"
)

func loadSmall(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.NewCSVSource(filepath.Join("..", "dataset", "testdata", "small")).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return ds
}

var elwesToHanks = degrees.Path{{ProductionID: "93779", PersonID: "705"}, {ProductionID: "109830", PersonID: "158"}}

func TestChainDOT(t *testing.T) {
	ds := loadSmall(t)
	dot := ChainDOT(ds, "144", elwesToHanks, Options{Detailed: true})

	for _, want := range []string{
		"graph chain {",
		`"p:144" [label="Cary Elwes\nb. 1962"`,
		`"m:93779" [label="The Princess Bride\n(1987)", shape=box`,
		`"p:144" -- "m:93779"`,
		`"m:93779" -- "p:705"`,
		`"p:705" -- "m:109830"`,
		`"m:109830" -- "p:158"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ChainDOT missing %q\n%s", want, dot)
		}
	}
	if got := strings.Count(dot, " -- "); got != 4 {
		t.Errorf("ChainDOT has %d edges, want 4", got)
	}
}

func TestChainDOTEmptyPath(t *testing.T) {
	ds := loadSmall(t)
	dot := ChainDOT(ds, "102", nil, Options{})
	if !strings.Contains(dot, `label="Kevin Bacon"`) || strings.Contains(dot, " -- ") {
		t.Errorf("self chain should be a single node:\n%s", dot)
	}
}

func TestDatasetDOT(t *testing.T) {
	ds := loadSmall(t)
	dot, err := DatasetDOT(ds, Options{Source: "144", Path: elwesToHanks})
	if err != nil {
		t.Fatalf("DatasetDOT: %v", err)
	}
	if got := strings.Count(dot, " -- "); got != ds.Stats().Stars {
		t.Errorf("DatasetDOT has %d edges, want %d", got, ds.Stats().Stars)
	}
	if !strings.Contains(dot, `"p:144" -- "m:93779" [color=`) {
		t.Error("chain edge should be highlighted")
	}
	if strings.Contains(dot, `"p:102" -- "m:112384" [color=`) {
		t.Error("edges off the chain should not be highlighted")
	}
	if !strings.Contains(dot, `"p:914612"`) {
		t.Error("isolated people are drawn by default")
	}

	dot, _ = DatasetDOT(ds, Options{HideIsolated: true})
	if strings.Contains(dot, `"p:914612"`) {
		t.Error("HideIsolated should drop people without productions")
	}
}

func TestDatasetDOTTooLarge(t *testing.T) {
	ds := loadSmall(t)
	if _, err := DatasetDOT(ds, Options{MaxNodes: 5}); !errors.Is(err, ErrTooLarge) {
		t.Errorf("error = %v, want ErrTooLarge", err)
	}
	if _, err := DatasetDOT(ds, Options{MaxNodes: -1}); err != nil {
		t.Errorf("negative MaxNodes should disable the limit: %v", err)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50">`) {
		t.Errorf("normalizeViewBox = %s", out)
	}
	if string(normalizeViewBox([]byte("<svg>"))) != "<svg>" {
		t.Error("svg without viewBox should be unchanged")
	}
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz runtime is slow to start")
	}
	ds := loadSmall(t)
	svg, err := RenderSVG(context.Background(), ChainDOT(ds, "144", elwesToHanks, Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") || !strings.Contains(string(svg), "Princess Bride") {
		t.Error("RenderSVG output should be an SVG mentioning the chain")
	}
}
