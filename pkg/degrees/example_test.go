package degrees_test

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/matzehuels/frontier/pkg/dataset"
	"github.com/matzehuels/frontier/pkg/degrees"
)

func ExampleShortestPath() {
	ds, err := dataset.NewCSVSource(filepath.Join("..", "dataset", "testdata", "small")).Load(context.Background())
	if err != nil {
		panic(err)
	}

	source, _ := degrees.Resolve(ds, "Cary Elwes")
	target, _ := degrees.Resolve(ds, "Tom Hanks")

	res, err := degrees.ShortestPath(context.Background(), ds, source, target)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%d degrees of separation.\n", res.Path.Degrees())
	for i, link := range degrees.Describe(ds, source, res.Path) {
		fmt.Printf("%d: %s and %s starred in %s\n", i+1, link.Person1, link.Person2, link.Title)
	}
	// Output:
	// 2 degrees of separation.
	// 1: Cary Elwes and Robin Wright starred in The Princess Bride
	// 2: Robin Wright and Tom Hanks starred in Forrest Gump
}
