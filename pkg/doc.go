// Package pkg provides the core libraries for frontier, a toolkit of
// classic search problems over real data.
//
// # Overview
//
// Frontier answers two kinds of questions:
//
//   - How many co-star links separate two people in a movie dataset
//     ("degrees of separation"), found by breadth-first search.
//   - What the best tic-tac-toe move is from any reachable position, found
//     by minimax with alpha-beta pruning.
//
// The pkg directory is organized into four areas:
//
//  1. Search - [search], [degrees], [game/minimax], [game/tictactoe]
//  2. Data - [dataset] (CSV, SQLite, MongoDB and snapshot sources)
//  3. Infrastructure - [cache], [config], [errors], [observability]
//  4. Orchestration - [pipeline], [render], [api]
//
// # Architecture
//
// The typical data flow for a degrees query:
//
//	CSV directory / SQLite file / MongoDB / snapshot
//	         ↓
//	    [dataset] package (load and index people, productions, credits)
//	         ↓
//	    [cache] package (JSON snapshot keyed by the source fingerprint)
//	         ↓
//	    [degrees] package (BFS over the person/production graph)
//	         ↓
//	    text, JSON, DOT or SVG
//
// # Quick Start
//
//	src, _ := dataset.Open("testdata/small")
//	ds, _ := src.Load(ctx)
//	source, _ := degrees.Resolve(ds, "Kevin Bacon")
//	target, _ := degrees.Resolve(ds, "Tom Hanks")
//	res, _ := degrees.ShortestPath(ctx, ds, source, target)
//	for _, link := range degrees.Describe(ds, source, res.Path) {
//	    fmt.Printf("%s and %s starred in %s\n", link.Person1, link.Person2, link.Title)
//	}
//
// The same through [pipeline.Runner], which adds caching, timeouts and
// observability hooks:
//
//	r := pipeline.NewRunner(c, cache.NewDefaultKeyer(), logger)
//	ds, _ := r.LoadDataset(ctx, pipeline.Options{Dataset: "testdata/small"})
//	res, _ := r.ShortestPath(ctx, ds, source, target, pipeline.Options{})
//
// Tic-tac-toe:
//
//	b := tictactoe.MustParse("X.O/.X./...")
//	res, _ := minimax.BestMove(ctx, tictactoe.Rules{}, b)
//
// # Testing
//
//	go test ./...                          # All tests
//	go test ./pkg/degrees/...              # Specific package
//	FRONTIER_TEST_REDIS_ADDR=localhost:6379 go test ./pkg/cache/...
package pkg
