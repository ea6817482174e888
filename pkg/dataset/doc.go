// Package dataset holds the people/productions collaboration data searched
// by the degrees engine.
//
// # Model
//
// A [Person] starred in a set of productions; a [Production] has a set of
// stars. The two sets cross-reference each other and together form an
// implicit bipartite graph. No adjacency structure is materialized beyond
// these sets: [Dataset.Neighbors] derives the (production, co-star) pairs of
// a person on demand.
//
// # Construction
//
// Datasets are built in a separate phase with a [Builder] and are immutable
// once [Builder.Build] returns. Ingestion is permissive, matching the
// behavior users expect from hand-maintained CSV dumps:
//
//   - rows without an identifier, or repeating an identifier, are skipped
//   - star rows that reference an unknown person or production are dropped
//
// Neither case is an error; both are counted in [LoadStats].
//
//	b := dataset.NewBuilder()
//	b.AddPerson(dataset.Person{ID: "102", Name: "Kevin Bacon", Birth: 1958})
//	b.AddProduction(dataset.Production{ID: "112384", Title: "Apollo 13", Year: 1995})
//	b.AddStar("102", "112384")
//	ds := b.Build()
//
// # Sources
//
// A [Source] loads a dataset from storage. [Open] picks the implementation
// from a location string:
//
//   - a directory with people.csv, movies.csv and stars.csv ([CSVSource])
//   - a SQLite database with people, movies and stars tables ([SQLSource])
//   - a mongodb:// URI with people, movies and stars collections ([MongoSource])
//
// Loaded datasets can be serialized with [Marshal] and restored with
// [Unmarshal], which is how the pipeline caches them between runs.
package dataset
