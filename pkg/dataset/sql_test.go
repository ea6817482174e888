package dataset

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
)

func openMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	stmts := []string{
		`CREATE TABLE people (id INTEGER, name TEXT, birth NUMERIC)`,
		`CREATE TABLE movies (id INTEGER, title TEXT, year NUMERIC)`,
		`CREATE TABLE stars (person_id INTEGER, movie_id INTEGER)`,
		`INSERT INTO people VALUES (102, 'Kevin Bacon', 1958), (158, 'Tom Hanks', NULL), (NULL, 'Nobody', 1900)`,
		`INSERT INTO movies VALUES (112384, 'Apollo 13', 1995)`,
		`INSERT INTO stars VALUES (102, 112384), (158, 112384), (999, 112384)`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			t.Fatalf("%s: %v", s, err)
		}
	}
	return db
}

func TestLoadSQL(t *testing.T) {
	ds, err := LoadSQL(context.Background(), openMemoryDB(t))
	if err != nil {
		t.Fatalf("LoadSQL: %v", err)
	}
	if ds.NumPeople() != 2 {
		t.Errorf("NumPeople() = %d, want 2", ds.NumPeople())
	}
	hanks, ok := ds.Person("158")
	if !ok || hanks.Name != "Tom Hanks" || hanks.Birth != 0 {
		t.Errorf("Person(158) = %+v, %v", hanks, ok)
	}
	m, _ := ds.Production("112384")
	if len(m.Stars) != 2 {
		t.Errorf("Apollo 13 stars = %v, want 2 entries", m.Stars)
	}
	stats := ds.Stats()
	if stats.Skipped != 1 || stats.Dropped != 1 {
		t.Errorf("Stats() = %+v, want Skipped=1 Dropped=1", stats)
	}
}

func TestLoadSQLMissingTable(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	if _, err := LoadSQL(context.Background(), db); err == nil {
		t.Error("LoadSQL should fail without the people table")
	}
}

func TestSQLSourceLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movies.db")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{
		`CREATE TABLE people (id TEXT, name TEXT, birth TEXT)`,
		`CREATE TABLE movies (id TEXT, title TEXT, year TEXT)`,
		`CREATE TABLE stars (person_id TEXT, movie_id TEXT)`,
		`INSERT INTO people VALUES ('1', 'Ada', '1815'), ('2', 'Bob', '')`,
		`INSERT INTO movies VALUES ('m', 'Film', '2001')`,
		`INSERT INTO stars VALUES ('1', 'm'), ('2', 'm')`,
	} {
		if _, err := db.Exec(s); err != nil {
			t.Fatalf("%s: %v", s, err)
		}
	}
	db.Close()

	src := NewSQLSource(path)
	ds, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := ds.Neighbors("1"); len(got) != 1 || got[0].PersonID != "2" {
		t.Errorf("Neighbors(1) = %v", got)
	}
	if fp, err := src.Fingerprint(context.Background()); err != nil || fp == "" {
		t.Errorf("Fingerprint() = %q, %v", fp, err)
	}
}
