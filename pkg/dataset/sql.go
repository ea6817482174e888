package dataset

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/matzehuels/frontier/pkg/errors"
)

// SQLSource reads a SQLite database with the classic movies schema:
//
//	people(id, name, birth)
//	movies(id, title, year)
//	stars(movie_id, person_id)
//
// Integer identifiers are converted to their decimal string form.
type SQLSource struct {
	Path string
}

// NewSQLSource creates a source for the SQLite file at path.
func NewSQLSource(path string) *SQLSource {
	return &SQLSource{Path: path}
}

func (s *SQLSource) String() string { return "sqlite:" + s.Path }

// Fingerprint hashes the database file.
func (s *SQLSource) Fingerprint(ctx context.Context) (string, error) {
	return fingerprintFiles(s.Path)
}

// Load opens the database read-only and reads all three tables.
func (s *SQLSource) Load(ctx context.Context) (*Dataset, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", s.Path))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "open %s", s.Path)
	}
	defer db.Close()
	return LoadSQL(ctx, db)
}

const (
	queryPeople = `SELECT CAST(id AS TEXT), COALESCE(name, ''), COALESCE(CAST(birth AS TEXT), '') FROM people`
	queryMovies = `SELECT CAST(id AS TEXT), COALESCE(title, ''), COALESCE(CAST(year AS TEXT), '') FROM movies`
	queryStars  = `SELECT CAST(person_id AS TEXT), CAST(movie_id AS TEXT) FROM stars`
)

// LoadSQL builds a dataset from an open database handle. Rows with NULL
// identifiers are skipped; stars referencing unknown rows are dropped.
func LoadSQL(ctx context.Context, db *sql.DB) (*Dataset, error) {
	b := NewBuilder()

	err := scanRows(ctx, db, queryPeople, TablePeople, func(cols []sql.NullString) {
		_ = b.AddPerson(Person{ID: cols[0].String, Name: cols[1].String, Birth: parseYear(cols[2].String)})
	}, b.Skip)
	if err != nil {
		return nil, err
	}

	err = scanRows(ctx, db, queryMovies, TableMovies, func(cols []sql.NullString) {
		_ = b.AddProduction(Production{ID: cols[0].String, Title: cols[1].String, Year: parseYear(cols[2].String)})
	}, b.Skip)
	if err != nil {
		return nil, err
	}

	err = scanRows(ctx, db, queryStars, TableStars, func(cols []sql.NullString) {
		b.AddStar(cols[0].String, cols[1].String)
	}, b.Skip)
	if err != nil {
		return nil, err
	}

	return b.Build(), nil
}

func scanRows(ctx context.Context, db *sql.DB, query, table string, fn func([]sql.NullString), skip func()) error {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidSource, err, "query %s", table)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("columns of %s: %w", table, err)
	}
	vals := make([]sql.NullString, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			skip()
			continue
		}
		if !vals[0].Valid {
			skip()
			continue
		}
		fn(vals)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("read %s: %w", table, err)
	}
	return nil
}
