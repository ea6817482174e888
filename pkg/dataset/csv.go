package dataset

import (
	"context"
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/frontier/pkg/errors"
)

// CSVSource reads people.csv, movies.csv and stars.csv from a directory.
// Each file starts with a header row; columns are matched by name:
//
//	people.csv: id, name, birth
//	movies.csv: id, title, year
//	stars.csv:  person_id, movie_id
type CSVSource struct {
	Dir string
}

// NewCSVSource creates a source for the given directory.
func NewCSVSource(dir string) *CSVSource {
	return &CSVSource{Dir: dir}
}

func (s *CSVSource) String() string { return "csv:" + s.Dir }

func (s *CSVSource) files() []string {
	return []string{
		filepath.Join(s.Dir, TablePeople+".csv"),
		filepath.Join(s.Dir, TableMovies+".csv"),
		filepath.Join(s.Dir, TableStars+".csv"),
	}
}

// Fingerprint hashes the three CSV files.
func (s *CSVSource) Fingerprint(ctx context.Context) (string, error) {
	return fingerprintFiles(s.files()...)
}

// Load reads the three files in dependency order: people and movies first,
// then the stars join, so dangling references can be detected.
func (s *CSVSource) Load(ctx context.Context) (*Dataset, error) {
	files := s.files()
	b := NewBuilder()

	err := readTable(files[0], []string{"id", "name", "birth"}, func(row map[string]string) {
		_ = b.AddPerson(Person{ID: row["id"], Name: row["name"], Birth: parseYear(row["birth"])})
	}, b.Skip)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	err = readTable(files[1], []string{"id", "title", "year"}, func(row map[string]string) {
		_ = b.AddProduction(Production{ID: row["id"], Title: row["title"], Year: parseYear(row["year"])})
	}, b.Skip)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	err = readTable(files[2], []string{"person_id", "movie_id"}, func(row map[string]string) {
		b.AddStar(row["person_id"], row["movie_id"])
	}, b.Skip)
	if err != nil {
		return nil, err
	}

	return b.Build(), nil
}

// readTable streams a CSV file and calls fn with each row keyed by header.
// Rows that cannot be parsed or lack a required column are passed to skip.
func readTable(path string, required []string, fn func(map[string]string), skip func()) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidSource, err, "open %s", filepath.Base(path))
	}
	defer f.Close()
	return decodeTable(f, filepath.Base(path), required, fn, skip)
}

func decodeTable(r io.Reader, name string, required []string, fn func(map[string]string), skip func()) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return errors.New(errors.ErrCodeInvalidSource, "%s is empty", name)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidSource, err, "read %s header", name)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(col, "\ufeff")))] = i
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return errors.New(errors.ErrCodeInvalidSource, "%s: missing column %q", name, col)
		}
	}

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			var perr *csv.ParseError
			if stderrors.As(err, &perr) {
				skip()
				continue
			}
			return fmt.Errorf("read %s: %w", name, err)
		}

		row := make(map[string]string, len(required))
		complete := true
		for _, col := range required {
			i := index[col]
			if i >= len(rec) {
				complete = false
				break
			}
			row[col] = rec[i]
		}
		if !complete {
			skip()
			continue
		}
		fn(row)
	}
}
