package dataset

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matzehuels/frontier/pkg/errors"
)

// Table names shared by every source. They follow the layout of the IMDb
// extracts the tool was written for: people, movies and the stars join.
const (
	TablePeople = "people"
	TableMovies = "movies"
	TableStars  = "stars"
)

// DefaultMongoDatabase is used when a MongoDB URI names no database.
const DefaultMongoDatabase = "degrees"

// Source loads a dataset from storage.
type Source interface {
	// String describes the source for logs and messages.
	String() string
	// Fingerprint identifies the current content of the source. Equal
	// fingerprints imply equal datasets. An empty fingerprint means the
	// source cannot be fingerprinted and must not be cached.
	Fingerprint(ctx context.Context) (string, error)
	// Load reads and validates the dataset.
	Load(ctx context.Context) (*Dataset, error)
}

// Open returns the source for a location string:
//
//   - mongodb:// and mongodb+srv:// URIs open a [MongoSource]
//   - "sqlite:<path>" or a *.db, *.sqlite, *.sqlite3 file opens a [SQLSource]
//   - a *.json or *.toml file opens a [SnapshotSource]
//   - anything else must be a directory and opens a [CSVSource]
func Open(location string) (Source, error) {
	if err := errors.ValidateSource(location); err != nil {
		return nil, err
	}

	switch {
	case strings.HasPrefix(location, "mongodb://"), strings.HasPrefix(location, "mongodb+srv://"):
		u, err := url.Parse(location)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "parse MongoDB URI")
		}
		db := strings.Trim(u.Path, "/")
		if db == "" {
			db = DefaultMongoDatabase
		}
		return &MongoSource{URI: location, Database: db}, nil
	case strings.HasPrefix(location, "sqlite:"):
		return NewSQLSource(strings.TrimPrefix(location, "sqlite:")), nil
	}

	switch strings.ToLower(filepath.Ext(location)) {
	case ".db", ".sqlite", ".sqlite3":
		return NewSQLSource(location), nil
	case ".json", ".toml":
		return &SnapshotSource{Path: location}, nil
	}

	info, err := os.Stat(location)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "open dataset %s", location)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidSource, "dataset %s is neither a directory nor a database", location)
	}
	return NewCSVSource(location), nil
}

// fingerprintFiles hashes the named files in order.
func fingerprintFiles(paths ...string) (string, error) {
	h := sha256.New()
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return "", err
		}
		_, err = io.Copy(h, f)
		f.Close()
		if err != nil {
			return "", fmt.Errorf("hash %s: %w", p, err)
		}
		fmt.Fprintf(h, "\x00%s\x00", filepath.Base(p))
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// parseYear reads a year column leniently; anything unparsable is unknown.
func parseYear(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if y, err := strconv.Atoi(s); err == nil {
		return y
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}
