package dataset

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/frontier/pkg/errors"
)

// snapshot is the serialized form of a Dataset. Cross-references are stored
// once, on the person side, and rebuilt on decode.
type snapshot struct {
	People      []Person     `json:"people" toml:"people"`
	Productions []Production `json:"productions" toml:"productions"`
	Stats       LoadStats    `json:"stats" toml:"stats"`
}

func toSnapshot(d *Dataset) snapshot {
	prods := d.Productions()
	for i := range prods {
		prods[i].Stars = nil
	}
	return snapshot{People: d.People(), Productions: prods, Stats: d.stats}
}

// Marshal encodes a dataset as JSON. Records are ordered by ID, so equal
// datasets produce identical bytes.
func Marshal(d *Dataset) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteJSON writes a dataset as JSON to w.
func WriteJSON(d *Dataset, w io.Writer) error {
	if err := json.NewEncoder(w).Encode(toSnapshot(d)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteTOML writes a dataset as TOML to w, one [[people]] and one
// [[productions]] table per record.
func WriteTOML(d *Dataset, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(toSnapshot(d)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Unmarshal decodes a dataset produced by [Marshal]. The original load
// statistics are preserved.
func Unmarshal(data []byte) (*Dataset, error) {
	var s snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return fromSnapshot(s), nil
}

// ReadTOML decodes a dataset produced by [WriteTOML].
func ReadTOML(r io.Reader) (*Dataset, error) {
	var s snapshot
	if _, err := toml.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return fromSnapshot(s), nil
}

func fromSnapshot(s snapshot) *Dataset {
	b := NewBuilder()
	for _, p := range s.People {
		_ = b.AddPerson(p)
	}
	for _, m := range s.Productions {
		_ = b.AddProduction(m)
	}
	for _, p := range s.People {
		for _, mid := range p.Productions {
			b.AddStar(p.ID, mid)
		}
	}
	d := b.Build()
	d.stats = s.Stats
	return d
}

// SnapshotSource loads a dataset exported as JSON or TOML.
type SnapshotSource struct {
	Path string
}

func (s *SnapshotSource) String() string { return s.Path }

// Fingerprint hashes the snapshot file.
func (s *SnapshotSource) Fingerprint(ctx context.Context) (string, error) {
	return fingerprintFiles(s.Path)
}

// Load reads the snapshot; the format follows the file extension.
func (s *SnapshotSource) Load(ctx context.Context) (*Dataset, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "open snapshot %s", s.Path)
	}
	defer f.Close()

	var d *Dataset
	if strings.EqualFold(filepath.Ext(s.Path), ".toml") {
		d, err = ReadTOML(f)
	} else {
		var data []byte
		if data, err = io.ReadAll(f); err == nil {
			d, err = Unmarshal(data)
		}
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "read snapshot %s", s.Path)
	}
	return d, nil
}
