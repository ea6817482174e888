package dataset

import (
	"errors"
	"maps"
	"slices"
	"strings"
)

var (
	// ErrMissingID is returned by [Builder.AddPerson] and
	// [Builder.AddProduction] for records without an identifier.
	ErrMissingID = errors.New("record has no identifier")

	// ErrDuplicateID is returned when a person or production identifier has
	// already been added. The first record wins.
	ErrDuplicateID = errors.New("duplicate record identifier")
)

// Person is someone who starred in productions.
// Names are not unique; the ID is.
type Person struct {
	ID          string   `json:"id" toml:"id"`
	Name        string   `json:"name" toml:"name"`
	Birth       int      `json:"birth,omitempty" toml:"birth,omitempty"` // 0 when unknown
	Productions []string `json:"productions,omitempty" toml:"productions,omitempty"`
}

// Production is a movie or show with a set of stars.
type Production struct {
	ID    string   `json:"id" toml:"id"`
	Title string   `json:"title" toml:"title"`
	Year  int      `json:"year,omitempty" toml:"year,omitempty"` // 0 when unknown
	Stars []string `json:"stars,omitempty" toml:"stars,omitempty"`
}

// Neighbor is a co-star reached through a shared production.
type Neighbor struct {
	ProductionID string
	PersonID     string
}

// LoadStats counts what ingestion kept and what it tolerated.
type LoadStats struct {
	People      int `json:"people" toml:"people"`
	Productions int `json:"productions" toml:"productions"`
	Stars       int `json:"stars" toml:"stars"`
	Skipped     int `json:"skipped" toml:"skipped"` // malformed or duplicate rows
	Dropped     int `json:"dropped" toml:"dropped"` // star rows with dangling references
}

// Dataset is an immutable, validated collaboration graph.
// It is safe for concurrent readers.
type Dataset struct {
	people      map[string]*Person
	productions map[string]*Production
	names       map[string][]string // lower-cased name -> sorted person IDs
	stats       LoadStats
}

// Person returns a copy of the person with the given ID.
func (d *Dataset) Person(id string) (Person, bool) {
	p, ok := d.people[id]
	if !ok {
		return Person{}, false
	}
	cp := *p
	cp.Productions = slices.Clone(p.Productions)
	return cp, true
}

// Production returns a copy of the production with the given ID.
func (d *Dataset) Production(id string) (Production, bool) {
	m, ok := d.productions[id]
	if !ok {
		return Production{}, false
	}
	cp := *m
	cp.Stars = slices.Clone(m.Stars)
	return cp, true
}

// HasPerson reports whether id names a person in the dataset.
func (d *Dataset) HasPerson(id string) bool {
	_, ok := d.people[id]
	return ok
}

// Neighbors returns every (production, co-star) pair reachable from the
// person in one hop, ordered by production ID and then person ID. The person
// itself is never its own neighbor. Unknown IDs yield nil.
func (d *Dataset) Neighbors(personID string) []Neighbor {
	p, ok := d.people[personID]
	if !ok {
		return nil
	}
	var out []Neighbor
	for _, mid := range p.Productions {
		for _, sid := range d.productions[mid].Stars {
			if sid == personID {
				continue
			}
			out = append(out, Neighbor{ProductionID: mid, PersonID: sid})
		}
	}
	return out
}

// ResolveName returns the IDs of all people whose name matches
// case-insensitively, in ascending order. The result may be empty.
func (d *Dataset) ResolveName(name string) []string {
	return slices.Clone(d.names[normalizeName(name)])
}

// People returns all people ordered by ID.
func (d *Dataset) People() []Person {
	out := make([]Person, 0, len(d.people))
	for _, id := range slices.Sorted(maps.Keys(d.people)) {
		p, _ := d.Person(id)
		out = append(out, p)
	}
	return out
}

// Productions returns all productions ordered by ID.
func (d *Dataset) Productions() []Production {
	out := make([]Production, 0, len(d.productions))
	for _, id := range slices.Sorted(maps.Keys(d.productions)) {
		m, _ := d.Production(id)
		out = append(out, m)
	}
	return out
}

// NumPeople returns the number of people.
func (d *Dataset) NumPeople() int { return len(d.people) }

// NumProductions returns the number of productions.
func (d *Dataset) NumProductions() int { return len(d.productions) }

// Stats returns the ingestion counters recorded when the dataset was built.
func (d *Dataset) Stats() LoadStats { return d.stats }

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Builder accumulates records before freezing them into a [Dataset].
// A Builder is not safe for concurrent use and must not be reused after
// Build.
type Builder struct {
	people      map[string]*Person
	productions map[string]*Production
	personOf    map[string]map[string]struct{}
	starsOf     map[string]map[string]struct{}
	stats       LoadStats
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		people:      make(map[string]*Person),
		productions: make(map[string]*Production),
		personOf:    make(map[string]map[string]struct{}),
		starsOf:     make(map[string]map[string]struct{}),
	}
}

// AddPerson registers a person. p.Productions is ignored; cross-references
// are recorded with [Builder.AddStar]. Invalid or duplicate records are
// counted as skipped and reported through the returned error.
func (b *Builder) AddPerson(p Person) error {
	p.ID = strings.TrimSpace(p.ID)
	if p.ID == "" {
		b.stats.Skipped++
		return ErrMissingID
	}
	if _, ok := b.people[p.ID]; ok {
		b.stats.Skipped++
		return ErrDuplicateID
	}
	p.Productions = nil
	b.people[p.ID] = &p
	b.personOf[p.ID] = make(map[string]struct{})
	return nil
}

// AddProduction registers a production. m.Stars is ignored.
func (b *Builder) AddProduction(m Production) error {
	m.ID = strings.TrimSpace(m.ID)
	if m.ID == "" {
		b.stats.Skipped++
		return ErrMissingID
	}
	if _, ok := b.productions[m.ID]; ok {
		b.stats.Skipped++
		return ErrDuplicateID
	}
	m.Stars = nil
	b.productions[m.ID] = &m
	b.starsOf[m.ID] = make(map[string]struct{})
	return nil
}

// AddStar records that the person starred in the production, on both sides.
// It returns false and counts the row as dropped when either side is
// unknown. Repeated pairs are recorded once.
func (b *Builder) AddStar(personID, productionID string) bool {
	personID, productionID = strings.TrimSpace(personID), strings.TrimSpace(productionID)
	movies, okP := b.personOf[personID]
	stars, okM := b.starsOf[productionID]
	if !okP || !okM {
		b.stats.Dropped++
		return false
	}
	if _, dup := stars[personID]; !dup {
		b.stats.Stars++
	}
	movies[productionID] = struct{}{}
	stars[personID] = struct{}{}
	return true
}

// Skip counts a source row that could not be parsed at all.
func (b *Builder) Skip() { b.stats.Skipped++ }

// Build freezes the accumulated records. Cross-reference sets become sorted
// slices so iteration over a Dataset is deterministic.
func (b *Builder) Build() *Dataset {
	d := &Dataset{
		people:      b.people,
		productions: b.productions,
		names:       make(map[string][]string),
		stats:       b.stats,
	}
	for id, p := range d.people {
		p.Productions = slices.Sorted(maps.Keys(b.personOf[id]))
		key := normalizeName(p.Name)
		d.names[key] = append(d.names[key], id)
	}
	for id, m := range d.productions {
		m.Stars = slices.Sorted(maps.Keys(b.starsOf[id]))
	}
	for key := range d.names {
		slices.Sort(d.names[key])
	}
	d.stats.People = len(d.people)
	d.stats.Productions = len(d.productions)
	return d
}
