package degrees

import "github.com/matzehuels/frontier/pkg/dataset"

// Catalog looks up people and productions by ID. [*dataset.Dataset]
// satisfies it.
type Catalog interface {
	Person(id string) (dataset.Person, bool)
	Production(id string) (dataset.Production, bool)
}

// Link is a printable step: two people and the production they share.
type Link struct {
	Person1 string `json:"person1"`
	Person2 string `json:"person2"`
	Title   string `json:"title"`
}

// Describe resolves a path from source into names and titles. Unknown IDs
// are shown as the raw ID.
func Describe(c Catalog, source string, path Path) []Link {
	links := make([]Link, 0, len(path))
	prev := personName(c, source)
	for _, step := range path {
		next := personName(c, step.PersonID)
		title := step.ProductionID
		if m, ok := c.Production(step.ProductionID); ok && m.Title != "" {
			title = m.Title
		}
		links = append(links, Link{Person1: prev, Person2: next, Title: title})
		prev = next
	}
	return links
}

func personName(c Catalog, id string) string {
	if p, ok := c.Person(id); ok && p.Name != "" {
		return p.Name
	}
	return id
}
