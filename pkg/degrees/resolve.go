package degrees

import (
	"fmt"
	"slices"

	"github.com/matzehuels/frontier/pkg/dataset"
	"github.com/matzehuels/frontier/pkg/errors"
)

// Directory looks people up by name and ID. [*dataset.Dataset] satisfies it.
type Directory interface {
	ResolveName(name string) []string
	Person(id string) (dataset.Person, bool)
}

// AmbiguousError reports a name shared by several people.
type AmbiguousError struct {
	Name       string
	Candidates []dataset.Person
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("%d people named %q", len(e.Candidates), e.Name)
}

// Code implements [errors.Coder].
func (e *AmbiguousError) Code() errors.Code { return errors.ErrCodeAmbiguous }

// Chooser picks one of several people sharing a name. It returns the chosen
// ID, or an error to abort resolution.
type Chooser func(name string, candidates []dataset.Person) (string, error)

// Resolve maps a name to a person ID, ignoring case and surrounding space.
// No match yields an error with code [errors.ErrCodeNotFound]; several
// matches yield an [*AmbiguousError] listing them by ID.
func Resolve(d Directory, name string) (string, error) {
	return ResolveWith(d, name, nil)
}

// ResolveWith is like [Resolve] but lets choose settle ambiguous names.
// The chosen ID must be one of the candidates. A nil choose behaves like
// [Resolve].
func ResolveWith(d Directory, name string, choose Chooser) (string, error) {
	if err := errors.ValidateName(name); err != nil {
		return "", err
	}

	ids := d.ResolveName(name)
	switch len(ids) {
	case 0:
		return "", errors.New(errors.ErrCodeNotFound, "person %q not found", name)
	case 1:
		return ids[0], nil
	}

	candidates := make([]dataset.Person, 0, len(ids))
	for _, id := range ids {
		if p, ok := d.Person(id); ok {
			candidates = append(candidates, p)
		}
	}
	slices.SortFunc(candidates, func(a, b dataset.Person) int {
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
	if choose == nil {
		return "", &AmbiguousError{Name: name, Candidates: candidates}
	}

	id, err := choose(name, candidates)
	if err != nil {
		return "", err
	}
	if !slices.ContainsFunc(candidates, func(p dataset.Person) bool { return p.ID == id }) {
		return "", errors.New(errors.ErrCodeNotFound, "person %q is not named %q", id, name)
	}
	return id, nil
}

// ChooseByID returns a Chooser that selects the candidate with the given ID.
func ChooseByID(id string) Chooser {
	return func(string, []dataset.Person) (string, error) { return id, nil }
}

// Lookup finds a person given by name, by ID, or both. With both, the ID
// must belong to someone with that name. Ambiguous names go to choose as in
// [ResolveWith].
func Lookup(d Directory, name, id string, choose Chooser) (string, error) {
	switch {
	case id != "" && name != "":
		got, err := ResolveWith(d, name, ChooseByID(id))
		if err != nil {
			return "", err
		}
		if got != id {
			return "", errors.New(errors.ErrCodeNotFound, "person %q is not named %q", id, name)
		}
		return got, nil
	case id != "":
		if err := errors.ValidateID(id); err != nil {
			return "", err
		}
		if _, ok := d.Person(id); !ok {
			return "", errors.New(errors.ErrCodeNotFound, "person %q not found", id)
		}
		return id, nil
	}
	return ResolveWith(d, name, choose)
}
