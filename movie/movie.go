package movie

import (
	"fmt"
	"strings"

	"cinedb/errs"
	"cinedb/pkg/fields"
)

const (
	FieldName  = "name"
	FieldGenre = "genre"
	FieldYear  = "year"
)

// yearBits matches the INTEGER column the year is stored in.
const yearBits = 32

var (
	CreateFields = []string{FieldName, FieldGenre, FieldYear}
	UpdateFields = []string{fields.ID, FieldName, FieldGenre, FieldYear}
)

var (
	ErrMissingFields = errs.Errorf(errs.EINVALID, "All required fields must be specified")
	ErrInvalidName   = errs.Errorf(errs.EINVALID, "Name must not be empty")
	ErrInvalidYear   = errs.Errorf(errs.EINVALID, "Year must be an integer")
	ErrMovieNotFound = errs.Errorf(errs.ENOTFOUND, "Record with such id does not exist")
	ErrActorNotFound = errs.Errorf(errs.ENOTFOUND, "Related record with such id does not exist")
)

type Movie struct {
	ID    int64
	Name  string
	Genre string
	Year  int
	Cast  Cast
}

func (m Movie) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrInvalidName
	}
	return nil
}

// CastMember is an actor appearing in the movie.
type CastMember struct {
	ID   int64
	Name string
}

// Cast is ordered by actor id.
type Cast []CastMember

func (c Cast) String() string {
	parts := make([]string, len(c))
	for i, m := range c {
		parts[i] = fmt.Sprintf("#%d %s", m.ID, m.Name)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

type Patch struct {
	Name  *string
	Genre *string
	Year  *int
}

func (p Patch) Empty() bool {
	return p.Name == nil && p.Genre == nil && p.Year == nil
}

func (p Patch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return ErrInvalidName
	}
	return nil
}

// FromData builds a new movie from create input, coercing year to an integer.
func FromData(d fields.Data) (Movie, error) {
	if !d.HasAll(CreateFields...) {
		return Movie{}, ErrMissingFields
	}
	if err := d.Whitelist(CreateFields...); err != nil {
		return Movie{}, err
	}
	year, err := d.Int(FieldYear, yearBits, ErrInvalidYear)
	if err != nil {
		return Movie{}, err
	}

	return Movie{
		Name:  strings.TrimSpace(d[FieldName]),
		Genre: strings.TrimSpace(d[FieldGenre]),
		Year:  int(year),
	}, nil
}

// PatchFromData reads the target id and the supplied fields of an update.
func PatchFromData(d fields.Data) (int64, Patch, error) {
	if !d.Has(fields.ID) {
		return 0, Patch{}, fields.ErrNoID
	}
	if err := d.Whitelist(UpdateFields...); err != nil {
		return 0, Patch{}, err
	}
	id, err := d.ID(fields.ID)
	if err != nil {
		return 0, Patch{}, err
	}

	var p Patch
	if v, ok := d[FieldName]; ok {
		name := strings.TrimSpace(v)
		p.Name = &name
	}
	if v, ok := d[FieldGenre]; ok {
		genre := strings.TrimSpace(v)
		p.Genre = &genre
	}
	if d.Has(FieldYear) {
		year, err := d.Int(FieldYear, yearBits, ErrInvalidYear)
		if err != nil {
			return 0, Patch{}, err
		}
		y := int(year)
		p.Year = &y
	}
	return id, p, nil
}
