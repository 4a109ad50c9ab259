package actor

import (
	"fmt"
	"strings"
	"time"

	"cinedb/errs"
	"cinedb/pkg/fields"
)

// DateFormat is the only accepted layout for date_of_birth.
const DateFormat = "2006-01-02"

const (
	FieldName        = "name"
	FieldGender      = "gender"
	FieldDateOfBirth = "date_of_birth"
)

var (
	// CreateFields are required, and the only keys accepted, on create.
	CreateFields = []string{FieldName, FieldGender, FieldDateOfBirth}
	// UpdateFields are the keys accepted on update.
	UpdateFields = []string{fields.ID, FieldName, FieldGender, FieldDateOfBirth}
)

var (
	ErrMissingFields = errs.Errorf(errs.EINVALID, "Missing required fields")
	ErrInvalidName   = errs.Errorf(errs.EINVALID, "Name must not be empty")
	ErrDateSeparator = errs.Errorf(errs.EINVALID, "Date of birth must use '-' as separator")
	ErrInvalidDate   = errs.Errorf(errs.EINVALID, "Invalid date format. Should be in format 'YYYY-MM-DD'")
	ErrActorNotFound = errs.Errorf(errs.ENOTFOUND, "Record with such id does not exist")
	ErrMovieNotFound = errs.Errorf(errs.ENOTFOUND, "Related record with such id does not exist")
)

type Actor struct {
	ID          int64
	Name        string
	Gender      string
	DateOfBirth time.Time
	Filmography Filmography
}

func (a Actor) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrInvalidName
	}
	if a.DateOfBirth.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Credit is a movie the actor appears in.
type Credit struct {
	ID   int64
	Name string
	Year int
}

// Filmography is ordered by movie id.
type Filmography []Credit

func (f Filmography) String() string {
	parts := make([]string, len(f))
	for i, c := range f {
		parts[i] = fmt.Sprintf("#%d %s (%d)", c.ID, c.Name, c.Year)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Patch carries the fields supplied to an update; nil means untouched.
type Patch struct {
	Name        *string
	Gender      *string
	DateOfBirth *time.Time
}

func (p Patch) Empty() bool {
	return p.Name == nil && p.Gender == nil && p.DateOfBirth == nil
}

func (p Patch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return ErrInvalidName
	}
	return nil
}

// FromData builds a new actor from create input.
func FromData(d fields.Data) (Actor, error) {
	if !d.HasAll(CreateFields...) {
		return Actor{}, ErrMissingFields
	}
	if err := d.Whitelist(CreateFields...); err != nil {
		return Actor{}, err
	}

	raw := d[FieldDateOfBirth]
	if strings.Contains(raw, "/") {
		return Actor{}, ErrDateSeparator
	}
	dob, err := parseDate(raw)
	if err != nil {
		return Actor{}, err
	}

	return Actor{
		Name:        strings.TrimSpace(d[FieldName]),
		Gender:      strings.TrimSpace(d[FieldGender]),
		DateOfBirth: dob,
	}, nil
}

// PatchFromData reads the target id and the supplied fields of an update.
// When only date_of_birth is malformed the parsed id is still returned with
// ErrInvalidDate.
func PatchFromData(d fields.Data) (int64, Patch, error) {
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
	if v, ok := d[FieldGender]; ok {
		gender := strings.TrimSpace(v)
		p.Gender = &gender
	}
	if v, ok := d[FieldDateOfBirth]; ok {
		dob, err := parseDate(v)
		if err != nil {
			return id, Patch{}, err
		}
		p.DateOfBirth = &dob
	}
	return id, p, nil
}

func parseDate(raw string) (time.Time, error) {
	if !fields.Date(raw, DateFormat) {
		return time.Time{}, ErrInvalidDate
	}
	dob, err := time.Parse(DateFormat, raw)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return dob, nil
}
