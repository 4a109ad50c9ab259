// Package fields holds the request-field helpers shared by the actor and movie
// handlers: whitelist enforcement, required-key checks and integer coercion.
package fields

import (
	"sort"
	"strconv"
	"strings"

	"cinedb/errs"

	"github.com/go-playground/validator/v10"
)

const (
	ID         = "id"
	RelationID = "relation_id"
)

var (
	ErrNoID           = errs.Errorf(errs.EINVALID, "No id specified")
	ErrIDNotInteger   = errs.Errorf(errs.EINVALID, "Id must be integer")
	ErrNestedValue    = errs.Errorf(errs.EINVALID, "Field values must be strings, numbers or booleans")
	ErrMalformedInput = errs.Errorf(errs.EINVALID, "Request body must be a JSON object")
)

var validate = validator.New()

// Data is the normalized key/value input of a single request.
type Data map[string]string

func (d Data) Has(key string) bool {
	_, ok := d[key]
	return ok
}

// HasAll reports whether every key is present.
func (d Data) HasAll(keys ...string) bool {
	for _, k := range keys {
		if !d.Has(k) {
			return false
		}
	}
	return true
}

// Unknown returns the supplied keys that are not in allowed, sorted.
func (d Data) Unknown(allowed ...string) []string {
	permitted := make(map[string]struct{}, len(allowed))
	for _, k := range allowed {
		permitted[k] = struct{}{}
	}

	var unknown []string
	for k := range d {
		if _, ok := permitted[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	return unknown
}

// Whitelist rejects every key outside allowed with one combined error.
func (d Data) Whitelist(allowed ...string) error {
	unknown := d.Unknown(allowed...)
	if len(unknown) == 0 {
		return nil
	}
	return errs.Errorf(errs.EINVALID, "Invalid field(s): %s", strings.Join(unknown, ", "))
}

// Int coerces key to an integer that fits in bitSize bits, returning invalid
// when it cannot.
func (d Data) Int(key string, bitSize int, invalid error) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(d[key]), 10, bitSize)
	if err != nil {
		return 0, invalid
	}
	return n, nil
}

// ID reads the integer record id stored under key.
func (d Data) ID(key string) (int64, error) {
	if !d.Has(key) {
		return 0, ErrNoID
	}
	return d.Int(key, 64, ErrIDNotInteger)
}

// RelationIDs reads the record id and the related record id of a relation request.
func (d Data) RelationIDs() (int64, int64, error) {
	if !d.HasAll(ID, RelationID) {
		return 0, 0, ErrNoID
	}
	id, err := d.Int(ID, 64, ErrIDNotInteger)
	if err != nil {
		return 0, 0, err
	}
	relationID, err := d.Int(RelationID, 64, ErrIDNotInteger)
	if err != nil {
		return 0, 0, err
	}
	return id, relationID, nil
}

// Date reports whether value is a date in the given Go layout.
func Date(value, layout string) bool {
	return validate.Var(value, "required,datetime="+layout) == nil
}
