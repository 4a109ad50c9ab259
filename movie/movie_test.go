package movie_test

import (
	"testing"

	"cinedb/errs"
	"cinedb/movie"
	"cinedb/pkg/fields"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromData(t *testing.T) {
	t.Run("coerces year to integer", func(t *testing.T) {
		m, err := movie.FromData(fields.Data{"name": "Dune", "genre": "Sci-Fi", "year": "2021"})

		require.NoError(t, err)
		assert.Equal(t, movie.Movie{Name: "Dune", Genre: "Sci-Fi", Year: 2021}, m)
	})

	t.Run("rejects non numeric year", func(t *testing.T) {
		_, err := movie.FromData(fields.Data{"name": "Dune", "genre": "Sci-Fi", "year": "abc"})

		assert.Equal(t, movie.ErrInvalidYear, err)
		assert.Equal(t, "Year must be an integer", errs.ErrorMessage(err))
	})

	t.Run("rejects year outside the stored integer range", func(t *testing.T) {
		_, err := movie.FromData(fields.Data{"name": "Dune", "genre": "Sci-Fi", "year": "3000000000"})

		assert.Equal(t, movie.ErrInvalidYear, err)
	})

	t.Run("fails when a required field is missing", func(t *testing.T) {
		_, err := movie.FromData(fields.Data{"name": "Dune", "year": "2021"})

		assert.Equal(t, movie.ErrMissingFields, err)
	})

	t.Run("required fields are checked before unknown fields", func(t *testing.T) {
		_, err := movie.FromData(fields.Data{"name": "Dune", "rating": "9"})

		assert.Equal(t, movie.ErrMissingFields, err)
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		_, err := movie.FromData(fields.Data{"name": "Dune", "genre": "Sci-Fi", "year": "2021", "director": "Villeneuve"})

		assert.Equal(t, "Invalid field(s): director", errs.ErrorMessage(err))
	})
}

func TestPatchFromData(t *testing.T) {
	t.Run("reads supplied fields", func(t *testing.T) {
		id, p, err := movie.PatchFromData(fields.Data{"id": "4", "year": "1999", "name": "The Matrix"})

		require.NoError(t, err)
		assert.Equal(t, int64(4), id)
		require.NotNil(t, p.Year)
		assert.Equal(t, 1999, *p.Year)
		require.NotNil(t, p.Name)
		assert.Equal(t, "The Matrix", *p.Name)
		assert.Nil(t, p.Genre)
	})

	t.Run("rejects non numeric year", func(t *testing.T) {
		_, _, err := movie.PatchFromData(fields.Data{"id": "4", "year": "nineteen"})

		assert.Equal(t, movie.ErrInvalidYear, err)
	})

	t.Run("rejects year outside the stored integer range", func(t *testing.T) {
		_, _, err := movie.PatchFromData(fields.Data{"id": "4", "year": "-3000000000"})

		assert.Equal(t, movie.ErrInvalidYear, err)
	})

	t.Run("id presence is checked before unknown fields", func(t *testing.T) {
		_, _, err := movie.PatchFromData(fields.Data{"genre": "Drama", "rating": "9"})

		assert.Equal(t, fields.ErrNoID, err)
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		_, _, err := movie.PatchFromData(fields.Data{"id": "4", "gender": "male"})

		assert.Equal(t, "Invalid field(s): gender", errs.ErrorMessage(err))
	})

	t.Run("requires id", func(t *testing.T) {
		_, _, err := movie.PatchFromData(fields.Data{"genre": "Drama"})

		assert.Equal(t, fields.ErrNoID, err)
	})
}

func TestCast_String(t *testing.T) {
	assert.Equal(t, "[]", movie.Cast{}.String())
	assert.Equal(t, "[#2 Zendaya, #5 Timothée Chalamet]", movie.Cast{
		{ID: 2, Name: "Zendaya"},
		{ID: 5, Name: "Timothée Chalamet"},
	}.String())
}
