// nolint: funlen
package actor_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"cinedb/actor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockActorRepository struct {
	mock.Mock
}

func (m *MockActorRepository) AllActors(ctx context.Context) ([]actor.Actor, error) {
	args := m.Called(ctx)
	return args.Get(0).([]actor.Actor), args.Error(1)
}

func (m *MockActorRepository) GetByID(ctx context.Context, id int64) (actor.Actor, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(actor.Actor), args.Error(1)
}

func (m *MockActorRepository) CreateActor(ctx context.Context, a actor.Actor) (actor.Actor, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(actor.Actor), args.Error(1)
}

func (m *MockActorRepository) UpdateActor(ctx context.Context, id int64, p actor.Patch) (actor.Actor, error) {
	args := m.Called(ctx, id, p)
	return args.Get(0).(actor.Actor), args.Error(1)
}

func (m *MockActorRepository) DeleteActor(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockActorRepository) AppendMovie(ctx context.Context, actorID, movieID int64) (actor.Actor, error) {
	args := m.Called(ctx, actorID, movieID)
	return args.Get(0).(actor.Actor), args.Error(1)
}

func (m *MockActorRepository) ClearMovies(ctx context.Context, actorID int64) (actor.Actor, error) {
	args := m.Called(ctx, actorID)
	return args.Get(0).(actor.Actor), args.Error(1)
}

var keanu = actor.Actor{
	ID:          1,
	Name:        "Keanu Reeves",
	Gender:      "male",
	DateOfBirth: time.Date(1964, 9, 2, 0, 0, 0, 0, time.UTC),
}

func TestAddActor(t *testing.T) {
	r := new(MockActorRepository)
	uc := actor.NewUsecase(r)

	t.Run("should create valid actor", func(t *testing.T) {
		in := keanu
		in.ID = 0
		r.On("CreateActor", mock.Anything, in).Return(keanu, nil).Once()

		created, err := uc.AddActor(context.Background(), in)

		assert.NoError(t, err)
		assert.Equal(t, keanu, created)
		r.AssertExpectations(t)
	})

	t.Run("should fail on blank name", func(t *testing.T) {
		in := actor.Actor{Name: " ", DateOfBirth: keanu.DateOfBirth}

		_, err := uc.AddActor(context.Background(), in)

		assert.Equal(t, actor.ErrInvalidName, err)
		r.AssertNotCalled(t, "CreateActor", mock.Anything, in)
	})
}

func TestUpdateActor(t *testing.T) {
	r := new(MockActorRepository)
	uc := actor.NewUsecase(r)

	t.Run("should pass patch to repository", func(t *testing.T) {
		gender := "M"
		p := actor.Patch{Gender: &gender}
		updated := keanu
		updated.Gender = gender
		r.On("UpdateActor", mock.Anything, int64(1), p).Return(updated, nil).Once()

		result, err := uc.UpdateActor(context.Background(), 1, p)

		assert.NoError(t, err)
		assert.Equal(t, updated, result)
		r.AssertExpectations(t)
	})

	t.Run("should propagate not found", func(t *testing.T) {
		r.On("UpdateActor", mock.Anything, int64(99), actor.Patch{}).Return(actor.Actor{}, actor.ErrActorNotFound).Once()

		_, err := uc.UpdateActor(context.Background(), 99, actor.Patch{})

		assert.Equal(t, actor.ErrActorNotFound, err)
		r.AssertExpectations(t)
	})

	t.Run("should fail on blank name", func(t *testing.T) {
		blank := ""

		_, err := uc.UpdateActor(context.Background(), 1, actor.Patch{Name: &blank})

		assert.Equal(t, actor.ErrInvalidName, err)
	})
}

func TestDeleteActor(t *testing.T) {
	r := new(MockActorRepository)
	uc := actor.NewUsecase(r)

	t.Run("should succeed when one row is removed", func(t *testing.T) {
		r.On("DeleteActor", mock.Anything, int64(1)).Return(int64(1), nil).Once()

		err := uc.DeleteActor(context.Background(), 1)

		assert.NoError(t, err)
		r.AssertExpectations(t)
	})

	t.Run("should report not found when nothing is removed", func(t *testing.T) {
		r.On("DeleteActor", mock.Anything, int64(1)).Return(int64(0), nil).Once()

		err := uc.DeleteActor(context.Background(), 1)

		assert.Equal(t, actor.ErrActorNotFound, err)
		r.AssertExpectations(t)
	})

	t.Run("should not mislabel storage failures", func(t *testing.T) {
		dbErr := errors.New("connection reset")
		r.On("DeleteActor", mock.Anything, int64(2)).Return(int64(0), dbErr).Once()

		err := uc.DeleteActor(context.Background(), 2)

		assert.Equal(t, dbErr, err)
		r.AssertExpectations(t)
	})
}

func TestListAndGetActors(t *testing.T) {
	r := new(MockActorRepository)
	uc := actor.NewUsecase(r)

	t.Run("should list actors", func(t *testing.T) {
		actors := []actor.Actor{keanu, {ID: 2, Name: "Carrie-Anne Moss"}}
		r.On("AllActors", mock.Anything).Return(actors, nil).Once()

		result, err := uc.ListActors(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, actors, result)
		r.AssertExpectations(t)
	})

	t.Run("should get actor by id", func(t *testing.T) {
		r.On("GetByID", mock.Anything, int64(1)).Return(keanu, nil).Once()

		result, err := uc.GetActor(context.Background(), 1)

		assert.NoError(t, err)
		assert.Equal(t, keanu, result)
		r.AssertExpectations(t)
	})
}

func TestActorRelations(t *testing.T) {
	r := new(MockActorRepository)
	uc := actor.NewUsecase(r)

	t.Run("should append movie", func(t *testing.T) {
		linked := keanu
		linked.Filmography = actor.Filmography{{ID: 7, Name: "The Matrix", Year: 1999}}
		r.On("AppendMovie", mock.Anything, int64(1), int64(7)).Return(linked, nil).Once()

		result, err := uc.AddMovie(context.Background(), 1, 7)

		assert.NoError(t, err)
		assert.Equal(t, linked.Filmography, result.Filmography)
		r.AssertExpectations(t)
	})

	t.Run("should report missing movie", func(t *testing.T) {
		r.On("AppendMovie", mock.Anything, int64(1), int64(8)).Return(actor.Actor{}, actor.ErrMovieNotFound).Once()

		_, err := uc.AddMovie(context.Background(), 1, 8)

		assert.Equal(t, actor.ErrMovieNotFound, err)
		r.AssertExpectations(t)
	})

	t.Run("should clear movies", func(t *testing.T) {
		r.On("ClearMovies", mock.Anything, int64(1)).Return(keanu, nil).Once()

		result, err := uc.ClearMovies(context.Background(), 1)

		assert.NoError(t, err)
		assert.Empty(t, result.Filmography)
		r.AssertExpectations(t)
	})
}
