package postgres

import (
	"context"
	"errors"
	"sort"

	"cinedb/movie"

	"gorm.io/gorm"
)

// MovieModel represents the database model for movies
type MovieModel struct {
	ID     int64        `gorm:"primaryKey"`
	Name   string       `gorm:"not null"`
	Genre  string       `gorm:"not null;default:''"`
	Year   int          `gorm:"not null"`
	Actors []ActorModel `gorm:"many2many:movie_cast;joinForeignKey:MovieID;joinReferences:ActorID"`
}

// TableName specifies the table name for GORM
func (MovieModel) TableName() string {
	return "movies"
}

// MovieRepository implements movie.Repository interface
type MovieRepository struct {
	db *gorm.DB
}

// NewMovieRepository creates a new movie repository
func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

func (r *MovieRepository) AllMovies(ctx context.Context) ([]movie.Movie, error) {
	var models []MovieModel
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}

	movies := make([]movie.Movie, len(models))
	for i, model := range models {
		movies[i] = toDomainMovie(model)
	}
	return movies, nil
}

func (r *MovieRepository) GetByID(ctx context.Context, id int64) (movie.Movie, error) {
	model, err := findMovie(r.db.WithContext(ctx), id, false)
	if err != nil {
		return movie.Movie{}, err
	}
	return toDomainMovie(model), nil
}

func (r *MovieRepository) CreateMovie(ctx context.Context, m movie.Movie) (movie.Movie, error) {
	model := MovieModel{
		Name:  m.Name,
		Genre: m.Genre,
		Year:  m.Year,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return movie.Movie{}, err
	}
	return toDomainMovie(model), nil
}

func (r *MovieRepository) UpdateMovie(ctx context.Context, id int64, p movie.Patch) (movie.Movie, error) {
	var updated MovieModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model, err := findMovie(tx, id, false)
		if err != nil {
			return err
		}
		if changes := movieChanges(p); len(changes) > 0 {
			if err := tx.Model(&model).Updates(changes).Error; err != nil {
				return err
			}
		}
		updated, err = findMovie(tx, id, false)
		return err
	})
	if err != nil {
		return movie.Movie{}, err
	}
	return toDomainMovie(updated), nil
}

func (r *MovieRepository) DeleteMovie(ctx context.Context, id int64) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&MovieModel{}, id)
	return result.RowsAffected, result.Error
}

// AppendActor adds the actor to the movie's cast, which also puts the movie
// in the actor's filmography.
func (r *MovieRepository) AppendActor(ctx context.Context, movieID, actorID int64) (movie.Movie, error) {
	var linked MovieModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model, err := findMovie(tx, movieID, false)
		if err != nil {
			return err
		}
		var related ActorModel
		if err := tx.First(&related, actorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return movie.ErrActorNotFound
			}
			return err
		}
		if err := tx.Model(&model).Association("Actors").Append(&related); err != nil {
			if errors.Is(err, gorm.ErrForeignKeyViolated) {
				return movie.ErrActorNotFound
			}
			return err
		}
		linked, err = findMovie(tx, movieID, true)
		return err
	})
	if err != nil {
		return movie.Movie{}, err
	}
	return toDomainMovie(linked), nil
}

func (r *MovieRepository) ClearActors(ctx context.Context, movieID int64) (movie.Movie, error) {
	var cleared MovieModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model, err := findMovie(tx, movieID, false)
		if err != nil {
			return err
		}
		if err := tx.Model(&model).Association("Actors").Clear(); err != nil {
			return err
		}
		cleared, err = findMovie(tx, movieID, true)
		return err
	})
	if err != nil {
		return movie.Movie{}, err
	}
	return toDomainMovie(cleared), nil
}

func findMovie(db *gorm.DB, id int64, withActors bool) (MovieModel, error) {
	var model MovieModel
	if withActors {
		db = db.Preload("Actors")
	}
	if err := db.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MovieModel{}, movie.ErrMovieNotFound
		}
		return MovieModel{}, err
	}
	return model, nil
}

func movieChanges(p movie.Patch) map[string]interface{} {
	changes := make(map[string]interface{}, 3)
	if p.Name != nil {
		changes["name"] = *p.Name
	}
	if p.Genre != nil {
		changes["genre"] = *p.Genre
	}
	if p.Year != nil {
		changes["year"] = *p.Year
	}
	return changes
}

func toDomainMovie(model MovieModel) movie.Movie {
	m := movie.Movie{
		ID:    model.ID,
		Name:  model.Name,
		Genre: model.Genre,
		Year:  model.Year,
	}
	if model.Actors != nil {
		m.Cast = make(movie.Cast, len(model.Actors))
		for i, a := range model.Actors {
			m.Cast[i] = movie.CastMember{ID: a.ID, Name: a.Name}
		}
		sort.Slice(m.Cast, func(i, j int) bool {
			return m.Cast[i].ID < m.Cast[j].ID
		})
	}
	return m
}
