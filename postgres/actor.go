package postgres

import (
	"context"
	"errors"
	"sort"
	"time"

	"cinedb/actor"

	"gorm.io/gorm"
)

// ActorModel represents the database model for actors.
// Movies shares the movie_cast join table with MovieModel.Actors.
type ActorModel struct {
	ID          int64        `gorm:"primaryKey"`
	Name        string       `gorm:"not null"`
	Gender      string       `gorm:"not null;default:''"`
	DateOfBirth time.Time    `gorm:"type:date;not null"`
	Movies      []MovieModel `gorm:"many2many:movie_cast;joinForeignKey:ActorID;joinReferences:MovieID"`
}

// TableName specifies the table name for GORM
func (ActorModel) TableName() string {
	return "actors"
}

// ActorRepository implements actor.Repository interface
type ActorRepository struct {
	db *gorm.DB
}

// NewActorRepository creates a new actor repository
func NewActorRepository(db *gorm.DB) *ActorRepository {
	return &ActorRepository{db: db}
}

// AllActors fetches every actor ordered by id.
func (r *ActorRepository) AllActors(ctx context.Context) ([]actor.Actor, error) {
	var models []ActorModel
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}

	actors := make([]actor.Actor, len(models))
	for i, model := range models {
		actors[i] = toDomainActor(model)
	}
	return actors, nil
}

// GetByID fetches an actor by id.
func (r *ActorRepository) GetByID(ctx context.Context, id int64) (actor.Actor, error) {
	model, err := findActor(r.db.WithContext(ctx), id, false)
	if err != nil {
		return actor.Actor{}, err
	}
	return toDomainActor(model), nil
}

// CreateActor inserts the actor and returns it with its generated id.
func (r *ActorRepository) CreateActor(ctx context.Context, a actor.Actor) (actor.Actor, error) {
	model := ActorModel{
		Name:        a.Name,
		Gender:      a.Gender,
		DateOfBirth: a.DateOfBirth,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return actor.Actor{}, err
	}
	return toDomainActor(model), nil
}

// UpdateActor applies the supplied fields only.
func (r *ActorRepository) UpdateActor(ctx context.Context, id int64, p actor.Patch) (actor.Actor, error) {
	var updated ActorModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model, err := findActor(tx, id, false)
		if err != nil {
			return err
		}
		if changes := actorChanges(p); len(changes) > 0 {
			if err := tx.Model(&model).Updates(changes).Error; err != nil {
				return err
			}
		}
		updated, err = findActor(tx, id, false)
		return err
	})
	if err != nil {
		return actor.Actor{}, err
	}
	return toDomainActor(updated), nil
}

// DeleteActor hard-deletes the actor and reports the number of removed rows.
// Its movie_cast rows go with it through ON DELETE CASCADE.
func (r *ActorRepository) DeleteActor(ctx context.Context, id int64) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&ActorModel{}, id)
	return result.RowsAffected, result.Error
}

// AppendMovie links the movie to the actor. Linking twice keeps one edge.
func (r *ActorRepository) AppendMovie(ctx context.Context, actorID, movieID int64) (actor.Actor, error) {
	var linked ActorModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model, err := findActor(tx, actorID, false)
		if err != nil {
			return err
		}
		var related MovieModel
		if err := tx.First(&related, movieID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return actor.ErrMovieNotFound
			}
			return err
		}
		if err := tx.Model(&model).Association("Movies").Append(&related); err != nil {
			if errors.Is(err, gorm.ErrForeignKeyViolated) {
				return actor.ErrMovieNotFound
			}
			return err
		}
		linked, err = findActor(tx, actorID, true)
		return err
	})
	if err != nil {
		return actor.Actor{}, err
	}
	return toDomainActor(linked), nil
}

// ClearMovies removes every movie_cast row of the actor.
func (r *ActorRepository) ClearMovies(ctx context.Context, actorID int64) (actor.Actor, error) {
	var cleared ActorModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model, err := findActor(tx, actorID, false)
		if err != nil {
			return err
		}
		if err := tx.Model(&model).Association("Movies").Clear(); err != nil {
			return err
		}
		cleared, err = findActor(tx, actorID, true)
		return err
	})
	if err != nil {
		return actor.Actor{}, err
	}
	return toDomainActor(cleared), nil
}

func findActor(db *gorm.DB, id int64, withMovies bool) (ActorModel, error) {
	var model ActorModel
	if withMovies {
		db = db.Preload("Movies")
	}
	if err := db.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ActorModel{}, actor.ErrActorNotFound
		}
		return ActorModel{}, err
	}
	return model, nil
}

func actorChanges(p actor.Patch) map[string]interface{} {
	changes := make(map[string]interface{}, 3)
	if p.Name != nil {
		changes["name"] = *p.Name
	}
	if p.Gender != nil {
		changes["gender"] = *p.Gender
	}
	if p.DateOfBirth != nil {
		changes["date_of_birth"] = *p.DateOfBirth
	}
	return changes
}

func toDomainActor(model ActorModel) actor.Actor {
	a := actor.Actor{
		ID:          model.ID,
		Name:        model.Name,
		Gender:      model.Gender,
		DateOfBirth: model.DateOfBirth.UTC(),
	}
	if model.Movies != nil {
		a.Filmography = make(actor.Filmography, len(model.Movies))
		for i, m := range model.Movies {
			a.Filmography[i] = actor.Credit{ID: m.ID, Name: m.Name, Year: m.Year}
		}
		sort.Slice(a.Filmography, func(i, j int) bool {
			return a.Filmography[i].ID < a.Filmography[j].ID
		})
	}
	return a
}
