package actor

import "context"

type Service interface {
	ListActors(ctx context.Context) ([]Actor, error)
	GetActor(ctx context.Context, id int64) (Actor, error)
	AddActor(ctx context.Context, a Actor) (Actor, error)
	UpdateActor(ctx context.Context, id int64, p Patch) (Actor, error)
	DeleteActor(ctx context.Context, id int64) error
	AddMovie(ctx context.Context, actorID, movieID int64) (Actor, error)
	ClearMovies(ctx context.Context, actorID int64) (Actor, error)
}

// Repository persists actors. Lookups of missing records must return
// ErrActorNotFound or ErrMovieNotFound; any other error is a storage failure.
type Repository interface {
	AllActors(ctx context.Context) ([]Actor, error)
	GetByID(ctx context.Context, id int64) (Actor, error)
	CreateActor(ctx context.Context, a Actor) (Actor, error)
	UpdateActor(ctx context.Context, id int64, p Patch) (Actor, error)
	DeleteActor(ctx context.Context, id int64) (int64, error)
	AppendMovie(ctx context.Context, actorID, movieID int64) (Actor, error)
	ClearMovies(ctx context.Context, actorID int64) (Actor, error)
}

type Usecase struct {
	r Repository
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{r: r}
}

func (uc *Usecase) ListActors(ctx context.Context) ([]Actor, error) {
	return uc.r.AllActors(ctx)
}

func (uc *Usecase) GetActor(ctx context.Context, id int64) (Actor, error) {
	return uc.r.GetByID(ctx, id)
}

func (uc *Usecase) AddActor(ctx context.Context, a Actor) (Actor, error) {
	if err := a.Validate(); err != nil {
		return Actor{}, err
	}
	return uc.r.CreateActor(ctx, a)
}

func (uc *Usecase) UpdateActor(ctx context.Context, id int64, p Patch) (Actor, error) {
	if err := p.Validate(); err != nil {
		return Actor{}, err
	}
	return uc.r.UpdateActor(ctx, id, p)
}

// DeleteActor removes the actor and its relations; the id is never reused.
func (uc *Usecase) DeleteActor(ctx context.Context, id int64) error {
	deleted, err := uc.r.DeleteActor(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrActorNotFound
	}
	return nil
}

func (uc *Usecase) AddMovie(ctx context.Context, actorID, movieID int64) (Actor, error) {
	return uc.r.AppendMovie(ctx, actorID, movieID)
}

func (uc *Usecase) ClearMovies(ctx context.Context, actorID int64) (Actor, error) {
	return uc.r.ClearMovies(ctx, actorID)
}
