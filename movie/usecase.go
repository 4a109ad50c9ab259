package movie

import "context"

type Service interface {
	ListMovies(ctx context.Context) ([]Movie, error)
	GetMovie(ctx context.Context, id int64) (Movie, error)
	AddMovie(ctx context.Context, m Movie) (Movie, error)
	UpdateMovie(ctx context.Context, id int64, p Patch) (Movie, error)
	DeleteMovie(ctx context.Context, id int64) error
	AddActor(ctx context.Context, movieID, actorID int64) (Movie, error)
	ClearActors(ctx context.Context, movieID int64) (Movie, error)
}

type Repository interface {
	AllMovies(ctx context.Context) ([]Movie, error)
	GetByID(ctx context.Context, id int64) (Movie, error)
	CreateMovie(ctx context.Context, m Movie) (Movie, error)
	UpdateMovie(ctx context.Context, id int64, p Patch) (Movie, error)
	DeleteMovie(ctx context.Context, id int64) (int64, error)
	AppendActor(ctx context.Context, movieID, actorID int64) (Movie, error)
	ClearActors(ctx context.Context, movieID int64) (Movie, error)
}

type Usecase struct {
	r Repository
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{r: r}
}

func (uc *Usecase) ListMovies(ctx context.Context) ([]Movie, error) {
	return uc.r.AllMovies(ctx)
}

func (uc *Usecase) GetMovie(ctx context.Context, id int64) (Movie, error) {
	return uc.r.GetByID(ctx, id)
}

func (uc *Usecase) AddMovie(ctx context.Context, m Movie) (Movie, error) {
	if err := m.Validate(); err != nil {
		return Movie{}, err
	}
	return uc.r.CreateMovie(ctx, m)
}

func (uc *Usecase) UpdateMovie(ctx context.Context, id int64, p Patch) (Movie, error) {
	if err := p.Validate(); err != nil {
		return Movie{}, err
	}
	return uc.r.UpdateMovie(ctx, id, p)
}

func (uc *Usecase) DeleteMovie(ctx context.Context, id int64) error {
	deleted, err := uc.r.DeleteMovie(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrMovieNotFound
	}
	return nil
}

func (uc *Usecase) AddActor(ctx context.Context, movieID, actorID int64) (Movie, error) {
	return uc.r.AppendActor(ctx, movieID, actorID)
}

func (uc *Usecase) ClearActors(ctx context.Context, movieID int64) (Movie, error) {
	return uc.r.ClearActors(ctx, movieID)
}
