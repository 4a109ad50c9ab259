package httpserver

import (
	"cinedb/errs"
	"cinedb/movie"
	"cinedb/pkg/fields"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterMovieRoutes(g *echo.Group) {
	read := []echo.MiddlewareFunc{s.requireMovieService}
	write := append(s.writeGuard(), s.requireMovieService)

	g.GET("/movies", s.handleListMovies, read...)
	g.GET("/movie", s.handleGetMovie, read...)
	g.POST("/movie", s.handleAddMovie, write...)
	g.PUT("/movie", s.handleUpdateMovie, write...)
	g.DELETE("/movie", s.handleDeleteMovie, write...)
	g.PUT("/movie-relations", s.handleAddMovieRelation, write...)
	g.DELETE("/movie-relations", s.handleClearMovieRelations, write...)
}

func (s *Server) requireMovieService(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if s.MovieService == nil {
			return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
		}
		return next(c)
	}
}

// handleListMovies godoc
// @Summary List movies
// @Tags movies
// @Produce json
// @Success 200 {array} movieResponse
// @Failure 500 {object} map[string]string
// @Router /api/movies [get]
func (s *Server) handleListMovies(c echo.Context) error {
	movies, err := s.MovieService.ListMovies(c.Request().Context())
	if err != nil {
		return err
	}

	result := make([]movieResponse, len(movies))
	for i, m := range movies {
		result[i] = toMovieResponse(m)
	}
	return writeSuccess(c, result)
}

// handleGetMovie godoc
// @Summary Get movie
// @Tags movies
// @Produce json
// @Param id query int true "Movie id"
// @Success 200 {object} movieResponse
// @Failure 400 {object} map[string]string
// @Router /api/movie [get]
func (s *Server) handleGetMovie(c echo.Context) error {
	data, err := requestData(c)
	if err != nil {
		return err
	}
	id, err := data.ID(fields.ID)
	if err != nil {
		return err
	}

	m, err := s.MovieService.GetMovie(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return writeSuccess(c, toMovieResponse(m))
}

// handleAddMovie godoc
// @Summary Create movie
// @Description Requires name, genre and an integer year; no other fields
// @Tags movies
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Success 200 {object} movieResponse
// @Failure 400 {object} map[string]string
// @Router /api/movie [post]
func (s *Server) handleAddMovie(c echo.Context) error {
	data, err := requestData(c)
	if err != nil {
		return err
	}
	m, err := movie.FromData(data)
	if err != nil {
		return err
	}

	created, err := s.MovieService.AddMovie(c.Request().Context(), m)
	if err != nil {
		return err
	}
	return writeSuccess(c, toMovieResponse(created))
}

// handleUpdateMovie godoc
// @Summary Update movie
// @Tags movies
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Success 200 {object} movieResponse
// @Failure 400 {object} map[string]string
// @Router /api/movie [put]
func (s *Server) handleUpdateMovie(c echo.Context) error {
	data, err := requestData(c)
	if err != nil {
		return err
	}
	id, patch, err := movie.PatchFromData(data)
	if err != nil {
		return err
	}

	updated, err := s.MovieService.UpdateMovie(c.Request().Context(), id, patch)
	if err != nil {
		return err
	}
	return writeSuccess(c, toMovieResponse(updated))
}

// handleDeleteMovie godoc
// @Summary Delete movie
// @Tags movies
// @Produce json
// @Param id query int true "Movie id"
// @Success 200 {object} messageResponse
// @Failure 400 {object} map[string]string
// @Router /api/movie [delete]
func (s *Server) handleDeleteMovie(c echo.Context) error {
	data, err := requestData(c)
	if err != nil {
		return err
	}
	id, err := data.ID(fields.ID)
	if err != nil {
		return err
	}

	if err := s.MovieService.DeleteMovie(c.Request().Context(), id); err != nil {
		return err
	}
	return writeMessage(c, deletedMessage)
}

// handleAddMovieRelation godoc
// @Summary Add actor to cast
// @Tags movies
// @Produce json
// @Param id query int true "Movie id"
// @Param relation_id query int true "Actor id"
// @Success 200 {object} movieRelationsResponse
// @Failure 400 {object} map[string]string
// @Router /api/movie-relations [put]
func (s *Server) handleAddMovieRelation(c echo.Context) error {
	data, err := requestData(c)
	if err != nil {
		return err
	}
	id, actorID, err := data.RelationIDs()
	if err != nil {
		return err
	}

	m, err := s.MovieService.AddActor(c.Request().Context(), id, actorID)
	if err != nil {
		return err
	}
	return writeSuccess(c, toMovieRelationsResponse(m))
}

// handleClearMovieRelations godoc
// @Summary Clear cast
// @Tags movies
// @Produce json
// @Param id query int true "Movie id"
// @Success 200 {object} movieRelationsResponse
// @Failure 400 {object} map[string]string
// @Router /api/movie-relations [delete]
func (s *Server) handleClearMovieRelations(c echo.Context) error {
	data, err := requestData(c)
	if err != nil {
		return err
	}
	id, err := data.ID(fields.ID)
	if err != nil {
		return err
	}

	m, err := s.MovieService.ClearActors(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return writeSuccess(c, toMovieRelationsResponse(m))
}
