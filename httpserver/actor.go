package httpserver

import (
	"errors"

	"cinedb/actor"
	"cinedb/errs"
	"cinedb/pkg/fields"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterActorRoutes(g *echo.Group) {
	read := []echo.MiddlewareFunc{s.requireActorService}
	write := append(s.writeGuard(), s.requireActorService)

	g.GET("/actors", s.handleListActors, read...)
	g.GET("/actor", s.handleGetActor, read...)
	g.POST("/actor", s.handleAddActor, write...)
	g.PUT("/actor", s.handleUpdateActor, write...)
	g.DELETE("/actor", s.handleDeleteActor, write...)
	g.PUT("/actor-relations", s.handleAddActorRelation, write...)
	g.DELETE("/actor-relations", s.handleClearActorRelations, write...)
}

func (s *Server) requireActorService(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if s.ActorService == nil {
			return errs.Errorf(errs.ENOTIMPLEMENTED, "actor service not configured")
		}
		return next(c)
	}
}

// handleListActors godoc
// @Summary List actors
// @Tags actors
// @Produce json
// @Success 200 {array} actorResponse
// @Failure 500 {object} map[string]string
// @Router /api/actors [get]
func (s *Server) handleListActors(c echo.Context) error {
	actors, err := s.ActorService.ListActors(c.Request().Context())
	if err != nil {
		return err
	}

	result := make([]actorResponse, len(actors))
	for i, a := range actors {
		result[i] = toActorResponse(a)
	}
	return writeSuccess(c, result)
}

// handleGetActor godoc
// @Summary Get actor
// @Tags actors
// @Produce json
// @Param id query int true "Actor id"
// @Success 200 {object} actorResponse
// @Failure 400 {object} map[string]string
// @Router /api/actor [get]
func (s *Server) handleGetActor(c echo.Context) error {
	data, err := requestData(c)
	if err != nil {
		return err
	}
	id, err := data.ID(fields.ID)
	if err != nil {
		return err
	}

	a, err := s.ActorService.GetActor(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return writeSuccess(c, toActorResponse(a))
}

// handleAddActor godoc
// @Summary Create actor
// @Description Requires name, gender and date_of_birth (YYYY-MM-DD); no other fields
// @Tags actors
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Success 200 {object} actorResponse
// @Failure 400 {object} map[string]string
// @Router /api/actor [post]
func (s *Server) handleAddActor(c echo.Context) error {
	data, err := requestData(c)
	if err != nil {
		return err
	}
	a, err := actor.FromData(data)
	if err != nil {
		return err
	}

	created, err := s.ActorService.AddActor(c.Request().Context(), a)
	if err != nil {
		return err
	}
	return writeSuccess(c, toActorResponse(created))
}

// handleUpdateActor godoc
// @Summary Update actor
// @Description Updates only the supplied fields of the actor with the given id
// @Tags actors
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Success 200 {object} actorResponse
// @Failure 400 {object} map[string]string
// @Router /api/actor [put]
func (s *Server) handleUpdateActor(c echo.Context) error {
	data, err := requestData(c)
	if err != nil {
		return err
	}
	id, patch, err := actor.PatchFromData(data)
	if errors.Is(err, actor.ErrInvalidDate) {
		// An unknown id is reported before a malformed date.
		if _, lookupErr := s.ActorService.GetActor(c.Request().Context(), id); lookupErr != nil {
			return lookupErr
		}
	}
	if err != nil {
		return err
	}

	updated, err := s.ActorService.UpdateActor(c.Request().Context(), id, patch)
	if err != nil {
		return err
	}
	return writeSuccess(c, toActorResponse(updated))
}

// handleDeleteActor godoc
// @Summary Delete actor
// @Tags actors
// @Produce json
// @Param id query int true "Actor id"
// @Success 200 {object} messageResponse
// @Failure 400 {object} map[string]string
// @Router /api/actor [delete]
func (s *Server) handleDeleteActor(c echo.Context) error {
	data, err := requestData(c)
	if err != nil {
		return err
	}
	id, err := data.ID(fields.ID)
	if err != nil {
		return err
	}

	if err := s.ActorService.DeleteActor(c.Request().Context(), id); err != nil {
		return err
	}
	return writeMessage(c, deletedMessage)
}

// handleAddActorRelation godoc
// @Summary Add movie to filmography
// @Description Links movie relation_id to actor id; the actor joins the movie's cast
// @Tags actors
// @Produce json
// @Param id query int true "Actor id"
// @Param relation_id query int true "Movie id"
// @Success 200 {object} actorRelationsResponse
// @Failure 400 {object} map[string]string
// @Router /api/actor-relations [put]
func (s *Server) handleAddActorRelation(c echo.Context) error {
	data, err := requestData(c)
	if err != nil {
		return err
	}
	id, movieID, err := data.RelationIDs()
	if err != nil {
		return err
	}

	a, err := s.ActorService.AddMovie(c.Request().Context(), id, movieID)
	if err != nil {
		return err
	}
	return writeSuccess(c, toActorRelationsResponse(a))
}

// handleClearActorRelations godoc
// @Summary Clear filmography
// @Tags actors
// @Produce json
// @Param id query int true "Actor id"
// @Success 200 {object} actorRelationsResponse
// @Failure 400 {object} map[string]string
// @Router /api/actor-relations [delete]
func (s *Server) handleClearActorRelations(c echo.Context) error {
	data, err := requestData(c)
	if err != nil {
		return err
	}
	id, err := data.ID(fields.ID)
	if err != nil {
		return err
	}

	a, err := s.ActorService.ClearMovies(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return writeSuccess(c, toActorRelationsResponse(a))
}
