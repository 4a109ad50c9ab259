package httpserver

import (
	"net/http"

	"cinedb/actor"
	"cinedb/movie"

	"github.com/labstack/echo/v4"
)

const deletedMessage = "Record successfully deleted"

type actorResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Gender      string `json:"gender"`
	DateOfBirth string `json:"date_of_birth"`
}

type actorRelationsResponse struct {
	actorResponse
	Filmography string `json:"filmography"`
}

type movieResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Genre string `json:"genre"`
	Year  int    `json:"year"`
}

type movieRelationsResponse struct {
	movieResponse
	Cast string `json:"cast"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func toActorResponse(a actor.Actor) actorResponse {
	return actorResponse{
		ID:          a.ID,
		Name:        a.Name,
		Gender:      a.Gender,
		DateOfBirth: a.DateOfBirth.Format(actor.DateFormat),
	}
}

func toActorRelationsResponse(a actor.Actor) actorRelationsResponse {
	return actorRelationsResponse{
		actorResponse: toActorResponse(a),
		Filmography:   a.Filmography.String(),
	}
}

func toMovieResponse(m movie.Movie) movieResponse {
	return movieResponse{
		ID:    m.ID,
		Name:  m.Name,
		Genre: m.Genre,
		Year:  m.Year,
	}
}

func toMovieRelationsResponse(m movie.Movie) movieRelationsResponse {
	return movieRelationsResponse{
		movieResponse: toMovieResponse(m),
		Cast:          m.Cast.String(),
	}
}

func writeSuccess(c echo.Context, result interface{}) error {
	return c.JSON(http.StatusOK, result)
}

func writeMessage(c echo.Context, msg string) error {
	return writeSuccess(c, messageResponse{Message: msg})
}
