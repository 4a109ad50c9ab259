package httpserver_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cinedb/httpserver"
	"cinedb/movie"
	"cinedb/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestWriteRoutesRequireToken(t *testing.T) {
	server := httpserver.Default(authConfig())
	svc := new(MockMovieService)
	server.MovieService = svc

	t.Run("reads stay public", func(t *testing.T) {
		svc.On("ListMovies", mock.Anything).Return([]movie.Movie{}, nil).Once()
		rec := httptest.NewRecorder()

		server.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/movies", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing token is rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()

		server.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/movie?id=7", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Missing or invalid token", decodeError(t, rec))
		svc.AssertNotCalled(t, "DeleteMovie")
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		token, err := signTestToken("another-secret", accessClaims())
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodDelete, "/api/movie?id=7", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		server.Router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token passes", func(t *testing.T) {
		token, err := signTestToken(testJWTSecret, accessClaims())
		require.NoError(t, err)
		svc.On("DeleteMovie", mock.Anything, int64(7)).Return(nil).Once()
		req := httptest.NewRequest(http.MethodDelete, "/api/movie?id=7", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		server.Router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})
}

func TestWithTokenProvider(t *testing.T) {
	provider := jwt.NewJWTProvider("provider-secret", time.Minute)
	server := httpserver.Default(testConfig(), httpserver.WithTokenProvider(provider))
	svc := new(MockMovieService)
	server.MovieService = svc
	token, err := provider.GenerateAccessToken("cli")
	require.NoError(t, err)
	svc.On("ClearActors", mock.Anything, int64(7)).Return(dune, nil).Once()

	unauthorized := httptest.NewRecorder()
	server.Router.ServeHTTP(unauthorized, httptest.NewRequest(http.MethodDelete, "/api/movie-relations?id=7", nil))
	req := httptest.NewRequest(http.MethodDelete, "/api/movie-relations?id=7", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	authorized := httptest.NewRecorder()
	server.Router.ServeHTTP(authorized, req)

	assert.Equal(t, http.StatusUnauthorized, unauthorized.Code)
	assert.Equal(t, http.StatusOK, authorized.Code)
}
