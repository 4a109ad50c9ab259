package httpserver

import (
	"cinedb/pkg/jwt"

	"github.com/labstack/echo/v4/middleware"
)

type Options func(s *Server)

// WithRateLimitStore replaces the in-memory rate limiter store, e.g. with a
// redis store shared by all replicas.
func WithRateLimitStore(store middleware.RateLimiterStore) Options {
	return func(s *Server) {
		s.rateLimitStore = store
	}
}

// WithTokenProvider requires a bearer token signed by p on mutating routes.
func WithTokenProvider(p *jwt.JWTProvider) Options {
	return func(s *Server) {
		s.tokens = p
	}
}
