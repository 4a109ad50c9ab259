package httpserver

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"cinedb/actor"
	"cinedb/errs"
	"cinedb/movie"
	"cinedb/pkg/config"
	"cinedb/pkg/jwt"
	"cinedb/pkg/ratelimit"
	"cinedb/pkg/sentry"

	sentryecho "github.com/getsentry/sentry-go/echo"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	// Router is the Echo router instance
	Router *echo.Echo

	// Addr represents the address the server will listen on
	Addr string

	// Allowed origins for CORS
	AllowOrigins []string

	ActorService actor.Service

	MovieService movie.Service

	rateLimitStore middleware.RateLimiterStore

	// tokens guards the mutating routes when set
	tokens *jwt.JWTProvider
}

func Default(cfg *config.Config, options ...Options) *Server {
	s := Server{
		Router:       echo.New(),
		Addr:         ":8080",
		AllowOrigins: cfg.Origins(),
	}
	if cfg.Port != 0 {
		s.Addr = fmt.Sprintf(":%d", cfg.Port)
	}
	if cfg.Auth.JWTSecret != "" {
		s.tokens = jwt.NewJWTProvider(cfg.Auth.JWTSecret, cfg.TokenLifetime())
	}
	for _, fn := range options {
		fn(&s)
	}
	if s.rateLimitStore == nil {
		s.rateLimitStore = ratelimit.NewStore(nil, ratelimit.Options{
			Capacity:       cfg.RateLimit.Capacity,
			RefillInterval: cfg.RateLimit.RefillInterval,
			TTL:            cfg.RateLimit.TTL,
		})
	}

	s.Router.HideBanner = true
	s.Router.HTTPErrorHandler = customHTTPErrorHandler
	s.RegisterGlobalMiddlewares()

	api := s.Router.Group("/api")
	s.RegisterActorRoutes(api)
	s.RegisterMovieRoutes(api)
	s.RegisterHealthRoutes()
	return &s
}

func (s *Server) RegisterGlobalMiddlewares() {
	s.Router.Use(middleware.Recover())
	s.Router.Use(middleware.Secure())
	s.Router.Use(middleware.RequestID())
	s.Router.Use(requestLogger())
	s.Router.Use(middleware.Gzip())
	s.Router.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	s.Router.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: s.rateLimitStore,
	}))

	// CORS
	if len(s.AllowOrigins) > 0 {
		s.Router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: s.AllowOrigins,
		}))
	}
}

// writeGuard returns the middlewares placed in front of every mutating route.
func (s *Server) writeGuard() []echo.MiddlewareFunc {
	if s.tokens == nil {
		return nil
	}
	return []echo.MiddlewareFunc{echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return s.tokens.ParseAccessToken(auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.Errorf(errs.EUNAUTHORIZED, "Missing or invalid token")
		},
	})}
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			}
			level := slog.LevelInfo
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
				if v.Status >= http.StatusInternalServerError {
					level = slog.LevelError
				}
			}
			slog.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	})
}

func (s *Server) Start() error {
	return s.Router.Start(s.Addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.Router.Shutdown(ctx)
}

// customHTTPErrorHandler maps application errors to HTTP status codes.
// Bad input and unknown ids share 400; storage failures are reported to
// Sentry and answered with a generic 500.
func customHTTPErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := "Internal server error"

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		message = fmt.Sprint(he.Message)
	} else {
		switch errs.ErrorCode(err) {
		case errs.EINVALID, errs.ENOTFOUND:
			code = http.StatusBadRequest
			message = errs.ErrorMessage(err)
		case errs.ECONFLICT:
			code = http.StatusConflict
			message = errs.ErrorMessage(err)
		case errs.EUNAUTHORIZED:
			code = http.StatusUnauthorized
			message = errs.ErrorMessage(err)
		case errs.ENOTIMPLEMENTED:
			code = http.StatusNotImplemented
			message = errs.ErrorMessage(err)
		}
	}

	// The request logger handles errors first; skip the second pass.
	if c.Response().Committed {
		return
	}
	if code >= http.StatusInternalServerError {
		sentry.WithContext(c).Error(err)
	}
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, map[string]string{"error": message})
	}
	if err != nil {
		c.Logger().Error(err)
	}
}
