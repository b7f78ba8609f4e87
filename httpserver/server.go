package httpserver

import (
	"context"
	"net/http"
	"strings"

	"contactbook/contact"
	"contactbook/errs"
	"contactbook/pkg/config"

	sentryecho "github.com/getsentry/sentry-go/echo"
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

	ContactService contact.Service
}

func Default(cfg *config.Config) *Server {
	s := Server{
		Router:       echo.New(),
		Addr:         ":8080",
		AllowOrigins: []string{"*"},
	}
	if cfg.AllowOrigins != "" {
		s.AllowOrigins = strings.Split(cfg.AllowOrigins, ",")
	}

	s.Router.HTTPErrorHandler = customHTTPErrorHandler
	s.RegisterGlobalMiddlewares()
	s.RegisterHealthRoutes()
	s.RegisterSwaggerRoutes()
	s.RegisterContactRoutes()
	return &s
}

func (s *Server) RegisterGlobalMiddlewares() {
	s.Router.Use(middleware.Recover())
	s.Router.Use(middleware.Secure())
	s.Router.Use(middleware.RequestID())
	s.Router.Use(middleware.Gzip())
	s.Router.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	s.Router.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20)))

	// CORS
	if len(s.AllowOrigins) > 0 {
		s.Router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: s.AllowOrigins,
		}))
	}
}

func (s *Server) Start() error {
	return s.Router.Start(s.Addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.Router.Shutdown(ctx)
}

// customHTTPErrorHandler maps application errors to HTTP status codes and
// renders them in the uniform response envelope.
func customHTTPErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := "Internal server error"

	// Check if it's an Echo HTTPError (routing, binding)
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		}
	} else {
		switch errs.ErrorCode(err) {
		case errs.EINVALID:
			code = http.StatusBadRequest
			message = errs.ErrorMessage(err)
		case errs.ENOTFOUND:
			code = http.StatusNotFound
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
		case errs.EINTERNAL:
			code = http.StatusInternalServerError
			message = "Internal server error"
		}
	}

	// Don't write response if already committed
	if !c.Response().Committed {
		if err := writeError(c, code, message); err != nil {
			c.Logger().Error(err)
		}
	}
}
