package httpserver

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	tgDelivery "nlu-router/internal/dialog/delivery/telegram"
	"nlu-router/internal/middleware"
	recognizerHTTP "nlu-router/internal/recognizer/delivery/http"
	"nlu-router/pkg/log"
)

// Checker is a dependency checked by the readiness endpoint.
type Checker interface {
	Ping(ctx context.Context) error
}

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string
	middleware  middleware.Middleware

	// Domains
	telegramHandler   tgDelivery.Handler
	recognizerHandler recognizerHTTP.Handler

	// Readiness checks by name
	checkers map[string]Checker
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string
	Middleware  middleware.Middleware

	// Domains
	TelegramHandler   tgDelivery.Handler
	RecognizerHandler recognizerHTTP.Handler

	Checkers map[string]Checker
}

// New creates a new HTTPServer instance with all routes mapped.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:                 logger,
		gin:               gin.New(),
		port:              cfg.Port,
		mode:              cfg.Mode,
		environment:       cfg.Environment,
		middleware:        cfg.Middleware,
		telegramHandler:   cfg.TelegramHandler,
		recognizerHandler: cfg.RecognizerHandler,
		checkers:          cfg.Checkers,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}
	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv *HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	return nil
}
