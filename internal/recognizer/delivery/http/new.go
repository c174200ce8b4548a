package http

import (
	"github.com/gin-gonic/gin"

	"nlu-router/internal/recognizer"
	"nlu-router/internal/recognizer/repository"
	"nlu-router/pkg/log"
)

// Handler is the public interface for the recognizer HTTP delivery layer.
type Handler interface {
	Recognize(c *gin.Context)
	GetContext(c *gin.Context)
}

type handler struct {
	l    log.Logger
	uc   recognizer.UseCase
	repo repository.ContextRepository
}

// New creates a new HTTP handler for the recognizer domain.
func New(l log.Logger, uc recognizer.UseCase, repo repository.ContextRepository) *handler {
	return &handler{
		l:    l,
		uc:   uc,
		repo: repo,
	}
}
