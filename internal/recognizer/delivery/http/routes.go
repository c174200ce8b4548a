package http

import (
	"github.com/gin-gonic/gin"

	"nlu-router/internal/middleware"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods.
func RegisterRoutes(rg *gin.RouterGroup, h Handler, mw middleware.Middleware) {
	rg.POST("/recognize", mw.RateLimit(), h.Recognize)

	conversations := rg.Group("/conversations")
	{
		conversations.GET("/:channel/:id/context", mw.AdminToken(), h.GetContext)
	}
}
