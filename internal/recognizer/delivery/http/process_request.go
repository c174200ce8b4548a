package http

import (
	"github.com/gin-gonic/gin"
)

// processRecognizeReq binds and validates the recognize request body.
func (h *handler) processRecognizeReq(c *gin.Context) (recognizeReq, error) {
	var req recognizeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}

// processContextReq binds the conversation URI params.
func (h *handler) processContextReq(c *gin.Context) (contextReq, error) {
	var req contextReq
	if err := c.ShouldBindUri(&req); err != nil {
		return req, err
	}
	return req, nil
}
