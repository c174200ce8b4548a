package http

import (
	"github.com/gin-gonic/gin"

	"nlu-router/pkg/response"
)

// Recognize godoc
// @Summary     Recognize an utterance
// @Description Classifies the text against the trained model, merges extracted entities into
// @Description the conversation context and persists it when it changed. A request without
// @Description text yields the neutral result.
// @Tags        Recognizer
// @Accept      json
// @Produce     json
// @Param       body body recognizeReq true "Turn to recognize"
// @Success     200  {object} recognizeResp
// @Failure     400  {object} response.Resp "Bad Request"
// @Failure     503  {object} response.Resp "Recognition engine unavailable"
// @Failure     500  {object} response.Resp "Internal Server Error"
// @Router      /api/v1/recognize [POST]
func (h *handler) Recognize(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processRecognizeReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	turn := req.toTurn()
	output, err := h.uc.Recognize(ctx, turn)
	if err != nil {
		h.l.Errorf(ctx, "uc.Recognize: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newRecognizeResp(turn, output))
}

// GetContext godoc
// @Summary     Get a conversation context
// @Description Returns the stored context of a conversation; unknown conversations have an empty context.
// @Tags        Recognizer
// @Produce     json
// @Param       Authorization header string true "Bearer admin token"
// @Param       channel path string true "Channel ID"
// @Param       id      path string true "Conversation ID"
// @Success     200 {object} contextResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     401 {object} response.Resp "Unauthorized"
// @Failure     503 {object} response.Resp "Context store unavailable"
// @Router      /api/v1/conversations/{channel}/{id}/context [GET]
func (h *handler) GetContext(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processContextReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	key := req.key()
	convCtx, err := h.repo.GetContext(ctx, key)
	if err != nil {
		h.l.Errorf(ctx, "repo.GetContext: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newContextResp(key, convCtx))
}
