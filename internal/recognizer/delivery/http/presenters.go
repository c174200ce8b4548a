package http

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"nlu-router/internal/model"
	"nlu-router/internal/recognizer"
	"nlu-router/pkg/response"
)

// RESTChannelID is the channel of conversations started through this API.
const RESTChannelID = "rest"

// --- Request DTOs ---

type dialogFrameReq struct {
	ID    string         `json:"id" binding:"required"`
	State map[string]any `json:"state,omitempty"`
}

type recognizeReq struct {
	Text           string           `json:"text"`
	Locale         string           `json:"locale"          binding:"max=35"`
	ConversationID string           `json:"conversation_id" binding:"max=255"`
	ChannelID      string           `json:"channel_id"      binding:"max=64"`
	UserID         string           `json:"user_id"         binding:"max=255"`
	DialogStack    []dialogFrameReq `json:"dialog_stack"    binding:"dive"`
}

// validate rejects turns addressed to another channel and malformed dialog
// frames. Other channels own their conversations; only their hosts may write them.
func (r recognizeReq) validate() error {
	if r.ChannelID != "" && r.ChannelID != RESTChannelID {
		return errChannelNotAllowed
	}
	for _, f := range r.DialogStack {
		prefix, name, ok := strings.Cut(f.ID, ":")
		if !ok || prefix == "" || name == "" {
			return errInvalidDialogFrame
		}
	}
	return nil
}

// toTurn builds the turn; a missing conversation id starts a new conversation.
func (r recognizeReq) toTurn() model.Turn {
	conversation := r.ConversationID
	if conversation == "" {
		conversation = uuid.NewString()
	}

	turn := model.Turn{
		Locale: r.Locale,
		Address: model.Address{
			ChannelID:      RESTChannelID,
			ConversationID: conversation,
			UserID:         r.UserID,
		},
	}
	if r.Text != "" {
		turn.Message = &model.Message{ID: uuid.NewString(), Text: r.Text, Locale: r.Locale}
	}
	for _, f := range r.DialogStack {
		turn.DialogStack = append(turn.DialogStack, model.DialogFrame{ID: f.ID, State: f.State})
	}
	return turn
}

type contextReq struct {
	ChannelID      string `uri:"channel" binding:"required"`
	ConversationID string `uri:"id"      binding:"required"`
}

func (r contextReq) key() string {
	return model.Address{ChannelID: r.ChannelID, ConversationID: r.ConversationID}.Key()
}

// --- Response DTOs ---

type recognizeResp struct {
	ChannelID      string            `json:"channel_id"`
	ConversationID string            `json:"conversation_id"`
	Result         recognizer.Result `json:"result"`
	Persistence    string            `json:"persistence"`
	Warning        string            `json:"warning,omitempty"`
	RecognizedAt   response.DateTime `json:"recognized_at"`
}

func (h *handler) newRecognizeResp(turn model.Turn, out recognizer.Recognition) recognizeResp {
	resp := recognizeResp{
		ChannelID:      turn.Address.ChannelID,
		ConversationID: turn.Address.ConversationID,
		Result:         out.Result,
		Persistence:    out.Persistence.String(),
		RecognizedAt:   response.DateTime(time.Now()),
	}
	switch {
	case out.PersistErr != nil:
		resp.Warning = "conversation context was not saved"
	case out.LoadErr != nil:
		resp.Warning = "conversation context could not be loaded"
	}
	return resp
}

type contextResp struct {
	Key     string             `json:"key"`
	Context recognizer.Context `json:"context"`
}

func (h *handler) newContextResp(key string, c recognizer.Context) contextResp {
	return contextResp{Key: key, Context: c}
}
