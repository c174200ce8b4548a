package model

import "fmt"

// Address identifies where a turn came from and where replies go.
type Address struct {
	ChannelID      string // "telegram", "rest", ...
	ConversationID string // chat id on the channel
	UserID         string
	UserName       string
}

// Key is the conversation identity used to scope stored state.
func (a Address) Key() string {
	return fmt.Sprintf("%s:%s", a.ChannelID, a.ConversationID)
}

// Message is the inbound user message of a turn.
type Message struct {
	ID     string
	Text   string
	Locale string
}

// DialogFrame is one entry of a conversation's dialog stack.
// ID has the form "<library>:<dialog>", e.g. "*:main" or "BotBuilder:prompt-text".
type DialogFrame struct {
	ID    string         `json:"id"`
	State map[string]any `json:"state,omitempty"`
}

// Turn is one user message/event cycle as seen by the host.
type Turn struct {
	Message     *Message
	Locale      string
	Address     Address
	DialogStack []DialogFrame // index 0 is the bottom of the stack
}

// Text returns the utterance text, or "" when the turn carries no message.
func (t Turn) Text() string {
	if t.Message == nil {
		return ""
	}
	return t.Message.Text
}

// TextLocale returns the message locale, falling back to the turn locale.
func (t Turn) TextLocale() string {
	if t.Message != nil && t.Message.Locale != "" {
		return t.Message.Locale
	}
	return t.Locale
}
