package dialog

import (
	"context"
	"sync"

	"nlu-router/internal/model"
	"nlu-router/internal/recognizer"
)

type sentMessage struct {
	Addr model.Address
	Text string
}

type recordingSender struct {
	mu   sync.Mutex
	sent []sentMessage
}

func (r *recordingSender) Send(ctx context.Context, addr model.Address, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, sentMessage{Addr: addr, Text: text})
	return nil
}

func (r *recordingSender) texts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.sent))
	for _, m := range r.sent {
		out = append(out, m.Text)
	}
	return out
}

type staticRecognizer struct {
	result recognizer.Result
	err    error
}

func (s staticRecognizer) Recognize(ctx context.Context, turn model.Turn) (recognizer.Result, error) {
	return s.result, s.err
}

// funcDialog adapts plain functions to Dialog.
type funcDialog struct {
	begin  func(ctx context.Context, s *Session, args any) error
	reply  func(ctx context.Context, s *Session) error
	resume func(ctx context.Context, s *Session, result any) error
}

func (f funcDialog) Begin(ctx context.Context, s *Session, args any) error {
	if f.begin == nil {
		return nil
	}
	return f.begin(ctx, s, args)
}

func (f funcDialog) Reply(ctx context.Context, s *Session) error {
	if f.reply == nil {
		return nil
	}
	return f.reply(ctx, s)
}

func (f funcDialog) Resume(ctx context.Context, s *Session, result any) error {
	if f.resume == nil {
		return nil
	}
	return f.resume(ctx, s, result)
}

// sayDialog sends a fixed line on begin and on every reply.
func sayDialog(text string) funcDialog {
	say := func(ctx context.Context, s *Session) error { return s.Send(ctx, text) }
	return funcDialog{
		begin: func(ctx context.Context, s *Session, _ any) error { return say(ctx, s) },
		reply: say,
	}
}

func textTurn(text string) model.Turn {
	return model.Turn{
		Message: &model.Message{Text: text},
		Locale:  "en",
		Address: model.Address{ChannelID: "test", ConversationID: "1"},
	}
}
