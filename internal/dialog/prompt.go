package dialog

import "context"

const (
	promptKey   = "prompt"
	promptScore = 0.5
)

// promptText collects one line of text and returns it to the parent dialog.
type promptText struct{}

func (promptText) Begin(ctx context.Context, s *Session, args any) error {
	prompt, _ := args.(string)
	s.DialogData()[promptKey] = prompt
	if prompt == "" {
		return nil
	}
	return s.Send(ctx, prompt)
}

func (promptText) Reply(ctx context.Context, s *Session) error {
	if text := s.Text(); text != "" {
		return s.EndDialog(ctx, text)
	}
	if prompt, _ := s.DialogData()[promptKey].(string); prompt != "" {
		return s.Send(ctx, prompt)
	}
	return nil
}

func (promptText) Score(ctx context.Context, s *Session) float64 {
	if s.Text() == "" {
		return 0
	}
	return promptScore
}
