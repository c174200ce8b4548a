package main

import (
	"context"
	"fmt"
	"regexp"

	"nlu-router/internal/dialog"
)

const (
	dialogRoot   = dialog.DefaultDialogID
	dialogHelp   = "Help"
	dialogName   = "Name"
	dialogCancel = "Cancel"

	keyUserName = "user_name"
)

const (
	msgGreeting     = "Hi! Ask me anything, or say \"help\"."
	msgUnrecognized = "Sorry, I did not get that. Say \"help\" to see what I can do."
	msgHelp         = "I answer questions from my trained corpus. Say \"my name\" to introduce yourself or \"cancel\" to start over."
	msgAskName      = "What is your name?"
	msgNiceToMeet   = "Nice to meet you, %s!"
	msgCancelled    = "Okay, starting over."
)

var cancelPattern = regexp.MustCompile(`(?i)^\s*(cancel|stop|start over)\s*$`)

// registerDialogs installs the conversational surface served over Telegram.
// Corpus answers of the form "/Help" or "/Name" begin these dialogs.
func registerDialogs(b *dialog.Bot) error {
	dialogs := map[string]dialog.Dialog{
		dialogRoot:   rootDialog{},
		dialogHelp:   helpDialog{},
		dialogName:   nameDialog{},
		dialogCancel: cancelDialog{},
	}
	for id, d := range dialogs {
		if err := b.Dialog(id, d); err != nil {
			return err
		}
	}

	for _, intent := range []string{dialogHelp, dialogName} {
		if err := b.Trigger(intent, dialog.TriggerOptions{Intent: intent}); err != nil {
			return err
		}
	}
	return b.Trigger(dialogCancel, dialog.TriggerOptions{Pattern: cancelPattern})
}

// rootDialog stays at the bottom of every stack and handles what nothing else claimed.
type rootDialog struct{}

func (rootDialog) Begin(ctx context.Context, s *dialog.Session, _ any) error {
	return s.Send(ctx, msgGreeting)
}

func (rootDialog) Reply(ctx context.Context, s *dialog.Session) error {
	if s.Text() == "" {
		return nil
	}
	return s.Send(ctx, msgUnrecognized)
}

type helpDialog struct{}

func (helpDialog) Begin(ctx context.Context, s *dialog.Session, _ any) error {
	if err := s.Send(ctx, msgHelp); err != nil {
		return err
	}
	return s.EndDialog(ctx, nil)
}

func (helpDialog) Reply(ctx context.Context, s *dialog.Session) error {
	return s.EndDialog(ctx, nil)
}

// nameDialog asks for the user's name through a text prompt.
type nameDialog struct{}

func (nameDialog) Begin(ctx context.Context, s *dialog.Session, _ any) error {
	return s.PromptText(ctx, msgAskName)
}

func (nameDialog) Reply(ctx context.Context, s *dialog.Session) error {
	return s.PromptText(ctx, msgAskName)
}

func (nameDialog) Resume(ctx context.Context, s *dialog.Session, result any) error {
	name, _ := result.(string)
	if name == "" {
		return s.PromptText(ctx, msgAskName)
	}
	s.DialogData()[keyUserName] = name
	if err := s.Send(ctx, fmt.Sprintf(msgNiceToMeet, name)); err != nil {
		return err
	}
	return s.EndDialog(ctx, name)
}

type cancelDialog struct{}

func (cancelDialog) Begin(ctx context.Context, s *dialog.Session, _ any) error {
	if err := s.Send(ctx, msgCancelled); err != nil {
		return err
	}
	return s.EndDialog(ctx, nil)
}

func (cancelDialog) Reply(ctx context.Context, s *dialog.Session) error {
	return s.EndDialog(ctx, nil)
}
