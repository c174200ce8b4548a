package dialog

import "errors"

var (
	ErrDialogNotFound  = errors.New("dialog not found")
	ErrDuplicateDialog = errors.New("dialog already registered")
	ErrEmptyStack      = errors.New("dialog stack is empty")
	ErrNilSender       = errors.New("sender is required")
	ErrInvalidTrigger  = errors.New("trigger needs an intent or a pattern")
)
