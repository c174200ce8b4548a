package corpus

import "errors"

var (
	ErrUnknownLocale     = errors.New("unknown locale")
	ErrEmptyCorpus       = errors.New("corpus has no intents")
	ErrUnsupportedFormat = errors.New("unsupported corpus format")
	ErrMissingSheet      = errors.New("required sheet is missing")
	ErrInvalidRow        = errors.New("invalid corpus row")
)
