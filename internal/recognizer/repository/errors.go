package repository

import "errors"

var (
	ErrFailedToGet    = errors.New("failed to get conversation context")
	ErrFailedToSave   = errors.New("failed to save conversation context")
	ErrFailedToDecode = errors.New("failed to decode conversation context")
	ErrEmptyKey       = errors.New("conversation key is empty")
)
