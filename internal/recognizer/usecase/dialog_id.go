package usecase

import (
	"strings"

	"nlu-router/internal/model"
	"nlu-router/internal/recognizer"
)

// DialogID returns the id of the first developer-level dialog on the stack, scanning
// from the bottom. Framework frames carry other prefixes and are skipped.
func DialogID(turn model.Turn) string {
	for _, frame := range turn.DialogStack {
		if id, ok := strings.CutPrefix(frame.ID, recognizer.DialogPrefix); ok {
			return id
		}
	}
	return ""
}
