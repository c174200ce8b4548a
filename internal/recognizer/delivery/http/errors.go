package http

import (
	"errors"
	"net/http"

	"nlu-router/internal/recognizer"
	"nlu-router/internal/recognizer/repository"
	pkgErrors "nlu-router/pkg/errors"
)

var (
	errChannelNotAllowed  = pkgErrors.NewHTTPError(http.StatusBadRequest, `channel_id must be empty or "rest"`)
	errInvalidDialogFrame = pkgErrors.NewHTTPError(http.StatusBadRequest, "dialog_stack frame id must look like <prefix>:<name>")
)

// mapError translates use-case and store errors into HTTP errors.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, recognizer.ErrRecognitionUnavailable):
		return pkgErrors.NewHTTPError(http.StatusServiceUnavailable, "recognition engine unavailable")
	case errors.Is(err, recognizer.ErrEmptyUtterance):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, "text is empty")
	case errors.Is(err, repository.ErrEmptyKey):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, "conversation key is empty")
	case errors.Is(err, repository.ErrFailedToGet), errors.Is(err, repository.ErrFailedToDecode):
		return pkgErrors.NewHTTPError(http.StatusServiceUnavailable, "context store unavailable")
	default:
		return pkgErrors.ErrInternalServerError
	}
}
