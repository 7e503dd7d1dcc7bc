package handlers

import (
	"log"
	"net/http"

	"github.com/growcally/backend/internal/apperrors"
	"github.com/labstack/echo/v4"
)

// respondError maps a classified application error to its HTTP status. The
// internal cause is logged with its kind; the client only ever sees the
// user-facing message, and unclassified or integrity failures get a generic
// one.
func respondError(c echo.Context, err error) error {
	kind := apperrors.KindOf(err)

	var status int
	switch kind {
	case apperrors.KindValidation:
		status = http.StatusBadRequest
	case apperrors.KindNotFound:
		status = http.StatusNotFound
	case apperrors.KindAuth:
		status = http.StatusUnauthorized
	case apperrors.KindConflict:
		status = http.StatusConflict
	default:
		status = http.StatusInternalServerError
	}

	if status >= http.StatusInternalServerError {
		log.Printf("[Error] %s %s failed (%s): %v\n",
			c.Request().Method, c.Path(), kind, err)
		return echo.NewHTTPError(status, "Sorry! There has been an internal error.")
	}
	return echo.NewHTTPError(status, apperrors.MessageOf(err))
}
