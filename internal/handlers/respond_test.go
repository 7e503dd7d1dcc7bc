package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/growcally/backend/internal/apperrors"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", apperrors.Validation("Post id is required"), http.StatusBadRequest, "Post id is required"},
		{"not found", apperrors.NotFound("Post not found"), http.StatusNotFound, "Post not found"},
		{"auth", apperrors.Auth("Login failed"), http.StatusUnauthorized, "Login failed"},
		{"conflict", apperrors.Conflict("You have already liked this post"), http.StatusConflict, "You have already liked this post"},
		{"integrity hides detail", apperrors.Integrity("Account not found", errors.New("fk broken")), http.StatusInternalServerError, "Sorry! There has been an internal error."},
		{"unclassified hides detail", errors.New("pq: connection reset"), http.StatusInternalServerError, "Sorry! There has been an internal error."},
	}

	e := echo.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			c := e.NewContext(req, httptest.NewRecorder())

			err := respondError(c, tt.err)
			var httpErr *echo.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, tt.status, httpErr.Code)
			assert.Equal(t, tt.message, httpErr.Message)
		})
	}
}
