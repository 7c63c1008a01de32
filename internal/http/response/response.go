package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brightgive/donorcrm-backend/internal/pkg/crmerr"
)

// errInternal is what a 500 looks like from outside. Wrapped failures carry
// database error text, which stays in server logs only.
var errInternal = errors.New("internal server error")

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

// RespondServiceError maps the service error taxonomy onto HTTP statuses so
// every handler reports failures the same way.
func RespondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, crmerr.ErrInvalidArgument):
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
	case errors.Is(err, crmerr.ErrNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, crmerr.ErrConflict):
		RespondError(c, http.StatusConflict, "conflict", err)
	case errors.Is(err, crmerr.ErrUnauthorized):
		RespondError(c, http.StatusUnauthorized, "unauthorized", err)
	case errors.Is(err, crmerr.ErrForbidden):
		RespondError(c, http.StatusForbidden, "forbidden", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal_error", errInternal)
	}
}
