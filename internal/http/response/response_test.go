package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/brightgive/donorcrm-backend/internal/pkg/crmerr"
)

func respond(t *testing.T, err error) (int, ErrorEnvelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	RespondServiceError(c, err)

	var envelope ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return rec.Code, envelope
}

func TestServiceErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{crmerr.ErrInvalidArgument, http.StatusBadRequest, "invalid_argument"},
		{crmerr.ErrNotFound, http.StatusNotFound, "not_found"},
		{crmerr.ErrConflict, http.StatusConflict, "conflict"},
		{crmerr.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{crmerr.ErrForbidden, http.StatusForbidden, "forbidden"},
		{crmerr.ErrTransactionFailed, http.StatusInternalServerError, "internal_error"},
		{crmerr.ErrQueryFailed, http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		status, envelope := respond(t, fmt.Errorf("wrapped: %w", tc.err))
		if status != tc.status {
			t.Errorf("%v: status = %d, want %d", tc.err, status, tc.status)
		}
		if envelope.Error.Code != tc.code {
			t.Errorf("%v: code = %q, want %q", tc.err, envelope.Error.Code, tc.code)
		}
	}
}

func TestInternalErrorsHideDetail(t *testing.T) {
	leaked := `merge transaction: ERROR: update or delete on table "contact" violates foreign key constraint`
	status, envelope := respond(t, fmt.Errorf("%s: %w", leaked, crmerr.ErrTransactionFailed))

	if status != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", status)
	}
	if envelope.Error.Message != "internal server error" {
		t.Errorf("message = %q, want the fixed generic string", envelope.Error.Message)
	}
	if strings.Contains(envelope.Error.Message, "constraint") {
		t.Errorf("database error text leaked to the client: %q", envelope.Error.Message)
	}
}
