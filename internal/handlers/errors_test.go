package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/mfg-tool-dashboard/internal/importer"
	"github.com/yukikurage/mfg-tool-dashboard/internal/services"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err    error
		status int
		code   string
	}{
		{err: &services.ValidationError{Message: "All fields are required", Fields: []string{"eta"}}, status: http.StatusBadRequest, code: "MISSING_FIELD"},
		{err: &importer.HeaderError{Missing: []string{"ETA"}}, status: http.StatusBadRequest, code: "MISSING_FIELD"},
		{err: services.ErrInvalidCredentials, status: http.StatusUnauthorized, code: "INVALID_CREDENTIALS"},
		{err: services.ErrNotAuthenticated, status: http.StatusUnauthorized, code: "UNAUTHORIZED"},
		{err: services.ErrToolNotAssigned, status: http.StatusForbidden, code: "FORBIDDEN"},
		{err: services.ErrNoToolAssigned, status: http.StatusBadRequest, code: "INVALID_INPUT"},
		{err: services.ErrInvalidAssignedTool, status: http.StatusBadRequest, code: "INVALID_INPUT"},
		{err: services.ErrCannotDeleteSelf, status: http.StatusBadRequest, code: "INVALID_OPERATION"},
		{err: services.ErrEmployeeIDExists, status: http.StatusConflict, code: "CONFLICT"},
		{err: services.ErrUserNotFound, status: http.StatusNotFound, code: "NOT_FOUND"},
		{err: fmt.Errorf("%w: /tmp/x.csv", importer.ErrSourceNotFound), status: http.StatusNotFound, code: "NOT_FOUND"},
		{err: fmt.Errorf("%w: permission denied", importer.ErrUnreadable), status: http.StatusInternalServerError, code: "IO_ERROR"},
		{err: errors.New("disk full"), status: http.StatusInternalServerError, code: "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondError(c, tc.err)

			require.Equal(t, tc.status, w.Code)
			body := decodeBody(t, w)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tc.code, body["code"])
		})
	}
}

func TestRespondError_MissingFieldsDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	respondError(c, &services.ValidationError{Message: "All fields are required", Fields: []string{"next_action", "eta"}})

	body := decodeBody(t, w)
	assert.Equal(t, "All fields are required", body["message"])
	assert.Equal(t, map[string]any{"missing": []any{"next_action", "eta"}}, body["details"])
}

func TestRespondError_UserFacingMessages(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := map[error]string{
		services.ErrEmployeeIDExists: "Employee ID already exists",
		services.ErrNoToolAssigned:   "No tool assigned to your account",
		services.ErrCannotDeleteSelf: "Cannot delete your own account",
	}

	for err, message := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

		respondError(c, fmt.Errorf("wrapped: %w", err))

		assert.Equal(t, message, decodeBody(t, w)["message"])
	}
}
