package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err    error
		status int
	}{
		{ErrQuizNotFound, http.StatusNotFound},
		{fmt.Errorf("%w: index 4", ErrQuestionNotFound), http.StatusNotFound},
		{ErrAttemptNotFound, http.StatusNotFound},
		{fmt.Errorf("%w: title is required", ErrValidation), http.StatusBadRequest},
		{ErrAttemptSubmitted, http.StatusConflict},
		{ErrQuizInactive, http.StatusConflict},
		{ErrAttemptConflict, http.StatusConflict},
		{ErrEmailRegistered, http.StatusConflict},
		{ErrInvalidCredentials, http.StatusUnauthorized},
		{ErrPermissionDenied, http.StatusForbidden},
		{fmt.Errorf("save attempt: %w: %w", ErrStorage, errors.New("connection reset")), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		HandleError(c, tc.err)
		assert.Equal(t, tc.status, w.Code, tc.err.Error())

		var resp Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, tc.status, resp.Code)
	}
}

func TestHandleErrorValidationMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleError(c, fmt.Errorf("%w: title is required", ErrValidation))

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "title is required", resp.Message)
}

func TestParsePage(t *testing.T) {
	page, limit := ParsePage("", "")
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, limit)

	page, limit = ParsePage("3", "500")
	assert.Equal(t, 3, page)
	assert.Equal(t, 100, limit)

	page, limit = ParsePage("-2", "abc")
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, limit)
}
