package apperrors

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

func serveError(t *testing.T, err error) (int, ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

	HandleError(c, err)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestHandleError_AppError(t *testing.T) {
	SetDebug(false)
	code, resp := serveError(t, ErrAlreadyApplied(errors.New("duplicate key")))

	assert.Equal(t, http.StatusConflict, code)
	assert.False(t, resp.Success)
	assert.Equal(t, "Already applied to this job", resp.Message)
	assert.Equal(t, CodeAlreadyApplied, resp.Code)
	assert.Empty(t, resp.Stack)
}

func TestHandleError_UnknownErrorIsHiddenInProduction(t *testing.T) {
	SetDebug(false)
	code, resp := serveError(t, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Internal server error", resp.Message)
	assert.NotContains(t, resp.Message, "connection refused")
	assert.Empty(t, resp.Stack)
}

func TestHandleError_DebugIncludesStack(t *testing.T) {
	SetDebug(true)
	t.Cleanup(func() { SetDebug(false) })

	code, resp := serveError(t, InternalError(errors.New("boom")))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Contains(t, resp.Message, "boom")
	assert.NotEmpty(t, resp.Stack)

	_, resp = serveError(t, NewNotFoundError("job_order", "Job order not found"))
	assert.Equal(t, "Job order not found", resp.Message)
	assert.NotEmpty(t, resp.Stack)
}

func TestAsAppError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", ErrInvalidCredentials)

	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidCredentials, appErr.Code)

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
}

func TestWithDetails_DoesNotMutateSentinel(t *testing.T) {
	withDetails := ErrInvalidCredentials.WithDetails(map[string]string{"email": "unknown"})

	assert.NotNil(t, withDetails.Details)
	assert.Nil(t, ErrInvalidCredentials.Details)
}
