package apperrors

import (
	"log/slog"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	goerrors "github.com/go-errors/errors"
)

// ErrorResponse - единый ответ об ошибке
type ErrorResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Code    ErrorCode   `json:"code"`
	Domain  string      `json:"domain,omitempty"`
	Details interface{} `json:"details,omitempty"`
	Stack   string      `json:"stack,omitempty"`
}

// GinErrorHandler - обработчик ошибок для Gin
type GinErrorHandler struct {
	Debug bool
}

var debugMode atomic.Bool

// SetDebug включает стек и текст внутренних ошибок в ответе (режим development)
func SetDebug(enabled bool) {
	debugMode.Store(enabled)
}

// HandleGinError - основная логика обработки ошибок для Gin
func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= 500 {
		slog.ErrorContext(c.Request.Context(), "Server error",
			"error", appErr.Error(),
			"path", c.Request.URL.Path,
		)
	}

	resp := ErrorResponse{
		Success: false,
		Message: appErr.Message,
		Code:    appErr.Code,
		Domain:  appErr.Domain,
		Details: appErr.Details,
	}

	if h.Debug {
		if appErr.HTTPCode >= 500 && appErr.Err != nil {
			resp.Message = appErr.Message + ": " + appErr.Err.Error()
		}
		stack := appErr.Stack()
		if len(stack) == 0 {
			stack = goerrors.Wrap(appErr, 2).Stack()
		}
		resp.Stack = string(stack)
	} else if appErr.HTTPCode >= 500 {
		// В продакшене скрываем детали
		resp.Message = "Internal server error"
		resp.Details = nil
	}

	c.AbortWithStatusJSON(appErr.HTTPCode, resp)
}

// HandleError - быстрая функция-помощник для Gin
func HandleError(c *gin.Context, err error) {
	handler := &GinErrorHandler{Debug: debugMode.Load()}
	handler.HandleGinError(c, err)
}

// AsAppError - пытается преобразовать error в *AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
