package middleware

import (
	"recruit_backend/internal/logger"
	"recruit_backend/internal/ratelimit"
	"recruit_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// RateLimitMiddleware ограничивает частоту запросов. Ключ - id пользователя,
// если он уже известен, иначе IP. nil-лимитер отключает проверку.
func RateLimitMiddleware(limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}
		key := "ip:" + c.ClientIP()
		if caller, ok := GetCaller(c); ok {
			key = "user:" + caller.UserID
		}
		if !limiter.Allow(c.Request.Context(), key) {
			logger.CtxWarn(c.Request.Context(), "Rate limit exceeded", "key", key, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.NewRateLimitedError("Too many requests, try again later"))
			return
		}
		c.Next()
	}
}
