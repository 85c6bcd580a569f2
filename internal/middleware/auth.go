package middleware

import (
	"strings"

	"recruit_backend/internal/auth"
	"recruit_backend/internal/logger"
	"recruit_backend/internal/models"
	"recruit_backend/internal/scope"
	"recruit_backend/internal/services"
	"recruit_backend/pkg/apperrors"
	"recruit_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthMiddleware проверяет JWT и строит scope.Caller из БД.
// Должен стоять после DBMiddleware.
func AuthMiddleware(authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header missing or invalid"))
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		claims, err := authService.ParseToken(tokenStr)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		db, ok := c.MustGet(string(contextkeys.DBContextKey)).(*gorm.DB)
		if !ok {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Session unavailable"))
			return
		}
		caller, err := authService.ResolveCaller(db, claims.UserID)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		ctx := scope.WithCaller(c.Request.Context(), caller)
		ctx = logger.WithUser(ctx, caller.UserID, string(caller.Role))
		c.Request = c.Request.WithContext(ctx)

		c.Set("userID", caller.UserID)
		c.Set("role", caller.Role)
		c.Set(string(contextkeys.CallerContextKey), caller)
		c.Next()
	}
}

// RequireRoles - доступ только для перечисленных ролей (403 для остальных)
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]bool)
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		role, ok := roleFromContext(c)
		if !ok {
			apperrors.HandleError(c, apperrors.NewForbiddenError("Access denied: no role"))
			return
		}
		if !roleSet[role] {
			apperrors.HandleError(c, apperrors.NewForbiddenError("Access denied: insufficient role"))
			return
		}
		c.Next()
	}
}

// RequirePermission - доступ по разрешению из auth.Permissions
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := roleFromContext(c)
		if !ok || !auth.HasPermission(role, permission) {
			apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
			return
		}
		c.Next()
	}
}

func roleFromContext(c *gin.Context) (models.UserRole, bool) {
	roleVal, exists := c.Get("role")
	if !exists {
		return "", false
	}
	switch role := roleVal.(type) {
	case models.UserRole:
		return role, true
	case string:
		return models.UserRole(role), true
	}
	return "", false
}

// GetCaller извлекает caller текущего запроса
func GetCaller(c *gin.Context) (*scope.Caller, bool) {
	return scope.FromContext(c.Request.Context())
}
