package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusq/campusq-backend/internal/model"
	"github.com/campusq/campusq-backend/internal/response"
	"github.com/campusq/campusq-backend/internal/service"
)

const (
	// SessionCookieName is the HTTP-only cookie carrying the session token.
	SessionCookieName = "token"

	// ContextKeyActor is the Gin context key for the authenticated user.
	ContextKeyActor = "actor"
)

// RequireAuth validates the session cookie and loads the authenticated
// account into the context. Tokens for deleted accounts are rejected.
func RequireAuth(authService *service.AuthService, userService *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(SessionCookieName)
		if err != nil || tokenStr == "" {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		claims, err := authService.ValidateToken(tokenStr)
		if err != nil {
			if errors.Is(err, service.ErrTokenExpired) {
				response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenExpired)
				return
			}
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			return
		}

		actor, err := userService.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			return
		}

		c.Set(ContextKeyActor, actor)
		c.Next()
	}
}

// RequireFaculty rejects requests whose authenticated account is not faculty.
// Must run after RequireAuth.
func RequireFaculty() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := GetActor(c)
		if actor == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}
		if actor.Role != model.RoleFaculty {
			response.AbortFail(c, http.StatusForbidden, response.ErrFacultyOnly)
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects requests whose authenticated account is not an admin.
// Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := GetActor(c)
		if actor == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}
		if actor.Role != model.RoleAdmin {
			response.AbortFail(c, http.StatusForbidden, response.ErrAdminOnly)
			return
		}
		c.Next()
	}
}

// GetActor retrieves the authenticated user from the Gin context.
func GetActor(c *gin.Context) *model.User {
	val, exists := c.Get(ContextKeyActor)
	if !exists {
		return nil
	}
	actor, ok := val.(*model.User)
	if !ok {
		return nil
	}
	return actor
}
