package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/learnnest/learnnest-backend/internal/identity"
	"github.com/learnnest/learnnest-backend/internal/model"
	"github.com/learnnest/learnnest-backend/internal/repository"
	"github.com/learnnest/learnnest-backend/internal/response"
)

const (
	// ContextKeyIdentity is the Gin context key for the verified identity.
	ContextKeyIdentity = "identity"
	// ContextKeyUser is the Gin context key for the resolved user record,
	// set by RequireRole after a successful role check.
	ContextKeyUser = "user"
)

// RoleResolver maps a verified identity's email to its stored user record.
// Satisfied by *service.UserService.
type RoleResolver interface {
	ResolveRole(ctx context.Context, email string) (*model.User, error)
}

// RequireAuth verifies the bearer credential and attaches the resulting
// identity to the request context. A missing or malformed Authorization
// header is rejected before the verifier is ever called; a rejected token
// aborts with 401 and no internal detail. Handlers and role gates behind
// this middleware can rely on the identity being present.
func RequireAuth(verifier identity.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := identity.ExtractBearer(c.GetHeader("Authorization"))
		if !ok {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		claims, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			return
		}

		c.Set(ContextKeyIdentity, claims)
		c.Next()
	}
}

// RequireRole resolves the authenticated identity's stored role and aborts
// with 403 unless it matches. The role is read fresh from the store on every
// request because role is mutable data — it is never derived from the
// credential itself. Must be registered after RequireAuth; a missing
// identity aborts with 401.
func RequireRole(resolver RoleResolver, role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetIdentity(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		user, err := resolver.ResolveRole(c.Request.Context(), claims.Email)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				// Authenticated but unknown to the platform: forbidden,
				// not a server error.
				response.AbortFail(c, http.StatusForbidden, response.ErrForbidden)
				return
			}
			response.AbortFail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}

		if user.Role != role {
			response.AbortFail(c, http.StatusForbidden, roleErrCode(role))
			return
		}

		c.Set(ContextKeyUser, user)
		c.Next()
	}
}

// ResolveUser resolves the authenticated identity into its user record
// without gating on a specific role. Used by routes any signed-in user may
// call but which need the stored record (email alone is not enough).
// A missing record aborts with 403, matching RequireRole.
func ResolveUser(resolver RoleResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetIdentity(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		user, err := resolver.ResolveRole(c.Request.Context(), claims.Email)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				response.AbortFail(c, http.StatusForbidden, response.ErrForbidden)
				return
			}
			response.AbortFail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}

		c.Set(ContextKeyUser, user)
		c.Next()
	}
}

// GetIdentity retrieves the verified identity from the Gin context.
func GetIdentity(c *gin.Context) *identity.Claims {
	val, exists := c.Get(ContextKeyIdentity)
	if !exists {
		return nil
	}
	claims, ok := val.(*identity.Claims)
	if !ok {
		return nil
	}
	return claims
}

// GetUser retrieves the resolved user record from the Gin context.
func GetUser(c *gin.Context) *model.User {
	val, exists := c.Get(ContextKeyUser)
	if !exists {
		return nil
	}
	user, ok := val.(*model.User)
	if !ok {
		return nil
	}
	return user
}

func roleErrCode(role model.Role) response.ErrCode {
	switch role {
	case model.RoleAdmin:
		return response.ErrAdminOnly
	case model.RoleTeacher:
		return response.ErrTeacherOnly
	default:
		return response.ErrForbidden
	}
}
