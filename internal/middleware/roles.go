package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abdulrahmanisme/leadup-backend/internal/logger"
	"github.com/abdulrahmanisme/leadup-backend/internal/repos"
	"github.com/abdulrahmanisme/leadup-backend/internal/types"
)

type RoleMiddleware struct {
	log          *logger.Logger
	userRoleRepo repos.UserRoleRepo
}

func NewRoleMiddleware(log *logger.Logger, userRoleRepo repos.UserRoleRepo) *RoleMiddleware {
	middlewareLog := log.With("middleware", "RoleMiddleware")
	return &RoleMiddleware{log: middlewareLog, userRoleRepo: userRoleRepo}
}

// RequireRole allows the request through when the user holds any of the
// given roles. Superadmin passes every gate.
func (rm *RoleMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		userRoles, err := rm.userRoleRepo.GetRoles(c.Request.Context(), nil, userID)
		if err != nil {
			rm.log.Error("Failed to load user roles", "user_id", userID, "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to check permissions"})
			return
		}

		held := map[string]bool{}
		for _, r := range userRoles {
			held[r] = true
		}
		if held[types.RoleSuperAdmin] {
			c.Next()
			return
		}
		for _, want := range roles {
			if held[want] {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	}
}
