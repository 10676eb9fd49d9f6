package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sam-zarila/essa-admin/configs"
	"github.com/sam-zarila/essa-admin/internal/pkg/consts"
)

// RequireRole gates mutating admin routes on the role claims forwarded by
// the auth proxy. Claims arrive as a comma separated header value.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := c.GetHeader(configs.ADMIN_ROLE_HEADER)
		if claims == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"code":    consts.ErrorRoleClaimMissing.ErrorCode(),
				"message": consts.ErrorRoleClaimMissing.Error(),
			})
			return
		}
		for _, claim := range strings.Split(claims, ",") {
			if strings.EqualFold(strings.TrimSpace(claim), role) {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"code":    consts.ErrorRoleClaimMissing.ErrorCode(),
			"message": consts.ErrorRoleClaimMissing.Error(),
		})
	}
}

// ActorFromRequest resolves the admin identity recorded on audit entries.
func ActorFromRequest(c *gin.Context) string {
	if actor := c.GetHeader(configs.ADMIN_USER_HEADER); actor != "" {
		return actor
	}
	return "unknown"
}
