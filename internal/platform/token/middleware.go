package token

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContextUserID is the Gin context key holding the authenticated user's ID.
const ContextUserID = "userID"

// AuthRequired returns a Gin middleware that validates the bearer token with
// the given service and restricts access to authenticated users only.
func AuthRequired(tokens *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Verify the Authorization header
		d, err := tokens.Decode(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token expired"})
			return
		}

		// 2. Reject tokens past the expiry carried in their claims
		if tokens.Expired(d) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token expired"})
			return
		}

		// 3. Expose the subject to downstream handlers
		c.Set(ContextUserID, d.Subject)
		c.Next()
	}
}
