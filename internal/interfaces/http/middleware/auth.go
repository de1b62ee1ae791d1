// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/repairshop-backend/internal/pkg/auth"
)

// Context keys set by the auth middleware
const (
	ContextSubject = "auth_subject"
	ContextClaims  = "token_claims"
)

// AuthMiddleware creates JWT authentication middleware. The verified
// subject is attached to the context for access logs only.
func AuthMiddleware(verifier *auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := auth.ExtractTokenFromHeader(c.GetHeader("Authorization"))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header required",
			})
			c.Abort()
			return
		}

		claims, err := verifier.Verify(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ContextSubject, claims.Subject)
		c.Set(ContextClaims, claims)

		c.Next()
	}
}

// SubjectFromContext returns the authenticated subject, if any
func SubjectFromContext(c *gin.Context) (string, bool) {
	subject, exists := c.Get(ContextSubject)
	if !exists {
		return "", false
	}
	s, ok := subject.(string)
	return s, ok
}
