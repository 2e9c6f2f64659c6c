package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/4-in-a-row/engine/pkg/auth"
	"github.com/iamasit07/4-in-a-row/engine/pkg/httputil"
	"github.com/rs/zerolog/log"
)

const ClientIDKey = "client_id"

// AuthMiddleware requires a valid bearer token signed with secret. An empty
// secret turns authentication off.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}

		tokenString, err := httputil.GetTokenFromRequest(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		claims, err := auth.ValidateAccessToken(secret, tokenString)
		if err != nil {
			log.Debug().Str("component", "auth").Err(err).Msg("rejected token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(ClientIDKey, claims.ClientID)
		c.Next()
	}
}
