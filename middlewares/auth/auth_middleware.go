package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/altai-travel/booking/logger"
	"github.com/altai-travel/booking/utils"
)

// AuthMiddleware validates the bearer token and places the requester identity
// in the context under "user_id". Account management lives in a separate
// identity service; this middleware only needs the subject claim.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.WarnLogger.Warn("No authorization header provided")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": "NO_TOKEN", "error": "No authorization token provided."})
			return
		}

		var tokenString string
		if len(authHeader) > 7 && strings.ToLower(authHeader[:7]) == "bearer " {
			tokenString = authHeader[7:]
		} else {
			logger.WarnLogger.Warn("Invalid authorization header format")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": "INVALID_AUTH_FORMAT", "error": "Invalid authorization format."})
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return utils.GetJWTSecret(), nil
		})
		if err != nil || !token.Valid {
			logger.WarnLogger.Warnf("Failed to parse JWT token: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": "INVALID_TOKEN", "error": "Invalid token."})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": "INVALID_TOKEN", "error": "Invalid token claims."})
			return
		}

		if userID, exists := claims["user_id"]; exists {
			c.Set("user_id", userID)
		} else if sub, exists := claims["sub"]; exists {
			c.Set("user_id", sub)
		} else {
			logger.WarnLogger.Warn("No user identifier found in token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": "INVALID_TOKEN", "error": "Invalid token claims."})
			return
		}

		c.Next()
	}
}
