// utils/context.go
package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/altai-travel/booking/logger"
)

// GetUserIDFromContext extracts the requester ID placed in the Gin context by
// the auth middleware under "user_id" and parses it into a uuid.UUID.
func GetUserIDFromContext(c *gin.Context) (uuid.UUID, error) {
	raw, exists := c.Get("user_id")
	if !exists {
		logger.ErrorLogger.Error("User ID not found in context.")
		return uuid.Nil, fmt.Errorf("%w", ErrUserIDNotFound)
	}

	userIDStr, ok := raw.(string)
	if !ok {
		logger.ErrorLogger.Errorf("User ID in context is not a string, actual type: %T", raw)
		return uuid.Nil, fmt.Errorf("internal server error: invalid user ID format in context")
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to parse user ID string '%s' to UUID: %v", userIDStr, err)
		return uuid.Nil, fmt.Errorf("internal server error: invalid user ID format")
	}
	return userID, nil
}
