package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetActiveAccount returns the account ID that the authentication
// middleware resolved for the current request.
func GetActiveAccount(ctx *gin.Context) (uuid.UUID, error) {
	value, exists := ctx.Get("account_id")
	if !exists {
		return uuid.Nil, fmt.Errorf("error occurred, not authorized to access this resource")
	}

	accountID, ok := value.(uuid.UUID)
	if !ok {
		return uuid.Nil, fmt.Errorf("an error occurred")
	}

	return accountID, nil
}
