package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fitai/internal/models/db_models"
	"fitai/pkg/utils"
)

// UsageChecker is the entitlement gate's check side. Implemented by
// services.UsageService; declared here so the middleware does not depend on
// the service package.
type UsageChecker interface {
	Check(ctx context.Context, userID uuid.UUID, category db_models.UsageCategory) error
}

// CheckUsageLimit guards an AI-cost endpoint: it rejects the request with the
// quota details when the user's daily counter for the category is exhausted.
// The matching increment happens in the handler, after the action succeeds.
func CheckUsageLimit(checker UsageChecker, category db_models.UsageCategory) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
			c.Abort()
			return
		}

		if err := checker.Check(c.Request.Context(), userID, category); err != nil {
			utils.HandleServiceError(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}
