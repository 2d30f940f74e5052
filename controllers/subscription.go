package controllers

import (
	"net/http"
	"snapagenda-backend/config"
	"snapagenda-backend/models"
	"time"

	"github.com/gin-gonic/gin"
)

// subscriptionVerdict decides whether the account may use the
// authenticated API. Returns 0 when the account passes, otherwise the
// status code and error message to abort with. A trial without an end
// date counts as expired.
func subscriptionVerdict(user *models.User, now time.Time) (int, string) {
	switch user.SubscriptionStatus {
	case "active":
		return 0, ""
	case "trial":
		if user.TrialEndsAt == nil || user.TrialEndsAt.Before(now) {
			return http.StatusPaymentRequired, "Trial period has ended"
		}
		return 0, ""
	default:
		return http.StatusPaymentRequired, "Subscription required"
	}
}

// SubscriptionGate blocks the authenticated API for expired accounts.
// Trial accounts pass until their trial window closes.
func SubscriptionGate() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userId")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
			return
		}

		var user models.User
		if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}

		if code, message := subscriptionVerdict(&user, time.Now()); code != 0 {
			c.AbortWithStatusJSON(code, gin.H{"error": message})
			return
		}

		c.Next()
	}
}
