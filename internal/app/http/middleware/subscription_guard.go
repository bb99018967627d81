package middleware

import (
	"log"
	"net/http"

	"mealplan-app/internal/domain/profiles"

	"github.com/gin-gonic/gin"
)

// RequireActiveSubscription admits the request only when the authenticated
// user's Profile mirror says the subscription is active. Missing identity,
// missing profile, an inactive flag, or any store error all deny access
// (fail closed) and point the client at the subscribe flow.
func RequireActiveSubscription(store profiles.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "User not identified",
				"redirect": "/sign-up",
			})
			return
		}

		profile, err := store.GetByUserID(userID)
		if err != nil || !profile.SubscriptionActive {
			if err != nil && err != profiles.ErrNotFound {
				log.Println("subscription guard lookup failed:", err)
			}
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":    "Active subscription required",
				"redirect": "/subscribe",
			})
			return
		}

		c.Next()
	}
}
