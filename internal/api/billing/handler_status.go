package billing

import (
	"errors"
	"net/http"

	"mealplan-app/internal/domain/profiles"

	"github.com/gin-gonic/gin"
)

// CheckSubscription is the internal read used by the access gate and by
// edge middleware. A missing profile reads as not-subscribed rather than an
// error so callers stay fail-closed without special-casing.
func (h *Handler) CheckSubscription(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
		return
	}

	profile, err := h.store.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, profiles.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{"subscriptionActive": false})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscriptionActive": profile.SubscriptionActive})
}

// SubscriptionStatus returns the authenticated user's current tier.
func (h *Handler) SubscriptionStatus(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	profile, err := h.store.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, profiles.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscription": gin.H{
		"subscriptionTier":   profile.SubscriptionTier,
		"subscriptionActive": profile.SubscriptionActive,
	}})
}
