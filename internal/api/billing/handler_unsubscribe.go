package billing

import (
	"errors"
	"net/http"
	"os"

	"mealplan-app/internal/domain/profiles"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	stripesub "github.com/stripe/stripe-go/v75/subscription"
)

// Unsubscribe asks Stripe to cancel at period end and clears the local
// mirror immediately. Stripe keeps the subscription billable until the
// period closes, so the mirror intentionally diverges for the remainder of
// the cycle: premium access is revoked right away.
func (h *Handler) Unsubscribe(c *gin.Context) {
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
	if profile.StripeSubscriptionID == nil || *profile.StripeSubscriptionID == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "No active subscription found."})
		return
	}
	subscriptionID := *profile.StripeSubscriptionID

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	if stripe.Key == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe key not configured"})
		return
	}

	canceledSub, err := stripesub.Update(subscriptionID, &stripe.SubscriptionParams{
		CancelAtPeriodEnd: stripe.Bool(true),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error."})
		return
	}

	if err := h.store.ClearSubscription(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscription": canceledSub})
}
