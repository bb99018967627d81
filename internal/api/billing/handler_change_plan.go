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

// ChangePlan swaps the single item of the user's Stripe subscription to a
// new plan's price, billing the difference immediately. A plan change also
// re-affirms the subscription: any pending cancellation is cleared. This is
// the one path that mirrors state synchronously outside the webhook — the
// Stripe response here is authoritative for the operation.
func (h *Handler) ChangePlan(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	var body struct {
		NewPlan string `json:"newPlan"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.NewPlan == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "New plan is required."})
		return
	}

	priceID, ok := h.catalog.ResolvePriceID(body.NewPlan)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid planType"})
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

	sub, err := stripesub.Get(subscriptionID, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error."})
		return
	}
	if sub.Items == nil || len(sub.Items.Data) == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Subscription has no price item"})
		return
	}
	item := sub.Items.Data[0]

	updatedSub, err := stripesub.Update(subscriptionID, &stripe.SubscriptionParams{
		CancelAtPeriodEnd: stripe.Bool(false),
		Items: []*stripe.SubscriptionItemsParams{
			{
				ID:    stripe.String(item.ID),
				Price: stripe.String(priceID),
			},
		},
		ProrationBehavior: stripe.String("create_prorations"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error."})
		return
	}

	tier := body.NewPlan
	if err := h.store.SetSubscription(userID, updatedSub.ID, &tier); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscription": updatedSub})
}
