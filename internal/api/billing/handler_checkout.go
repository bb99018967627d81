package billing

import (
	"net/http"
	"os"

	"mealplan-app/config"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
)

// CreateCheckoutSession starts a Stripe-hosted checkout for a (user, plan)
// pair. Validation happens before any Stripe call, and no local state is
// written here: the mirror only moves when the checkout webhook lands.
func (h *Handler) CreateCheckoutSession(c *gin.Context) {
	var body struct {
		PlanType string `json:"planType"`
		UserID   string `json:"userId"`
		Email    string `json:"email"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if body.PlanType == "" || body.UserID == "" || body.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "planType, userId, and email are required."})
		return
	}

	priceID, ok := h.catalog.ResolvePriceID(body.PlanType)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid planType"})
		return
	}

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	if stripe.Key == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe key not configured"})
		return
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		CustomerEmail:      stripe.String(body.Email),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(priceID), Quantity: stripe.Int64(1)},
		},
		SuccessURL: stripe.String(config.APP_URL + "/?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(config.APP_URL + "/subscribe"),
	}
	// Correlation back to the local user rides on session metadata, not on
	// customer-email matching.
	params.AddMetadata("userId", body.UserID)
	params.AddMetadata("planType", body.PlanType)

	s, err := checkoutsession.New(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": s.URL})
}
