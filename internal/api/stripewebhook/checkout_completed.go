package stripewebhooks

import (
	"log"

	"github.com/stripe/stripe-go/v75"
)

// handleCheckoutSessionCompleted activates a subscription for the first
// time. Correlation comes from the session metadata the checkout initiator
// attached; metadata is an untrusted side-channel, so a session without it
// (e.g. created by hand in the dashboard) is skipped, not failed.
func (h *Handler) handleCheckoutSessionCompleted(session *stripe.CheckoutSession) error {
	userID := ""
	if session.Metadata != nil {
		userID = session.Metadata["userId"]
	}
	if userID == "" {
		log.Println("No userId found in session", session.ID)
		return nil
	}

	if session.Subscription == nil || session.Subscription.ID == "" {
		log.Println("No subscriptionId found in session", session.ID)
		return nil
	}
	subscriptionID := session.Subscription.ID

	var tier *string
	if planType := session.Metadata["planType"]; planType != "" {
		tier = &planType
	}

	return h.store.SetSubscription(userID, subscriptionID, tier)
}
