package stripewebhooks

import (
	"errors"
	"log"

	"mealplan-app/internal/domain/profiles"

	"github.com/stripe/stripe-go/v75"
)

// handleInvoicePaymentFailed suspends access but keeps the subscription id
// and tier in place: Stripe retries failed invoices, and a later successful
// charge must still be able to correlate back to this profile.
func (h *Handler) handleInvoicePaymentFailed(invoice *stripe.Invoice) error {
	if invoice.Subscription == nil || invoice.Subscription.ID == "" {
		log.Println("No subscriptionId found in invoice", invoice.ID)
		return nil
	}
	subscriptionID := invoice.Subscription.ID

	profile, err := h.store.GetBySubscriptionID(subscriptionID)
	if err != nil {
		if errors.Is(err, profiles.ErrNotFound) {
			log.Println("No profile found for subscription", subscriptionID)
			return nil
		}
		return err
	}

	return h.store.SuspendSubscription(profile.UserID)
}
