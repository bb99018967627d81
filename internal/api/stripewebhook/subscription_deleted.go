package stripewebhooks

import (
	"errors"
	"log"

	"mealplan-app/internal/domain/profiles"

	"github.com/stripe/stripe-go/v75"
)

// handleCustomerSubscriptionDeleted is the terminal transition: Stripe will
// never reference this subscription id again, so the mirror drops it along
// with the tier.
func (h *Handler) handleCustomerSubscriptionDeleted(sub *stripe.Subscription) error {
	if sub.ID == "" {
		return nil
	}

	profile, err := h.store.GetBySubscriptionID(sub.ID)
	if err != nil {
		if errors.Is(err, profiles.ErrNotFound) {
			log.Println("No profile found for subscription", sub.ID)
			return nil
		}
		return err
	}

	return h.store.ClearSubscription(profile.UserID)
}
