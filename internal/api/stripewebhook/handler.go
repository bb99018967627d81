package stripewebhooks

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"mealplan-app/internal/domain/profiles"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/webhook"
)

// Handler is the asynchronous state-transition engine: it is the sole
// writer of subscription transitions triggered by Stripe. Signature
// verification runs against the raw body before any dispatch; an
// unverified event is never acted upon.
type Handler struct {
	store          profiles.Store
	endpointSecret string
}

func NewHandler(store profiles.Store, endpointSecret string) *Handler {
	return &Handler{store: store, endpointSecret: endpointSecret}
}

func (h *Handler) Handle(c *gin.Context) {
	payload, err := readStripeBody(c, 65536)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Error reading request body"})
		return
	}

	event, err := webhook.ConstructEventWithOptions(
		payload,
		c.GetHeader("Stripe-Signature"),
		h.endpointSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		log.Println("Stripe signature verification failed:", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Signature verification failed"})
		return
	}

	// From here on Stripe always gets an ack. A failing handler is logged
	// and contained; bouncing the request would only trigger redelivery of
	// an event we already cannot process.
	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			log.Println("Failed to parse checkout session:", err)
			break
		}
		if err := h.handleCheckoutSessionCompleted(&session); err != nil {
			log.Println("checkout.session.completed handler failed:", err)
		}

	case "invoice.payment_failed":
		var invoice stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
			log.Println("Failed to parse invoice:", err)
			break
		}
		if err := h.handleInvoicePaymentFailed(&invoice); err != nil {
			log.Println("invoice.payment_failed handler failed:", err)
		}

	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			log.Println("Failed to parse subscription:", err)
			break
		}
		if err := h.handleCustomerSubscriptionDeleted(&sub); err != nil {
			log.Println("customer.subscription.deleted handler failed:", err)
		}

	default:
		log.Printf("Unhandled event type %s", event.Type)
	}

	c.JSON(http.StatusOK, gin.H{})
}

func readStripeBody(c *gin.Context, maxBytes int64) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	return io.ReadAll(c.Request.Body)
}
