package routes

import (
	authapi "mealplan-app/internal/api/auth"
	"mealplan-app/internal/api/billing"
	"mealplan-app/internal/api/mealplan"
	plansapi "mealplan-app/internal/api/plans"
	stripewebhooks "mealplan-app/internal/api/stripewebhook"
	"mealplan-app/internal/app/http/middleware"
	"mealplan-app/internal/domain/profiles"

	"github.com/gin-gonic/gin"
)

// Handlers carries the constructed endpoint handlers into route
// registration; main wires them up once at startup.
type Handlers struct {
	Billing  *billing.Handler
	Webhook  *stripewebhooks.Handler
	Plans    *plansapi.Handler
	MealPlan *mealplan.Handler
	Store    profiles.Store
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	// Raw-body routes stay outside the sanitizer: the webhook signature is
	// computed over the exact bytes Stripe sent.
	r.POST("/webhook", h.Webhook.Handle)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/check-subscription", h.Billing.CheckSubscription)

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)
	public.GET("/plans", h.Plans.ListPlans)

	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/subscription-status", h.Billing.SubscriptionStatus)
	auth.POST("/checkout", h.Billing.CreateCheckoutSession)
	auth.POST("/change-plan", h.Billing.ChangePlan)
	auth.POST("/unsubscribe", h.Billing.Unsubscribe)

	// Subscribed users
	subscribed := auth.Group("/")
	subscribed.Use(middleware.RequireActiveSubscription(h.Store))
	subscribed.POST("/generate-mealplan", h.MealPlan.Generate)
}
