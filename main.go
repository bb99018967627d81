package main

import (
	"time"

	"mealplan-app/config"
	"mealplan-app/database"
	"mealplan-app/internal/api/billing"
	"mealplan-app/internal/api/mealplan"
	plansapi "mealplan-app/internal/api/plans"
	stripewebhooks "mealplan-app/internal/api/stripewebhook"
	routes "mealplan-app/internal/app/http"
	"mealplan-app/internal/domain/plans"
	"mealplan-app/internal/domain/profiles"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()
	database.InitDB()

	store := profiles.NewStore(database.DB)
	catalog := plans.NewCatalog(plans.Config{
		WeekPriceID:  config.STRIPE_PRICE_WEEKLY,
		MonthPriceID: config.STRIPE_PRICE_MONTHLY,
		YearPriceID:  config.STRIPE_PRICE_YEARLY,
	})

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, routes.Handlers{
		Billing:  billing.NewHandler(store, catalog),
		Webhook:  stripewebhooks.NewHandler(store, config.STRIPE_WEBHOOK_SECRET),
		Plans:    plansapi.NewHandler(catalog),
		MealPlan: mealplan.NewHandler(mealplan.NewClient(config.OPENROUTER_API_KEY, config.OPENROUTER_MODEL)),
		Store:    store,
	})

	r.Run(":" + config.PORT)
}
