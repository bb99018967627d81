package mealplan

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	client *Client
}

func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

type DailyMealPlan struct {
	Breakfast string `json:"Breakfast,omitempty"`
	Lunch     string `json:"Lunch,omitempty"`
	Dinner    string `json:"Dinner,omitempty"`
	Snacks    string `json:"Snacks,omitempty"`
}

// Generate produces a structured meal plan from the user's preferences.
// The model is asked for bare JSON; anything that doesn't parse into the
// expected day/meal shape is a generation failure, not a 200.
func (h *Handler) Generate(c *gin.Context) {
	var body struct {
		DietType  string `json:"dietType" binding:"required"`
		Calories  int    `json:"calories" binding:"required"`
		Allergies string `json:"allergies"`
		Cuisine   string `json:"cuisine"`
		Snacks    bool   `json:"snacks"`
		Days      int    `json:"days" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	prompt := buildPrompt(body.Days, body.DietType, body.Calories, body.Allergies, body.Cuisine, body.Snacks)

	content, err := h.client.Complete(c.Request.Context(), prompt)
	if err != nil {
		log.Println("meal plan generation failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	var parsed map[string]DailyMealPlan
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &parsed); err != nil {
		log.Println("failed to parse AI response:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse meal plan. Please try again."})
		return
	}
	if len(parsed) == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid meal plan format. Please try again."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"mealPlan": parsed})
}

func buildPrompt(days int, dietType string, calories int, allergies, cuisine string, snacks bool) string {
	orNone := func(s, fallback string) string {
		if s == "" {
			return fallback
		}
		return s
	}
	snacksLine := "no"
	snacksMeal := ""
	if snacks {
		snacksLine = "yes"
		snacksMeal = "- Snacks"
	}

	return fmt.Sprintf(`You are a professional nutritionist. Create a %d-day meal plan for an
individual following a %s diet for %d calories per day.

Allergies or restrictions: %s.
Preferred cuisine: %s.
Snacks included: %s.

For each day, provide:

	- Breakfast
	- Lunch
	- Dinner
	%s

Use simple ingredients and provide brief instructions.
Include approximate calorie counts for each meal.
Structure the response as a JSON object where each day is a key, and each
meal (breakfast, lunch, dinner, snacks) is a subkey. Example:
{
	"Monday": {
		"Breakfast": "Oatmeal with fruits - 350 calories",
		"Lunch": "Grilled chicken salad - 500 calories",
		"Dinner": "Steamed vegetables with quinoa - 600 calories",
		"Snacks": "Greek yogurt - 150 calories"
	}
}

Return just the JSON with no extra commentaries and no backticks.`,
		days, dietType, calories, orNone(allergies, "none"), orNone(cuisine, "no preference"), snacksLine, snacksMeal)
}
