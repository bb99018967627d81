package plans

import (
	"net/http"

	planscatalog "mealplan-app/internal/domain/plans"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	catalog *planscatalog.Catalog
}

func NewHandler(catalog *planscatalog.Catalog) *Handler {
	return &Handler{catalog: catalog}
}

// ListPlans returns the fixed plan table for the pricing page.
func (h *Handler) ListPlans(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.List())
}
