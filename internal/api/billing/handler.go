package billing

import (
	"mealplan-app/internal/domain/plans"
	"mealplan-app/internal/domain/profiles"
)

// Handler bundles the billing endpoints around their two dependencies: the
// Profile mirror and the fixed plan catalog. Both are injected so tests can
// substitute them.
type Handler struct {
	store   profiles.Store
	catalog *plans.Catalog
}

func NewHandler(store profiles.Store, catalog *plans.Catalog) *Handler {
	return &Handler{store: store, catalog: catalog}
}
