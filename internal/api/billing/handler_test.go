package billing

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"mealplan-app/internal/domain/plans"
	"mealplan-app/internal/domain/profiles"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	byUser  map[string]*profiles.Profile
	mutated bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{byUser: map[string]*profiles.Profile{}}
}

func (f *fakeStore) GetByUserID(userID string) (*profiles.Profile, error) {
	p, ok := f.byUser[userID]
	if !ok {
		return nil, profiles.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeStore) GetBySubscriptionID(subscriptionID string) (*profiles.Profile, error) {
	for _, p := range f.byUser {
		if p.StripeSubscriptionID != nil && *p.StripeSubscriptionID == subscriptionID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, profiles.ErrNotFound
}

func (f *fakeStore) Create(p *profiles.Profile) error {
	f.mutated = true
	cp := *p
	f.byUser[p.UserID] = &cp
	return nil
}

func (f *fakeStore) SetSubscription(userID, subscriptionID string, tier *string) error {
	f.mutated = true
	return nil
}

func (f *fakeStore) SuspendSubscription(userID string) error {
	f.mutated = true
	return nil
}

func (f *fakeStore) ClearSubscription(userID string) error {
	f.mutated = true
	return nil
}

func testCatalog() *plans.Catalog {
	return plans.NewCatalog(plans.Config{
		WeekPriceID:  "price_week",
		MonthPriceID: "price_month",
		YearPriceID:  "price_year",
	})
}

func setUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
		}
		c.Next()
	}
}

func newTestRouter(store profiles.Store, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(store, testCatalog())
	r := gin.New()
	r.Use(setUser(userID))
	r.POST("/checkout", h.CreateCheckoutSession)
	r.POST("/change-plan", h.ChangePlan)
	r.POST("/unsubscribe", h.Unsubscribe)
	r.GET("/check-subscription", h.CheckSubscription)
	r.GET("/subscription-status", h.SubscriptionStatus)
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCreateCheckoutSessionValidation(t *testing.T) {
	t.Run("missing fields", func(t *testing.T) {
		store := newFakeStore()
		r := newTestRouter(store, "u1")

		for _, body := range []string{
			`{}`,
			`{"planType":"month"}`,
			`{"planType":"month","userId":"u1"}`,
			`{"userId":"u1","email":"a@b.com"}`,
		} {
			rec := doJSON(r, http.MethodPost, "/checkout", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		}
		assert.False(t, store.mutated)
	})

	t.Run("plan type outside the fixed set fails before any Stripe call", func(t *testing.T) {
		store := newFakeStore()
		r := newTestRouter(store, "u1")

		rec := doJSON(r, http.MethodPost, "/checkout", `{"planType":"day","userId":"u1","email":"a@b.com"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid planType")
		assert.False(t, store.mutated)
	})

	t.Run("malformed body", func(t *testing.T) {
		r := newTestRouter(newFakeStore(), "u1")
		rec := doJSON(r, http.MethodPost, "/checkout", `{"planType":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestChangePlanValidation(t *testing.T) {
	t.Run("unauthenticated", func(t *testing.T) {
		r := newTestRouter(newFakeStore(), "")
		rec := doJSON(r, http.MethodPost, "/change-plan", `{"newPlan":"month"}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing newPlan", func(t *testing.T) {
		r := newTestRouter(newFakeStore(), "u1")
		rec := doJSON(r, http.MethodPost, "/change-plan", `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown newPlan", func(t *testing.T) {
		r := newTestRouter(newFakeStore(), "u1")
		rec := doJSON(r, http.MethodPost, "/change-plan", `{"newPlan":"day"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("no profile is not found, no mutation", func(t *testing.T) {
		store := newFakeStore()
		r := newTestRouter(store, "u1")

		rec := doJSON(r, http.MethodPost, "/change-plan", `{"newPlan":"month"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Profile not found")
		assert.False(t, store.mutated)
	})

	t.Run("profile without subscription id is not found, no processor call", func(t *testing.T) {
		store := newFakeStore()
		store.byUser["u1"] = &profiles.Profile{UserID: "u1"}
		r := newTestRouter(store, "u1")

		rec := doJSON(r, http.MethodPost, "/change-plan", `{"newPlan":"month"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "No active subscription found")
		assert.False(t, store.mutated)
	})
}

func TestUnsubscribeValidation(t *testing.T) {
	t.Run("unauthenticated", func(t *testing.T) {
		r := newTestRouter(newFakeStore(), "")
		rec := doJSON(r, http.MethodPost, "/unsubscribe", ``)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("no profile", func(t *testing.T) {
		store := newFakeStore()
		r := newTestRouter(store, "u1")

		rec := doJSON(r, http.MethodPost, "/unsubscribe", ``)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.False(t, store.mutated)
	})

	t.Run("no subscription id", func(t *testing.T) {
		store := newFakeStore()
		store.byUser["u1"] = &profiles.Profile{UserID: "u1"}
		r := newTestRouter(store, "u1")

		rec := doJSON(r, http.MethodPost, "/unsubscribe", ``)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.False(t, store.mutated)
	})
}

func TestCheckSubscription(t *testing.T) {
	t.Run("requires userId", func(t *testing.T) {
		r := newTestRouter(newFakeStore(), "")
		rec := doJSON(r, http.MethodGet, "/check-subscription", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("active profile", func(t *testing.T) {
		store := newFakeStore()
		subID := "sub_1"
		store.byUser["u1"] = &profiles.Profile{
			UserID:               "u1",
			SubscriptionActive:   true,
			StripeSubscriptionID: &subID,
		}
		r := newTestRouter(store, "")

		rec := doJSON(r, http.MethodGet, "/check-subscription?userId=u1", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"subscriptionActive": true}`, rec.Body.String())
	})

	t.Run("missing profile reads as not subscribed", func(t *testing.T) {
		r := newTestRouter(newFakeStore(), "")

		rec := doJSON(r, http.MethodGet, "/check-subscription?userId=nobody", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"subscriptionActive": false}`, rec.Body.String())
	})
}

func TestSubscriptionStatus(t *testing.T) {
	t.Run("returns the tier", func(t *testing.T) {
		store := newFakeStore()
		subID := "sub_1"
		tier := "year"
		store.byUser["u1"] = &profiles.Profile{
			UserID:               "u1",
			SubscriptionActive:   true,
			SubscriptionTier:     &tier,
			StripeSubscriptionID: &subID,
		}
		r := newTestRouter(store, "u1")

		rec := doJSON(r, http.MethodGet, "/subscription-status", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"subscription": {"subscriptionTier": "year", "subscriptionActive": true}}`, rec.Body.String())
	})

	t.Run("no profile is not found", func(t *testing.T) {
		r := newTestRouter(newFakeStore(), "u1")
		rec := doJSON(r, http.MethodGet, "/subscription-status", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
