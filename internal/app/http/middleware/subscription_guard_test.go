package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"mealplan-app/internal/domain/profiles"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubStore struct {
	profile *profiles.Profile
	err     error
}

func (s *stubStore) GetByUserID(string) (*profiles.Profile, error) {
	return s.profile, s.err
}
func (s *stubStore) GetBySubscriptionID(string) (*profiles.Profile, error) {
	return s.profile, s.err
}
func (s *stubStore) Create(*profiles.Profile) error                { return nil }
func (s *stubStore) SetSubscription(string, string, *string) error { return nil }
func (s *stubStore) SuspendSubscription(string) error              { return nil }
func (s *stubStore) ClearSubscription(string) error                { return nil }

func guardedRouter(store profiles.Store, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
		}
	})
	r.Use(RequireActiveSubscription(store))
	r.GET("/premium", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func getPremium(r *gin.Engine) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/premium", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRequireActiveSubscription(t *testing.T) {
	t.Run("active subscription passes", func(t *testing.T) {
		subID := "sub_1"
		r := guardedRouter(&stubStore{profile: &profiles.Profile{
			UserID:               "u1",
			SubscriptionActive:   true,
			StripeSubscriptionID: &subID,
		}}, "u1")

		rec := getPremium(r)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("inactive subscription is redirected to subscribe", func(t *testing.T) {
		r := guardedRouter(&stubStore{profile: &profiles.Profile{UserID: "u1"}}, "u1")

		rec := getPremium(r)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "/subscribe")
	})

	t.Run("missing profile fails closed", func(t *testing.T) {
		r := guardedRouter(&stubStore{err: profiles.ErrNotFound}, "u1")

		rec := getPremium(r)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("store failure fails closed", func(t *testing.T) {
		r := guardedRouter(&stubStore{err: errors.New("connection refused")}, "u1")

		rec := getPremium(r)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "/subscribe")
	})

	t.Run("no identity is redirected to sign-up", func(t *testing.T) {
		r := guardedRouter(&stubStore{}, "")

		rec := getPremium(r)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "/sign-up")
	})
}
