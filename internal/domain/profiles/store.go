package profiles

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is returned when no Profile matches the given key.
var ErrNotFound = errors.New("profile not found")

// Store is the persistence contract for Profile records. Every write is a
// single keyed update so concurrent writers (user-initiated mutations vs.
// webhook events) race only at per-field granularity.
type Store interface {
	GetByUserID(userID string) (*Profile, error)
	GetBySubscriptionID(subscriptionID string) (*Profile, error)
	Create(p *Profile) error

	// SetSubscription activates a subscription for the user, upserting the
	// Profile if account provisioning never created one.
	SetSubscription(userID, subscriptionID string, tier *string) error

	// SuspendSubscription flips the active flag off but keeps the
	// subscription id and tier so a recovered payment can reactivate.
	SuspendSubscription(userID string) error

	// ClearSubscription drops the subscription entirely: inactive, no
	// subscription id, no tier.
	ClearSubscription(userID string) error
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) GetByUserID(userID string) (*Profile, error) {
	var p Profile
	if err := s.db.Where("user_id = ?", userID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load profile by user id: %w", err)
	}
	return &p, nil
}

func (s *gormStore) GetBySubscriptionID(subscriptionID string) (*Profile, error) {
	var p Profile
	if err := s.db.Where("stripe_subscription_id = ?", subscriptionID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load profile by subscription id: %w", err)
	}
	return &p, nil
}

func (s *gormStore) Create(p *Profile) error {
	if err := s.db.Create(p).Error; err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

func (s *gormStore) SetSubscription(userID, subscriptionID string, tier *string) error {
	res := s.db.Model(&Profile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"stripe_subscription_id": subscriptionID,
			"subscription_active":    true,
			"subscription_tier":      tier,
		})
	if res.Error != nil {
		return fmt.Errorf("set subscription: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		p := Profile{
			UserID:               userID,
			SubscriptionActive:   true,
			SubscriptionTier:     tier,
			StripeSubscriptionID: &subscriptionID,
		}
		if err := s.db.Create(&p).Error; err != nil {
			return fmt.Errorf("upsert profile: %w", err)
		}
	}
	return nil
}

func (s *gormStore) SuspendSubscription(userID string) error {
	err := s.db.Model(&Profile{}).
		Where("user_id = ?", userID).
		Update("subscription_active", false).Error
	if err != nil {
		return fmt.Errorf("suspend subscription: %w", err)
	}
	return nil
}

func (s *gormStore) ClearSubscription(userID string) error {
	err := s.db.Model(&Profile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"subscription_active":    false,
			"stripe_subscription_id": nil,
			"subscription_tier":      nil,
		}).Error
	if err != nil {
		return fmt.Errorf("clear subscription: %w", err)
	}
	return nil
}
