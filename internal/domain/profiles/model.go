package profiles

import "time"

// Profile is the local mirror of a user's Stripe subscription state.
// StripeSubscriptionID doubles as an alternate lookup key for webhook
// events that carry no user id; a nil value always implies an inactive
// subscription.
type Profile struct {
	UserID               string  `gorm:"primaryKey;column:user_id" json:"userId"`
	SubscriptionActive   bool    `gorm:"column:subscription_active;not null;default:false" json:"subscriptionActive"`
	SubscriptionTier     *string `gorm:"column:subscription_tier" json:"subscriptionTier"`
	StripeSubscriptionID *string `gorm:"column:stripe_subscription_id;uniqueIndex:idx_profiles_stripe_subscription_id" json:"stripeSubscriptionId"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
