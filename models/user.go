package models

import "time"

// SubscriptionStatus tracks where a user sits in the paid-subscription lifecycle.
type SubscriptionStatus string

const (
	SubscriptionNone      SubscriptionStatus = "none"
	SubscriptionPending   SubscriptionStatus = "pending"
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

// User represents an artist account (or an admin when Privileged is set).
type User struct {
	ID                 string             `bson:"id" json:"id"`
	Email              string             `bson:"email" json:"email"`
	Password           string             `bson:"-" json:"password,omitempty"`
	PasswordHash       string             `bson:"passwordHash" json:"-"`
	Privileged         bool               `bson:"privileged" json:"privileged"`
	SubscriptionStatus SubscriptionStatus `bson:"subscriptionStatus" json:"subscriptionStatus"`
	TokenHash          string             `bson:"tokenHash,omitempty" json:"-"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}
