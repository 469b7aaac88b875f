package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pagex/models"

	"github.com/go-redis/redis/v8"
)

const AuthSessionPrefix = "authSession:"

// AuthSessionTTL matches the lifetime of the issued JWT.
const AuthSessionTTL = 72 * time.Hour

// AuthSession is the explicit session context established at sign-in or
// registration and handed to every component that needs the current identity.
// The privileged capability and the subscription status are resolved once
// here; views never re-derive them ad hoc.
type AuthSession struct {
	UserID             string                    `json:"userId"`
	Email              string                    `json:"email"`
	Privileged         bool                      `json:"privileged"`
	SubscriptionStatus models.SubscriptionStatus `json:"subscriptionStatus"`
	TokenHash          string                    `json:"tokenHash"`
	CreatedAt          time.Time                 `json:"createdAt"`
	LastUpdatedAt      time.Time                 `json:"lastUpdatedAt"`
}

// SaveAuthSession stores the session in Redis keyed by user ID.
func SaveAuthSession(client *redis.Client, session AuthSession) error {
	session.LastUpdatedAt = time.Now()
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal auth session: %w", err)
	}
	ctx := context.Background()
	if err := client.Set(ctx, AuthSessionPrefix+session.UserID, data, AuthSessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to save auth session: %w", err)
	}
	return nil
}

// GetAuthSession retrieves the session for a user. Returns (nil, nil) when no
// session exists.
func GetAuthSession(client *redis.Client, userID string) (*AuthSession, error) {
	ctx := context.Background()
	data, err := client.Get(ctx, AuthSessionPrefix+userID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve auth session: %w", err)
	}
	var session AuthSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal auth session: %w", err)
	}
	return &session, nil
}

// DeleteAuthSession removes a user's session from Redis.
func DeleteAuthSession(client *redis.Client, userID string) error {
	ctx := context.Background()
	return client.Del(ctx, AuthSessionPrefix+userID).Err()
}

// UpdateAuthSessionStatus rewrites the cached subscription status after a
// settlement. A missing session is a no-op: the next authenticated request
// rebuilds the session from the store of record.
func UpdateAuthSessionStatus(client *redis.Client, userID string, status models.SubscriptionStatus) error {
	session, err := GetAuthSession(client, userID)
	if err != nil {
		return err
	}
	if session == nil {
		return nil
	}
	session.SubscriptionStatus = status
	return SaveAuthSession(client, *session)
}
