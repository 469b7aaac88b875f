package userRepo

import (
	"pagex/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID. Returns (nil, nil) when absent.
	GetByID(id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address. Returns (nil, nil) when absent.
	GetByEmail(email string) (*models.User, error)
	// GetByTokenHash retrieves the user holding the given auth token hash.
	GetByTokenHash(tokenHash string) (*models.User, error)
	// GetAll retrieves all users.
	GetAll() ([]models.User, error)
	// Create inserts a new user record.
	Create(user *models.User) error
	// Update modifies an existing user record.
	Update(user *models.User) error
	// Delete removes a user record by its ID.
	Delete(id string) error
	// UpdateSetDocument applies a $set document to a user record.
	UpdateSetDocument(id string, updateDoc bson.M) error
	// SetSubscriptionStatus unconditionally writes the subscription status.
	SetSubscriptionStatus(id string, status models.SubscriptionStatus) error
	// CompareAndSetSubscriptionStatus writes the status only when the current
	// value matches from, reporting whether the swap happened.
	CompareAndSetSubscriptionStatus(id string, from, to models.SubscriptionStatus) (bool, error)
}
