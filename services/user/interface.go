package user

import (
	userRepo "pagex/database/repository/user"
	"pagex/models"
)

// AuthResponse contains the user's ID, token, and session-relevant attributes.
type AuthResponse struct {
	ID                 string                    `json:"id"`
	Token              string                    `json:"token"`
	Email              string                    `json:"email"`
	Privileged         bool                      `json:"privileged"`
	SubscriptionStatus models.SubscriptionStatus `json:"subscriptionStatus"`
}

// UserService defines business logic for the identity gate.
type UserService interface {
	// RegisterUser validates the registration details, creates the account,
	// issues a token and establishes the auth session.
	RegisterUser(email, password string) (*AuthResponse, error)
	// AuthenticateUser verifies credentials and establishes the auth session.
	AuthenticateUser(email, password string) (*AuthResponse, error)
	// SignOut revokes the user's token and tears down the session.
	SignOut(userID string) error
	// GetUserByID retrieves a user by its unique ID.
	GetUserByID(userID string) (*models.User, error)
	// GetUserByEmail retrieves a user by its email.
	GetUserByEmail(email string) (*models.User, error)
	// GetAllUsers retrieves all users (admin dashboard).
	GetAllUsers() ([]models.User, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}
