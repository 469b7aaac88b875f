package user

import (
	"fmt"

	"pagex/models"
)

// GetUserByID retrieves a user by its unique ID.
func (s *DefaultUserService) GetUserByID(userID string) (*models.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if u == nil {
		return nil, fmt.Errorf("user with id %s not found", userID)
	}
	return u, nil
}

// GetUserByEmail retrieves a user by its email.
func (s *DefaultUserService) GetUserByEmail(email string) (*models.User, error) {
	u, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if u == nil {
		return nil, fmt.Errorf("user with email %s not found", email)
	}
	return u, nil
}

// GetAllUsers retrieves all users for the admin dashboard.
func (s *DefaultUserService) GetAllUsers() ([]models.User, error) {
	return s.Repo.GetAll()
}
