package user

import (
	"fmt"

	"pagex/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthenticateUser verifies credentials, rotates the auth token and
// establishes a fresh session.
func (s *DefaultUserService) AuthenticateUser(email, password string) (*AuthResponse, error) {
	userRec, err := s.Repo.GetByEmail(email)
	if err != nil {
		utils.GetLogger().Error("AuthenticateUser: failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if userRec == nil {
		return nil, AuthError{Reason: "invalid email or password"}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userRec.PasswordHash), []byte(password)); err != nil {
		return nil, AuthError{Reason: "invalid email or password"}
	}

	token, err := utils.GenerateToken(userRec.ID, userRec.Email, utils.AuthSessionTTL)
	if err != nil {
		utils.GetLogger().Error("AuthenticateUser: failed to generate auth token", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	tokenHash := utils.HashToken(token)

	if err := s.Repo.UpdateSetDocument(userRec.ID, bson.M{"tokenHash": tokenHash}); err != nil {
		utils.GetLogger().Error("AuthenticateUser: failed to store token hash", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	userRec.TokenHash = tokenHash

	if err := s.establishSession(userRec); err != nil {
		utils.GetLogger().Error("AuthenticateUser: failed to establish session", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	return &AuthResponse{
		ID:                 userRec.ID,
		Token:              token,
		Email:              userRec.Email,
		Privileged:         userRec.Privileged,
		SubscriptionStatus: userRec.SubscriptionStatus,
	}, nil
}

// SignOut revokes the stored token hash and tears down the Redis session.
func (s *DefaultUserService) SignOut(userID string) error {
	if err := s.Repo.UpdateSetDocument(userID, bson.M{"tokenHash": ""}); err != nil {
		return fmt.Errorf("failed to revoke auth token: %w", err)
	}
	if err := utils.DeleteAuthSession(utils.GetAuthCacheClient(), userID); err != nil {
		utils.GetLogger().Warn("SignOut: failed to delete auth session", zap.String("userID", userID), zap.Error(err))
	}
	return nil
}
