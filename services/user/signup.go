package user

import (
	"fmt"
	"time"

	"pagex/models"
	"pagex/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// RegisterUser validates the registration details, checks for duplicates,
// persists the account with subscriptionStatus "none", issues a token and
// establishes the auth session. Validation failures are reported per-field;
// nothing downstream (checkout) happens until this succeeds.
func (s *DefaultUserService) RegisterUser(email, password string) (*AuthResponse, error) {
	fields := map[string]string{}
	if err := VerifyEmailFormat(email); err != nil {
		fields["email"] = err.Error()
	}
	if err := VerifyPasswordComplexity(password); err != nil {
		fields["password"] = err.Error()
	}
	if len(fields) > 0 {
		return nil, ValidationError{Fields: fields}
	}

	existing, err := s.Repo.GetByEmail(email)
	if err != nil {
		utils.GetLogger().Error("RegisterUser: failed to check for existing user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, NewValidationError("email", "an account with this email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("RegisterUser: failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	userObj := models.User{
		ID:                 uuid.New().String(),
		Email:              email,
		PasswordHash:       string(hashedPassword),
		Privileged:         false,
		SubscriptionStatus: models.SubscriptionNone,
	}

	token, err := utils.GenerateToken(userObj.ID, userObj.Email, utils.AuthSessionTTL)
	if err != nil {
		utils.GetLogger().Error("RegisterUser: failed to generate auth token", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	userObj.TokenHash = utils.HashToken(token)

	if err := s.Repo.Create(&userObj); err != nil {
		utils.GetLogger().Error("RegisterUser: failed to create user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	if err := s.establishSession(&userObj); err != nil {
		utils.GetLogger().Error("RegisterUser: failed to establish session", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	return &AuthResponse{
		ID:                 userObj.ID,
		Token:              token,
		Email:              userObj.Email,
		Privileged:         userObj.Privileged,
		SubscriptionStatus: userObj.SubscriptionStatus,
	}, nil
}

// establishSession creates the Redis-backed auth session, resolving the
// privileged capability once for its lifetime.
func (s *DefaultUserService) establishSession(u *models.User) error {
	session := utils.AuthSession{
		UserID:             u.ID,
		Email:              u.Email,
		Privileged:         u.Privileged,
		SubscriptionStatus: u.SubscriptionStatus,
		TokenHash:          u.TokenHash,
		CreatedAt:          time.Now(),
	}
	return utils.SaveAuthSession(utils.GetAuthCacheClient(), session)
}
