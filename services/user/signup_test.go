package user

import (
	"errors"
	"testing"

	"pagex/models"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

// mockUserRepo implements userRepo.UserRepository over an in-memory map.
type mockUserRepo struct {
	users       map[string]*models.User
	createCalls int
}

func newMockUserRepo(users ...*models.User) *mockUserRepo {
	repo := &mockUserRepo{users: map[string]*models.User{}}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (m *mockUserRepo) GetByID(id string) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) GetByTokenHash(tokenHash string) (*models.User, error) {
	for _, u := range m.users {
		if u.TokenHash == tokenHash {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) GetAll() ([]models.User, error) {
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *mockUserRepo) Create(u *models.User) error {
	m.createCalls++
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *mockUserRepo) Update(u *models.User) error { return m.Create(u) }

func (m *mockUserRepo) Delete(id string) error {
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	if u, ok := m.users[id]; ok {
		if hash, ok := updateDoc["tokenHash"].(string); ok {
			u.TokenHash = hash
		}
	}
	return nil
}

func (m *mockUserRepo) SetSubscriptionStatus(id string, status models.SubscriptionStatus) error {
	if u, ok := m.users[id]; ok {
		u.SubscriptionStatus = status
	}
	return nil
}

func (m *mockUserRepo) CompareAndSetSubscriptionStatus(id string, from, to models.SubscriptionStatus) (bool, error) {
	u, ok := m.users[id]
	if !ok || u.SubscriptionStatus != from {
		return false, nil
	}
	u.SubscriptionStatus = to
	return true, nil
}

func TestRegisterUserValidation(t *testing.T) {
	t.Run("Given a malformed email When registering Then a per-field error and no account", func(t *testing.T) {
		repo := newMockUserRepo()
		svc := &DefaultUserService{Repo: repo}

		_, err := svc.RegisterUser("not-an-email", "secret1")

		var vErr ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if _, ok := vErr.Fields["email"]; !ok {
			t.Errorf("expected an email field error, got %v", vErr.Fields)
		}
		if repo.createCalls != 0 {
			t.Errorf("no account should be created, got %d writes", repo.createCalls)
		}
	})

	t.Run("Given a short password When registering Then a per-field error", func(t *testing.T) {
		svc := &DefaultUserService{Repo: newMockUserRepo()}

		_, err := svc.RegisterUser("artist@example.com", "12345")

		var vErr ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if _, ok := vErr.Fields["password"]; !ok {
			t.Errorf("expected a password field error, got %v", vErr.Fields)
		}
	})

	t.Run("Given both fields invalid When registering Then both are reported at once", func(t *testing.T) {
		svc := &DefaultUserService{Repo: newMockUserRepo()}

		_, err := svc.RegisterUser("", "")

		var vErr ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if len(vErr.Fields) != 2 {
			t.Errorf("expected email and password errors together, got %v", vErr.Fields)
		}
	})

	t.Run("Given a taken email When registering Then a duplicate field error", func(t *testing.T) {
		repo := newMockUserRepo(&models.User{ID: "u1", Email: "artist@example.com"})
		svc := &DefaultUserService{Repo: repo}

		_, err := svc.RegisterUser("artist@example.com", "secret1")

		var vErr ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if _, ok := vErr.Fields["email"]; !ok {
			t.Errorf("expected an email field error, got %v", vErr.Fields)
		}
		if repo.createCalls != 0 {
			t.Errorf("no account should be created, got %d writes", repo.createCalls)
		}
	})
}

func TestAuthenticateUserFailures(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash test password: %v", err)
	}

	t.Run("Given a wrong password When authenticating Then an indistinct AuthError", func(t *testing.T) {
		repo := newMockUserRepo(&models.User{ID: "u1", Email: "artist@example.com", PasswordHash: string(hash)})
		svc := &DefaultUserService{Repo: repo}

		_, err := svc.AuthenticateUser("artist@example.com", "wrongpass")

		var aErr AuthError
		if !errors.As(err, &aErr) {
			t.Fatalf("expected AuthError, got %v", err)
		}
	})

	t.Run("Given an unknown email When authenticating Then the same indistinct AuthError", func(t *testing.T) {
		svc := &DefaultUserService{Repo: newMockUserRepo()}

		_, err := svc.AuthenticateUser("ghost@example.com", "secret1")

		var aErr AuthError
		if !errors.As(err, &aErr) {
			t.Fatalf("expected AuthError, got %v", err)
		}
	})
}

func TestVerifyEmailFormat(t *testing.T) {
	valid := []string{"artist@example.com", "a.b+tag@sub.domain.org"}
	for _, email := range valid {
		if err := VerifyEmailFormat(email); err != nil {
			t.Errorf("expected %q to be valid: %v", email, err)
		}
	}

	invalid := []string{"", "plain", "no@tld", "two@@example.com", "spa ce@example.com"}
	for _, email := range invalid {
		if err := VerifyEmailFormat(email); err == nil {
			t.Errorf("expected %q to be rejected", email)
		}
	}
}
