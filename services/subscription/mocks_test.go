package subscription

import (
	"context"
	"errors"
	"sync"

	"pagex/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Common test errors
var (
	errMockStore     = errors.New("mock store error")
	errMockProcessor = errors.New("mock processor error")
	errMockMailer    = errors.New("mock mailer error")
)

// mockUserRepo implements userRepo.UserRepository over an in-memory map.
type mockUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User

	getErr    error
	setErr    error
	setCalls  int
	casCalls  int
	lastSetTo models.SubscriptionStatus
}

func newMockUserRepo(users ...*models.User) *mockUserRepo {
	repo := &mockUserRepo{users: map[string]*models.User{}}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (m *mockUserRepo) GetByID(id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserRepo) GetByEmail(email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) GetByTokenHash(tokenHash string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.TokenHash == tokenHash {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) GetAll() ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *mockUserRepo) Create(u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *mockUserRepo) Update(u *models.User) error {
	return m.Create(u)
}

func (m *mockUserRepo) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil
	}
	if hash, ok := updateDoc["tokenHash"].(string); ok {
		u.TokenHash = hash
	}
	return nil
}

func (m *mockUserRepo) SetSubscriptionStatus(id string, status models.SubscriptionStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setCalls++
	if m.setErr != nil {
		return m.setErr
	}
	if u, ok := m.users[id]; ok {
		u.SubscriptionStatus = status
		m.lastSetTo = status
	}
	return nil
}

func (m *mockUserRepo) CompareAndSetSubscriptionStatus(id string, from, to models.SubscriptionStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.casCalls++
	u, ok := m.users[id]
	if !ok || u.SubscriptionStatus != from {
		return false, nil
	}
	u.SubscriptionStatus = to
	return true, nil
}

func (m *mockUserRepo) status(id string) models.SubscriptionStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		return u.SubscriptionStatus
	}
	return ""
}

// fakePayments implements PaymentClient.
type fakePayments struct {
	createFunc func(ctx context.Context, req models.CheckoutRequest) (*models.CheckoutSession, error)
	lastReq    models.CheckoutRequest
	callCount  int
}

func (f *fakePayments) CreateCheckoutSession(ctx context.Context, req models.CheckoutRequest) (*models.CheckoutSession, error) {
	f.callCount++
	f.lastReq = req
	if f.createFunc != nil {
		return f.createFunc(ctx, req)
	}
	return &models.CheckoutSession{SessionID: "cs_test_1", URL: "https://checkout.example/cs_test_1"}, nil
}

// recordMailer implements Mailer and records what was sent.
type recordMailer struct {
	sent    []string
	sendErr error
}

func (m *recordMailer) SendSubscriptionActive(toEmail string) error {
	m.sent = append(m.sent, toEmail)
	return m.sendErr
}
