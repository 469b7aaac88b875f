package admin

import (
	"errors"

	"pagex/models"
)

var errMockStore = errors.New("mock store error")

// mockGrantRepo implements grantRepo.GrantRepository and counts writes so
// tests can assert that invalid submissions never reach the store.
type mockGrantRepo struct {
	grants          map[string]*models.Grant
	createCalls     int
	insertManyCalls int
	inserted        []models.Grant
	insertErr       error
}

func newMockGrantRepo(grants ...*models.Grant) *mockGrantRepo {
	repo := &mockGrantRepo{grants: map[string]*models.Grant{}}
	for _, g := range grants {
		repo.grants[g.ID] = g
	}
	return repo
}

func (m *mockGrantRepo) List(filter models.GrantFilter, sort models.GrantSort) ([]models.Grant, error) {
	out := make([]models.Grant, 0, len(m.grants))
	for _, g := range m.grants {
		out = append(out, *g)
	}
	return out, nil
}

func (m *mockGrantRepo) GetByID(id string) (*models.Grant, error) {
	g, ok := m.grants[id]
	if !ok {
		return nil, nil
	}
	cp := *g
	return &cp, nil
}

func (m *mockGrantRepo) Create(g *models.Grant) error {
	m.createCalls++
	m.grants[g.ID] = g
	return nil
}

func (m *mockGrantRepo) Update(g *models.Grant) error {
	m.grants[g.ID] = g
	return nil
}

func (m *mockGrantRepo) Delete(id string) error {
	delete(m.grants, id)
	return nil
}

func (m *mockGrantRepo) InsertMany(grants []models.Grant) error {
	m.insertManyCalls++
	if m.insertErr != nil {
		return m.insertErr
	}
	m.inserted = append(m.inserted, grants...)
	for i := range grants {
		m.grants[grants[i].ID] = &grants[i]
	}
	return nil
}

// mockSavedRepo implements savedRepo.SavedGrantRepository; curation only
// touches the bookmark sweep.
type mockSavedRepo struct {
	sweptGrants []string
}

func (m *mockSavedRepo) Save(userID, grantID string) error   { return nil }
func (m *mockSavedRepo) Unsave(userID, grantID string) error { return nil }
func (m *mockSavedRepo) IsSaved(userID, grantID string) (bool, error) {
	return false, nil
}
func (m *mockSavedRepo) SavedGrantIDs(userID string) ([]string, error) {
	return nil, nil
}
func (m *mockSavedRepo) ListByUser(userID string) ([]models.SavedGrantEntry, error) {
	return nil, nil
}
func (m *mockSavedRepo) DeleteByGrant(grantID string) error {
	m.sweptGrants = append(m.sweptGrants, grantID)
	return nil
}
