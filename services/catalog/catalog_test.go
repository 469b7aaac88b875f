package catalog

import (
	"errors"
	"testing"

	"pagex/models"
)

var errMockStore = errors.New("mock store error")

// mockGrantRepo implements grantRepo.GrantRepository over an in-memory map.
type mockGrantRepo struct {
	grants   map[string]*models.Grant
	listErr  error
	lastSort models.GrantSort
}

func newMockGrantRepo(grants ...*models.Grant) *mockGrantRepo {
	repo := &mockGrantRepo{grants: map[string]*models.Grant{}}
	for _, g := range grants {
		repo.grants[g.ID] = g
	}
	return repo
}

func (m *mockGrantRepo) List(filter models.GrantFilter, sort models.GrantSort) ([]models.Grant, error) {
	m.lastSort = sort
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]models.Grant, 0, len(m.grants))
	for _, g := range m.grants {
		out = append(out, *g)
	}
	return out, nil
}

func (m *mockGrantRepo) GetByID(id string) (*models.Grant, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	g, ok := m.grants[id]
	if !ok {
		return nil, nil
	}
	cp := *g
	return &cp, nil
}

func (m *mockGrantRepo) Create(g *models.Grant) error {
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
	for i := range grants {
		m.grants[grants[i].ID] = &grants[i]
	}
	return nil
}

// mockSavedRepo implements savedRepo.SavedGrantRepository with pair-keyed
// idempotence matching the store's unique index.
type mockSavedRepo struct {
	pairs     map[string]bool
	saveErr   error
	saveCalls int
}

func newMockSavedRepo() *mockSavedRepo {
	return &mockSavedRepo{pairs: map[string]bool{}}
}

func pairKey(userID, grantID string) string { return userID + "/" + grantID }

func (m *mockSavedRepo) Save(userID, grantID string) error {
	m.saveCalls++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.pairs[pairKey(userID, grantID)] = true
	return nil
}

func (m *mockSavedRepo) Unsave(userID, grantID string) error {
	delete(m.pairs, pairKey(userID, grantID))
	return nil
}

func (m *mockSavedRepo) IsSaved(userID, grantID string) (bool, error) {
	return m.pairs[pairKey(userID, grantID)], nil
}

func (m *mockSavedRepo) SavedGrantIDs(userID string) ([]string, error) {
	var ids []string
	for key := range m.pairs {
		if len(key) > len(userID) && key[:len(userID)] == userID {
			ids = append(ids, key[len(userID)+1:])
		}
	}
	return ids, nil
}

func (m *mockSavedRepo) ListByUser(userID string) ([]models.SavedGrantEntry, error) {
	ids, _ := m.SavedGrantIDs(userID)
	entries := make([]models.SavedGrantEntry, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, models.SavedGrantEntry{
			SavedGrant: models.SavedGrant{UserID: userID, GrantID: id},
		})
	}
	return entries, nil
}

func (m *mockSavedRepo) DeleteByGrant(grantID string) error {
	for key := range m.pairs {
		if len(key) > len(grantID) && key[len(key)-len(grantID)-1:] == "/"+grantID {
			delete(m.pairs, key)
		}
	}
	return nil
}

func TestListGrants(t *testing.T) {
	t.Run("Given no sort When ListGrants called Then deadline order is the default", func(t *testing.T) {
		grants := newMockGrantRepo(&models.Grant{ID: "g1", Title: "Residency"})
		svc := &DefaultCatalogService{Grants: grants, Saved: newMockSavedRepo()}

		out, err := svc.ListGrants(models.GrantFilter{}, "")

		if err != nil {
			t.Fatalf("ListGrants failed: %v", err)
		}
		if len(out) != 1 {
			t.Errorf("expected 1 grant, got %d", len(out))
		}
		if grants.lastSort != models.SortByDeadline {
			t.Errorf("expected deadline default sort, got %q", grants.lastSort)
		}
	})

	t.Run("Given a failing store When ListGrants called Then a retryable StoreError surfaces", func(t *testing.T) {
		grants := newMockGrantRepo()
		grants.listErr = errMockStore
		svc := &DefaultCatalogService{Grants: grants, Saved: newMockSavedRepo()}

		_, err := svc.ListGrants(models.GrantFilter{Search: "mural"}, models.SortByTitle)

		var sErr StoreError
		if !errors.As(err, &sErr) {
			t.Fatalf("expected StoreError, got %v", err)
		}
		if !errors.Is(err, errMockStore) {
			t.Errorf("StoreError should wrap the cause, got %v", err)
		}
	})
}

func TestGetGrant(t *testing.T) {
	t.Run("Given a missing id When GetGrant called Then NotFoundError", func(t *testing.T) {
		svc := &DefaultCatalogService{Grants: newMockGrantRepo(), Saved: newMockSavedRepo()}

		_, err := svc.GetGrant("missing")

		var nf NotFoundError
		if !errors.As(err, &nf) {
			t.Fatalf("expected NotFoundError, got %v", err)
		}
		if nf.GrantID != "missing" {
			t.Errorf("expected the missing id in the error, got %q", nf.GrantID)
		}
	})
}

func TestSaveGrant(t *testing.T) {
	t.Run("Given an existing grant When saved twice Then the second save is a no-op", func(t *testing.T) {
		saved := newMockSavedRepo()
		svc := &DefaultCatalogService{
			Grants: newMockGrantRepo(&models.Grant{ID: "g1"}),
			Saved:  saved,
		}

		if err := svc.SaveGrant("u1", "g1"); err != nil {
			t.Fatalf("first save failed: %v", err)
		}
		if err := svc.SaveGrant("u1", "g1"); err != nil {
			t.Fatalf("repeat save failed: %v", err)
		}

		ids, err := svc.SavedGrantIDs("u1")
		if err != nil {
			t.Fatalf("SavedGrantIDs failed: %v", err)
		}
		if len(ids) != 1 || ids[0] != "g1" {
			t.Errorf("expected exactly one bookmark, got %v", ids)
		}
	})

	t.Run("Given a nonexistent grant When saved Then NotFoundError and no bookmark write", func(t *testing.T) {
		saved := newMockSavedRepo()
		svc := &DefaultCatalogService{Grants: newMockGrantRepo(), Saved: saved}

		err := svc.SaveGrant("u1", "ghost")

		var nf NotFoundError
		if !errors.As(err, &nf) {
			t.Fatalf("expected NotFoundError, got %v", err)
		}
		if saved.saveCalls != 0 {
			t.Errorf("no bookmark write expected, got %d", saved.saveCalls)
		}
	})
}

func TestUnsaveGrant(t *testing.T) {
	t.Run("Given a saved grant When rapid save and unsave interleave Then the last operation wins", func(t *testing.T) {
		svc := &DefaultCatalogService{
			Grants: newMockGrantRepo(&models.Grant{ID: "g1"}),
			Saved:  newMockSavedRepo(),
		}

		if err := svc.SaveGrant("u1", "g1"); err != nil {
			t.Fatalf("save failed: %v", err)
		}
		if err := svc.UnsaveGrant("u1", "g1"); err != nil {
			t.Fatalf("unsave failed: %v", err)
		}

		ids, err := svc.SavedGrantIDs("u1")
		if err != nil {
			t.Fatalf("SavedGrantIDs failed: %v", err)
		}
		if len(ids) != 0 {
			t.Errorf("expected no bookmarks after unsave, got %v", ids)
		}
	})

	t.Run("Given a never-saved grant When unsaved Then it succeeds without effect", func(t *testing.T) {
		svc := &DefaultCatalogService{
			Grants: newMockGrantRepo(&models.Grant{ID: "g1"}),
			Saved:  newMockSavedRepo(),
		}

		if err := svc.UnsaveGrant("u1", "g1"); err != nil {
			t.Fatalf("unsaving a never-saved grant must succeed: %v", err)
		}
	})
}
