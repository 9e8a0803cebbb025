package store

import (
	"errors"
	"testing"

	"backend-triage/internal/models"
)

func TestMemoryStoreIDsNeverReused(t *testing.T) {
	s := NewMemoryStore()

	first, _ := s.Insert("Alice", 70, 2)
	if _, _, err := s.DeleteAll(); err != nil {
		t.Fatal(err)
	}

	second, _ := s.Insert("Bob", 40, 1)
	if second.ID <= first.ID {
		t.Errorf("id %d reused after clear (previous max %d)", second.ID, first.ID)
	}
}

func TestMemoryStoreMarkServedGuards(t *testing.T) {
	s := NewMemoryStore()
	p, _ := s.Insert("Alice", 70, 2)

	if _, err := s.MarkServed(999); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown id, got %v", err)
	}

	served, err := s.MarkServed(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if served.Status != models.StatusServed || !served.ServedAt.Valid {
		t.Errorf("expected served with timestamp, got %+v", served)
	}

	// Serving twice must fail: the transition happens exactly once.
	if _, err := s.MarkServed(p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for already-served id, got %v", err)
	}
}

func TestMemoryStoreSearchCaseInsensitive(t *testing.T) {
	s := NewMemoryStore()
	s.Insert("John Smith", 50, 2)
	s.Insert("MARY JOHNSON", 60, 1)
	s.Insert("Alice", 70, 3)

	matches, err := s.SearchByName("john", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}

	matches, _ = s.SearchByName("john", 1)
	if len(matches) != 1 {
		t.Errorf("expected limit to cap results, got %d", len(matches))
	}
}

func TestMemoryStoreDeleteServed(t *testing.T) {
	s := NewMemoryStore()
	p, _ := s.Insert("Alice", 70, 2)

	if err := s.DeleteServed(p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for queued patient, got %v", err)
	}

	s.MarkServed(p.ID)
	if err := s.DeleteServed(p.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected patient gone, got %v", err)
	}
}

func TestMemoryStoreUserRoundTrip(t *testing.T) {
	s := NewMemoryStore()

	if _, err := s.UserByEmail("nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	created, err := s.CreateUser(models.User{
		Name:     "Admin",
		Email:    "admin@example.com",
		Password: "hash",
		Role:     models.RoleAdmin,
	})
	if err != nil {
		t.Fatal(err)
	}
	if created.ID == 0 {
		t.Error("expected assigned user id")
	}

	got, err := s.UserByEmail("admin@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if got.Role != models.RoleAdmin {
		t.Errorf("expected admin role, got %q", got.Role)
	}
}
