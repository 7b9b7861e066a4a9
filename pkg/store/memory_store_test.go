package store

import (
	"errors"
	"testing"

	"caremap/pkg/domain"
)

func TestMemoryStoreDuplicateEmail(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.CreateUser(domain.User{Name: "Alice Doe", Email: "alice@x.com"}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	_, err := s.CreateUser(domain.User{Name: "Other Alice", Email: "alice@x.com"})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestMemoryStoreDuplicateMapping(t *testing.T) {
	s := NewMemoryStore()
	p, _ := s.CreatePatient(domain.Patient{Name: "Peter Parker", Age: 20, Disease: "flu", OwnerID: 1})
	d, _ := s.CreateDoctor(domain.Doctor{Name: "Stephen Strange", Specialization: "neurology"})
	if _, err := s.CreateMapping(p.ID, d.ID); err != nil {
		t.Fatalf("create mapping: %v", err)
	}
	if _, err := s.CreateMapping(p.ID, d.ID); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestMemoryStoreDeletePatientCascades(t *testing.T) {
	s := NewMemoryStore()
	p, _ := s.CreatePatient(domain.Patient{Name: "Peter Parker", Age: 20, Disease: "flu", OwnerID: 1})
	d, _ := s.CreateDoctor(domain.Doctor{Name: "Stephen Strange", Specialization: "neurology"})
	if _, err := s.CreateMapping(p.ID, d.ID); err != nil {
		t.Fatalf("create mapping: %v", err)
	}
	if err := s.DeletePatient(p.ID); err != nil {
		t.Fatalf("delete patient: %v", err)
	}
	details, err := s.ListMappingDetails()
	if err != nil {
		t.Fatalf("list mappings: %v", err)
	}
	if len(details) != 0 {
		t.Fatalf("expected cascade to remove mappings, got %d", len(details))
	}
}

func TestMemoryStoreDeleteMappingNotIdempotent(t *testing.T) {
	s := NewMemoryStore()
	p, _ := s.CreatePatient(domain.Patient{Name: "Peter Parker", Age: 20, Disease: "flu", OwnerID: 1})
	d, _ := s.CreateDoctor(domain.Doctor{Name: "Stephen Strange", Specialization: "neurology"})
	if _, err := s.CreateMapping(p.ID, d.ID); err != nil {
		t.Fatalf("create mapping: %v", err)
	}
	deleted, err := s.DeleteMapping(p.ID, d.ID)
	if err != nil || !deleted {
		t.Fatalf("first delete should succeed: deleted=%v err=%v", deleted, err)
	}
	deleted, err = s.DeleteMapping(p.ID, d.ID)
	if err != nil {
		t.Fatalf("second delete errored: %v", err)
	}
	if deleted {
		t.Fatalf("second delete should report no row")
	}
}

func TestMemoryStoreListPatientsByOwnerScoped(t *testing.T) {
	s := NewMemoryStore()
	s.CreatePatient(domain.Patient{Name: "Owned One", Age: 30, Disease: "flu", OwnerID: 1})
	s.CreatePatient(domain.Patient{Name: "Owned Two", Age: 31, Disease: "cold", OwnerID: 1})
	s.CreatePatient(domain.Patient{Name: "Other Owner", Age: 32, Disease: "cold", OwnerID: 2})
	mine, err := s.ListPatientsByOwner(1)
	if err != nil {
		t.Fatalf("list patients: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 patients for owner 1, got %d", len(mine))
	}
	for _, p := range mine {
		if p.OwnerID != 1 {
			t.Fatalf("leaked patient of owner %d", p.OwnerID)
		}
	}
}
