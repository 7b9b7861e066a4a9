package app

import (
	"fmt"
	"time"

	"caremap/pkg/domain"
)

// authorizePatientMutation decides whether the requester may mutate the
// already-fetched patient. Pure decision over loaded state: both sides are
// uint user IDs, so no representation conversion happens here.
func (a *App) authorizePatientMutation(requesterID uint, p domain.Patient) error {
	if p.OwnerID != requesterID {
		return ErrNotPatientOwner
	}
	return nil
}

// CreatePatient stores a new patient. The requester becomes the owner; the
// owner is never client-supplied.
func (a *App) CreatePatient(requesterID uint, name string, age int, disease string) (domain.Patient, error) {
	now := time.Now().UTC()
	patient, err := a.store.CreatePatient(domain.Patient{
		Name:      name,
		Age:       age,
		Disease:   disease,
		OwnerID:   requesterID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return domain.Patient{}, fmt.Errorf("save patient: %w", err)
	}
	return patient, nil
}

// ListPatients returns the requester's own patients. Zero results is
// surfaced as ErrNoPatients, not an empty list.
func (a *App) ListPatients(requesterID uint) ([]domain.Patient, error) {
	patients, err := a.store.ListPatientsByOwner(requesterID)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	if len(patients) == 0 {
		return nil, ErrNoPatients
	}
	return patients, nil
}

// GetPatient fetches a patient by ID. Reads are not restricted to the owner.
func (a *App) GetPatient(id uint) (domain.Patient, error) {
	patient, ok, err := a.store.GetPatient(id)
	if err != nil {
		return domain.Patient{}, fmt.Errorf("fetch patient: %w", err)
	}
	if !ok {
		return domain.Patient{}, ErrPatientNotFound
	}
	return patient, nil
}

// UpdatePatient replaces the mutable fields. Existence is checked before
// authorization so a missing patient never reports Forbidden.
func (a *App) UpdatePatient(requesterID, id uint, name string, age int, disease string) (domain.Patient, error) {
	patient, ok, err := a.store.GetPatient(id)
	if err != nil {
		return domain.Patient{}, fmt.Errorf("fetch patient: %w", err)
	}
	if !ok {
		return domain.Patient{}, ErrPatientNotFound
	}
	if err := a.authorizePatientMutation(requesterID, patient); err != nil {
		return domain.Patient{}, err
	}
	patient.Name = name
	patient.Age = age
	patient.Disease = disease
	patient.UpdatedAt = time.Now().UTC()
	if err := a.store.UpdatePatient(patient); err != nil {
		return domain.Patient{}, fmt.Errorf("update patient: %w", err)
	}
	return patient, nil
}

// DeletePatient removes a patient and, through the storage cascade, its
// mappings.
func (a *App) DeletePatient(requesterID, id uint) error {
	patient, ok, err := a.store.GetPatient(id)
	if err != nil {
		return fmt.Errorf("fetch patient: %w", err)
	}
	if !ok {
		return ErrPatientNotFound
	}
	if err := a.authorizePatientMutation(requesterID, patient); err != nil {
		return err
	}
	if err := a.store.DeletePatient(id); err != nil {
		return fmt.Errorf("delete patient: %w", err)
	}
	return nil
}
