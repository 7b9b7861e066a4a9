package app

import (
	"errors"
	"fmt"

	"caremap/pkg/domain"
	"caremap/pkg/store"
)

// CreateMapping links a patient to a doctor. Check order is fixed:
// existence, then authorization, then uniqueness. The composite unique index
// remains authoritative when two concurrent pre-checks both pass.
func (a *App) CreateMapping(requesterID, patientID, doctorID uint) (domain.MappingDetail, error) {
	patient, patientOK, err := a.store.GetPatient(patientID)
	if err != nil {
		return domain.MappingDetail{}, fmt.Errorf("fetch patient: %w", err)
	}
	doctor, doctorOK, err := a.store.GetDoctor(doctorID)
	if err != nil {
		return domain.MappingDetail{}, fmt.Errorf("fetch doctor: %w", err)
	}
	if !patientOK || !doctorOK {
		return domain.MappingDetail{}, ErrMappingRefMissing
	}
	if err := a.authorizePatientMutation(requesterID, patient); err != nil {
		return domain.MappingDetail{}, err
	}
	exists, err := a.store.HasMapping(patientID, doctorID)
	if err != nil {
		return domain.MappingDetail{}, fmt.Errorf("check mapping: %w", err)
	}
	if exists {
		return domain.MappingDetail{}, ErrMappingExists
	}
	mapping, err := a.store.CreateMapping(patientID, doctorID)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return domain.MappingDetail{}, ErrMappingExists
		}
		return domain.MappingDetail{}, fmt.Errorf("save mapping: %w", err)
	}
	return domain.MappingDetail{
		Mapping: mapping,
		Patient: patient.Summary(),
		Doctor:  doctor.Summary(),
	}, nil
}

// ListMappings returns every mapping with its patient and doctor projections.
func (a *App) ListMappings() ([]domain.MappingDetail, error) {
	details, err := a.store.ListMappingDetails()
	if err != nil {
		return nil, fmt.Errorf("list mappings: %w", err)
	}
	return details, nil
}

// PatientMappings returns a patient and its mappings. A missing patient and
// a patient with zero mappings are distinct failures.
func (a *App) PatientMappings(patientID uint) (domain.Patient, []domain.MappingDetail, error) {
	patient, ok, err := a.store.GetPatient(patientID)
	if err != nil {
		return domain.Patient{}, nil, fmt.Errorf("fetch patient: %w", err)
	}
	if !ok {
		return domain.Patient{}, nil, ErrPatientNotFound
	}
	details, err := a.store.ListMappingsByPatient(patientID)
	if err != nil {
		return domain.Patient{}, nil, fmt.Errorf("list mappings: %w", err)
	}
	if len(details) == 0 {
		return domain.Patient{}, nil, ErrNoMappings
	}
	return patient, details, nil
}

// DeleteMapping removes the mapping for the exact (patient, doctor) pair.
// Deletion is not idempotent: a repeat call reports the mapping missing.
func (a *App) DeleteMapping(doctorID, patientID uint) error {
	_, patientOK, err := a.store.GetPatient(patientID)
	if err != nil {
		return fmt.Errorf("fetch patient: %w", err)
	}
	_, doctorOK, err := a.store.GetDoctor(doctorID)
	if err != nil {
		return fmt.Errorf("fetch doctor: %w", err)
	}
	if !patientOK || !doctorOK {
		return ErrMappingRefMissing
	}
	deleted, err := a.store.DeleteMapping(patientID, doctorID)
	if err != nil {
		return fmt.Errorf("delete mapping: %w", err)
	}
	if !deleted {
		return ErrMappingNotFound
	}
	return nil
}
