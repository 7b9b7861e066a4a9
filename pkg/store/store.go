package store

import (
	"errors"
	"time"

	"caremap/pkg/domain"
)

// ErrDuplicate is returned when an insert violates a storage uniqueness
// constraint. The constraint, not the caller's pre-check, is authoritative
// under concurrent inserts.
var ErrDuplicate = errors.New("duplicate record")

// Store defines persistence operations for users, patients, doctors, and
// patient-doctor mappings.
type Store interface {
	// users
	CreateUser(domain.User) (domain.User, error)
	HasUserEmail(email string) (bool, error)
	GetUserByEmail(email string) (domain.User, bool, error)
	GetUserByID(id uint) (domain.User, bool, error)

	// patients
	CreatePatient(domain.Patient) (domain.Patient, error)
	GetPatient(id uint) (domain.Patient, bool, error)
	ListPatientsByOwner(ownerID uint) ([]domain.Patient, error)
	UpdatePatient(domain.Patient) error
	DeletePatient(id uint) error

	// doctors
	CreateDoctor(domain.Doctor) (domain.Doctor, error)
	GetDoctor(id uint) (domain.Doctor, bool, error)
	ListDoctors() ([]domain.Doctor, error)
	UpdateDoctor(domain.Doctor) error
	DeleteDoctor(id uint) error

	// mappings
	CreateMapping(patientID, doctorID uint) (domain.Mapping, error)
	HasMapping(patientID, doctorID uint) (bool, error)
	ListMappingDetails() ([]domain.MappingDetail, error)
	ListMappingsByPatient(patientID uint) ([]domain.MappingDetail, error)
	DeleteMapping(patientID, doctorID uint) (bool, error)
}

// SessionStore issues and validates bearer session tokens.
type SessionStore interface {
	NewSession(userID uint) (string, error)
	GetUserIDByToken(token string) (uint, bool, error)
	DeleteSession(token string) error
}

// TokenRevoker tracks revoked tokens until expiry.
type TokenRevoker interface {
	Revoke(tokenID string, ttl time.Duration) error
	IsRevoked(tokenID string) (bool, error)
}
