package app

import (
	"errors"
	"testing"
	"time"

	"caremap/pkg/store"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	sessions, err := store.NewJWTSessionStore("test-secret", time.Minute, store.NewMemoryTokenRevoker(), store.JWTOptions{})
	if err != nil {
		t.Fatalf("new session store: %v", err)
	}
	a, err := New(Config{
		Store:    store.NewMemoryStore(),
		Sessions: sessions,
	})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return a
}

func TestRegisterHashesPassword(t *testing.T) {
	a := newTestApp(t)
	user, err := a.Register("Alice Doe", "alice@x.com", "pw1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("expected generated user ID")
	}
	if user.PasswordHash == "pw1" || user.PasswordHash == "" {
		t.Fatalf("stored password must be a hash, got %q", user.PasswordHash)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	a := newTestApp(t)
	if _, err := a.Register("Alice Doe", "alice@x.com", "pw1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := a.Register("Completely Different", "alice@x.com", "other-pw")
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterEmailIsCaseSensitive(t *testing.T) {
	a := newTestApp(t)
	if _, err := a.Register("Alice Doe", "alice@x.com", "pw1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := a.Register("Alice Doe", "Alice@x.com", "pw1"); err != nil {
		t.Fatalf("differently-cased email is a distinct address, got %v", err)
	}
}

func TestLoginIssuesTokenForUser(t *testing.T) {
	a := newTestApp(t)
	user, err := a.Register("Alice Doe", "alice@x.com", "pw1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	token, err := a.Login("alice@x.com", "pw1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	userID, ok := a.UserIDFromToken(token)
	if !ok {
		t.Fatalf("token should resolve to a principal")
	}
	if userID != user.ID {
		t.Fatalf("expected principal %d, got %d", user.ID, userID)
	}
}

func TestLoginFailures(t *testing.T) {
	a := newTestApp(t)
	if _, err := a.Register("Alice Doe", "alice@x.com", "pw1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := a.Login("nobody@x.com", "pw1"); !errors.Is(err, ErrUnknownEmail) {
		t.Fatalf("expected ErrUnknownEmail, got %v", err)
	}
	if _, err := a.Login("alice@x.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	a := newTestApp(t)
	if _, err := a.Register("Alice Doe", "alice@x.com", "pw1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	token, err := a.Login("alice@x.com", "pw1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, ok := a.UserIDFromToken(token); !ok {
		t.Fatalf("token should be valid before logout")
	}
	if err := a.Logout(token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, ok := a.UserIDFromToken(token); ok {
		t.Fatalf("token should be rejected after logout")
	}
}

func registerTwoUsers(t *testing.T, a *App) (uint, uint) {
	t.Helper()
	u1, err := a.Register("Alice Doe", "alice@x.com", "pw1")
	if err != nil {
		t.Fatalf("register u1: %v", err)
	}
	u2, err := a.Register("Bobby Tables", "bob@x.com", "pw2")
	if err != nil {
		t.Fatalf("register u2: %v", err)
	}
	return u1.ID, u2.ID
}

func TestPatientOwnershipOnUpdate(t *testing.T) {
	a := newTestApp(t)
	owner, other := registerTwoUsers(t, a)
	patient, err := a.CreatePatient(owner, "Peter Parker", 20, "flu")
	if err != nil {
		t.Fatalf("create patient: %v", err)
	}
	if _, err := a.UpdatePatient(other, patient.ID, "Hacked Name", 99, "none"); !errors.Is(err, ErrNotPatientOwner) {
		t.Fatalf("expected ErrNotPatientOwner, got %v", err)
	}
	// The record is unchanged after the denied attempt.
	got, err := a.GetPatient(patient.ID)
	if err != nil {
		t.Fatalf("get patient: %v", err)
	}
	if got.Name != "Peter Parker" || got.Age != 20 || got.Disease != "flu" {
		t.Fatalf("patient mutated by non-owner: %+v", got)
	}
	if _, err := a.UpdatePatient(owner, patient.ID, "Peter B. Parker", 21, "flu"); err != nil {
		t.Fatalf("owner update should pass: %v", err)
	}
}

func TestPatientOwnershipOnDelete(t *testing.T) {
	a := newTestApp(t)
	owner, other := registerTwoUsers(t, a)
	patient, err := a.CreatePatient(owner, "Peter Parker", 20, "flu")
	if err != nil {
		t.Fatalf("create patient: %v", err)
	}
	if err := a.DeletePatient(other, patient.ID); !errors.Is(err, ErrNotPatientOwner) {
		t.Fatalf("expected ErrNotPatientOwner, got %v", err)
	}
	if err := a.DeletePatient(owner, patient.ID); err != nil {
		t.Fatalf("owner delete should pass: %v", err)
	}
	if _, err := a.GetPatient(patient.ID); !errors.Is(err, ErrPatientNotFound) {
		t.Fatalf("expected ErrPatientNotFound after delete, got %v", err)
	}
}

func TestPatientMutationNotFoundBeforeForbidden(t *testing.T) {
	a := newTestApp(t)
	owner, _ := registerTwoUsers(t, a)
	if _, err := a.UpdatePatient(owner, 12345, "Name Long Enough", 1, "x"); !errors.Is(err, ErrPatientNotFound) {
		t.Fatalf("missing patient must be NotFound, got %v", err)
	}
}

func TestListPatientsScopedAndEmptyIsError(t *testing.T) {
	a := newTestApp(t)
	owner, other := registerTwoUsers(t, a)
	if _, err := a.ListPatients(owner); !errors.Is(err, ErrNoPatients) {
		t.Fatalf("expected ErrNoPatients, got %v", err)
	}
	if _, err := a.CreatePatient(owner, "Peter Parker", 20, "flu"); err != nil {
		t.Fatalf("create patient: %v", err)
	}
	patients, err := a.ListPatients(owner)
	if err != nil {
		t.Fatalf("list patients: %v", err)
	}
	if len(patients) != 1 {
		t.Fatalf("expected 1 patient, got %d", len(patients))
	}
	if _, err := a.ListPatients(other); !errors.Is(err, ErrNoPatients) {
		t.Fatalf("other user owns nothing, expected ErrNoPatients, got %v", err)
	}
}

func TestCreateMappingChecksInOrder(t *testing.T) {
	a := newTestApp(t)
	owner, other := registerTwoUsers(t, a)
	patient, err := a.CreatePatient(owner, "Peter Parker", 20, "flu")
	if err != nil {
		t.Fatalf("create patient: %v", err)
	}
	doctor, err := a.CreateDoctor("Stephen Strange", "neurology")
	if err != nil {
		t.Fatalf("create doctor: %v", err)
	}

	// Existence precedes authorization: a bogus doctor reports refs missing
	// even for a non-owner.
	if _, err := a.CreateMapping(other, patient.ID, 999); !errors.Is(err, ErrMappingRefMissing) {
		t.Fatalf("expected ErrMappingRefMissing, got %v", err)
	}
	// Authorization precedes uniqueness.
	if _, err := a.CreateMapping(other, patient.ID, doctor.ID); !errors.Is(err, ErrNotPatientOwner) {
		t.Fatalf("expected ErrNotPatientOwner, got %v", err)
	}

	detail, err := a.CreateMapping(owner, patient.ID, doctor.ID)
	if err != nil {
		t.Fatalf("create mapping: %v", err)
	}
	if detail.Patient.Name != "Peter Parker" || detail.Doctor.Specialization != "neurology" {
		t.Fatalf("projection mismatch: %+v", detail)
	}
	if _, err := a.CreateMapping(owner, patient.ID, doctor.ID); !errors.Is(err, ErrMappingExists) {
		t.Fatalf("expected ErrMappingExists, got %v", err)
	}
}

func TestDeleteMappingLifecycle(t *testing.T) {
	a := newTestApp(t)
	owner, _ := registerTwoUsers(t, a)
	patient, err := a.CreatePatient(owner, "Peter Parker", 20, "flu")
	if err != nil {
		t.Fatalf("create patient: %v", err)
	}
	doctor, err := a.CreateDoctor("Stephen Strange", "neurology")
	if err != nil {
		t.Fatalf("create doctor: %v", err)
	}
	if err := a.DeleteMapping(doctor.ID, 999); !errors.Is(err, ErrMappingRefMissing) {
		t.Fatalf("expected ErrMappingRefMissing, got %v", err)
	}
	if err := a.DeleteMapping(doctor.ID, patient.ID); !errors.Is(err, ErrMappingNotFound) {
		t.Fatalf("expected ErrMappingNotFound for a pair never mapped, got %v", err)
	}
	if _, err := a.CreateMapping(owner, patient.ID, doctor.ID); err != nil {
		t.Fatalf("create mapping: %v", err)
	}
	if err := a.DeleteMapping(doctor.ID, patient.ID); err != nil {
		t.Fatalf("delete mapping: %v", err)
	}
	if err := a.DeleteMapping(doctor.ID, patient.ID); !errors.Is(err, ErrMappingNotFound) {
		t.Fatalf("repeat delete must be NotFound, got %v", err)
	}
}

func TestPatientMappingsDistinguishesMissingAndEmpty(t *testing.T) {
	a := newTestApp(t)
	owner, _ := registerTwoUsers(t, a)
	patient, err := a.CreatePatient(owner, "Peter Parker", 20, "flu")
	if err != nil {
		t.Fatalf("create patient: %v", err)
	}
	if _, _, err := a.PatientMappings(999); !errors.Is(err, ErrPatientNotFound) {
		t.Fatalf("expected ErrPatientNotFound, got %v", err)
	}
	if _, _, err := a.PatientMappings(patient.ID); !errors.Is(err, ErrNoMappings) {
		t.Fatalf("expected ErrNoMappings, got %v", err)
	}
	doctor, err := a.CreateDoctor("Stephen Strange", "neurology")
	if err != nil {
		t.Fatalf("create doctor: %v", err)
	}
	if _, err := a.CreateMapping(owner, patient.ID, doctor.ID); err != nil {
		t.Fatalf("create mapping: %v", err)
	}
	got, details, err := a.PatientMappings(patient.ID)
	if err != nil {
		t.Fatalf("patient mappings: %v", err)
	}
	if got.ID != patient.ID || len(details) != 1 {
		t.Fatalf("unexpected result: patient=%+v details=%d", got, len(details))
	}
}

func TestDeletePatientCascadesToMappings(t *testing.T) {
	a := newTestApp(t)
	owner, _ := registerTwoUsers(t, a)
	patient, err := a.CreatePatient(owner, "Peter Parker", 20, "flu")
	if err != nil {
		t.Fatalf("create patient: %v", err)
	}
	doctor, err := a.CreateDoctor("Stephen Strange", "neurology")
	if err != nil {
		t.Fatalf("create doctor: %v", err)
	}
	if _, err := a.CreateMapping(owner, patient.ID, doctor.ID); err != nil {
		t.Fatalf("create mapping: %v", err)
	}
	if err := a.DeletePatient(owner, patient.ID); err != nil {
		t.Fatalf("delete patient: %v", err)
	}
	details, err := a.ListMappings()
	if err != nil {
		t.Fatalf("list mappings: %v", err)
	}
	if len(details) != 0 {
		t.Fatalf("expected mappings swept with the patient, got %d", len(details))
	}
}

func TestDoctorCRUD(t *testing.T) {
	a := newTestApp(t)
	doctor, err := a.CreateDoctor("Stephen Strange", "neurology")
	if err != nil {
		t.Fatalf("create doctor: %v", err)
	}
	updated, err := a.UpdateDoctor(doctor.ID, "Stephen V. Strange", "surgery")
	if err != nil {
		t.Fatalf("update doctor: %v", err)
	}
	if updated.Specialization != "surgery" {
		t.Fatalf("update not applied: %+v", updated)
	}
	doctors, err := a.ListDoctors()
	if err != nil || len(doctors) != 1 {
		t.Fatalf("list doctors: n=%d err=%v", len(doctors), err)
	}
	if err := a.DeleteDoctor(doctor.ID); err != nil {
		t.Fatalf("delete doctor: %v", err)
	}
	if _, err := a.GetDoctor(doctor.ID); !errors.Is(err, ErrDoctorNotFound) {
		t.Fatalf("expected ErrDoctorNotFound, got %v", err)
	}
	if err := a.DeleteDoctor(doctor.ID); !errors.Is(err, ErrDoctorNotFound) {
		t.Fatalf("expected ErrDoctorNotFound on repeat delete, got %v", err)
	}
}
