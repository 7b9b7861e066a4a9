package app

import "errors"

// Sentinel errors returned by core operations. Handlers map these to HTTP
// statuses; anything else is reported as a generic internal error.
var (
	ErrEmailTaken         = errors.New("user already exists, try using a different email")
	ErrUnknownEmail       = errors.New("no user with the email found, kindly register using the email first")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrPatientNotFound = errors.New("no such patient found")
	ErrNoPatients      = errors.New("no patients added by the logged in user")
	// ErrNotPatientOwner is the Forbidden outcome of the ownership check:
	// only the user who created a patient may mutate it or map doctors to it.
	ErrNotPatientOwner = errors.New("you are not allowed to modify this patient, since you have not created it")

	ErrDoctorNotFound = errors.New("no such doctor found")

	// ErrMappingRefMissing covers a patient or doctor ID that does not
	// resolve during mapping creation or deletion.
	ErrMappingRefMissing = errors.New("please check the patient and doctor IDs")
	ErrMappingExists     = errors.New("mapping for patient and doctor already exists")
	ErrMappingNotFound   = errors.New("no such mapping exists")
	// ErrNoMappings reports a patient that exists but has zero mappings.
	// Zero results is a client error here, not an empty success list.
	ErrNoMappings = errors.New("no mappings found for the patient")
)
