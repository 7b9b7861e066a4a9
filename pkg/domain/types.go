package domain

import "time"

// User is a registered account. PasswordHash is never serialized.
type User struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Patient is owned by the user who created it; only the owner may mutate it.
type Patient struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	Disease   string    `json:"disease"`
	OwnerID   uint      `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Doctor carries no ownership; any authenticated principal may manage it.
type Doctor struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	Specialization string    `json:"specialization"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Mapping links one patient to one doctor. The (PatientID, DoctorID) pair is
// unique.
type Mapping struct {
	ID        uint      `json:"id"`
	PatientID uint      `json:"patientId"`
	DoctorID  uint      `json:"doctorId"`
	CreatedAt time.Time `json:"createdAt"`
}

// PatientSummary is the patient projection embedded in mapping responses.
type PatientSummary struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Age     int    `json:"age"`
	Disease string `json:"disease"`
}

// DoctorSummary is the doctor projection embedded in mapping responses.
type DoctorSummary struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
}

// MappingDetail is a mapping together with its entity projections.
type MappingDetail struct {
	Mapping
	Patient PatientSummary `json:"patient"`
	Doctor  DoctorSummary  `json:"doctor"`
}

// Summary returns the projection of a patient used in mapping responses.
func (p Patient) Summary() PatientSummary {
	return PatientSummary{ID: p.ID, Name: p.Name, Age: p.Age, Disease: p.Disease}
}

// Summary returns the projection of a doctor used in mapping responses.
func (d Doctor) Summary() DoctorSummary {
	return DoctorSummary{ID: d.ID, Name: d.Name, Specialization: d.Specialization}
}
