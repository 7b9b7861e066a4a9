package store

import "time"

// GORM models used for persistence.
type UserModel struct {
	ID           uint      `gorm:"primaryKey"`
	Name         string    `gorm:"not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

type PatientModel struct {
	ID        uint       `gorm:"primaryKey"`
	Name      string     `gorm:"not null"`
	Age       int        `gorm:"not null"`
	Disease   string     `gorm:"not null"`
	OwnerID   uint       `gorm:"not null;index"`
	Owner     *UserModel `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `gorm:"not null"`
	UpdatedAt time.Time
}

type DoctorModel struct {
	ID             uint      `gorm:"primaryKey"`
	Name           string    `gorm:"not null"`
	Specialization string    `gorm:"not null"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time
}

// MappingModel rows are unique per (patient, doctor) pair. Deleting a patient
// or doctor cascades to its mappings.
type MappingModel struct {
	ID        uint          `gorm:"primaryKey"`
	PatientID uint          `gorm:"not null;uniqueIndex:idx_mapping_patient_doctor"`
	DoctorID  uint          `gorm:"not null;uniqueIndex:idx_mapping_patient_doctor"`
	Patient   *PatientModel `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE"`
	Doctor    *DoctorModel  `gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time     `gorm:"not null"`
}
