package store

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"caremap/pkg/domain"
)

// GormStore implements Store using GORM + Postgres.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the DB and runs auto-migrations. The migrations create
// the unique email index and the composite (patient_id, doctor_id) index that
// back the application-level duplicate checks.
func NewGormStore(dsn string) (*GormStore, error) {
	gormLog := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.AutoMigrate(&UserModel{}, &PatientModel{}, &DoctorModel{}, &MappingModel{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

// users

func (s *GormStore) CreateUser(u domain.User) (domain.User, error) {
	m := userToModel(u)
	tx := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(&m)
	if tx.Error != nil {
		return domain.User{}, tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.User{}, ErrDuplicate
	}
	return userFromModel(m), nil
}

func (s *GormStore) HasUserEmail(email string) (bool, error) {
	var count int64
	if err := s.db.Model(&UserModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *GormStore) GetUserByEmail(email string) (domain.User, bool, error) {
	var m UserModel
	err := s.db.Where("email = ?", email).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.User{}, false, nil
	}
	if err != nil {
		return domain.User{}, false, err
	}
	return userFromModel(m), true, nil
}

func (s *GormStore) GetUserByID(id uint) (domain.User, bool, error) {
	var m UserModel
	err := s.db.First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.User{}, false, nil
	}
	if err != nil {
		return domain.User{}, false, err
	}
	return userFromModel(m), true, nil
}

// patients

func (s *GormStore) CreatePatient(p domain.Patient) (domain.Patient, error) {
	m := patientToModel(p)
	if err := s.db.Create(&m).Error; err != nil {
		return domain.Patient{}, err
	}
	return patientFromModel(m), nil
}

func (s *GormStore) GetPatient(id uint) (domain.Patient, bool, error) {
	var m PatientModel
	err := s.db.First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Patient{}, false, nil
	}
	if err != nil {
		return domain.Patient{}, false, err
	}
	return patientFromModel(m), true, nil
}

func (s *GormStore) ListPatientsByOwner(ownerID uint) ([]domain.Patient, error) {
	var models []PatientModel
	if err := s.db.Where("owner_id = ?", ownerID).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Patient, 0, len(models))
	for _, m := range models {
		out = append(out, patientFromModel(m))
	}
	return out, nil
}

func (s *GormStore) UpdatePatient(p domain.Patient) error {
	m := patientToModel(p)
	return s.db.Save(&m).Error
}

func (s *GormStore) DeletePatient(id uint) error {
	return s.db.Delete(&PatientModel{}, id).Error
}

// doctors

func (s *GormStore) CreateDoctor(d domain.Doctor) (domain.Doctor, error) {
	m := doctorToModel(d)
	if err := s.db.Create(&m).Error; err != nil {
		return domain.Doctor{}, err
	}
	return doctorFromModel(m), nil
}

func (s *GormStore) GetDoctor(id uint) (domain.Doctor, bool, error) {
	var m DoctorModel
	err := s.db.First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Doctor{}, false, nil
	}
	if err != nil {
		return domain.Doctor{}, false, err
	}
	return doctorFromModel(m), true, nil
}

func (s *GormStore) ListDoctors() ([]domain.Doctor, error) {
	var models []DoctorModel
	if err := s.db.Order("id").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Doctor, 0, len(models))
	for _, m := range models {
		out = append(out, doctorFromModel(m))
	}
	return out, nil
}

func (s *GormStore) UpdateDoctor(d domain.Doctor) error {
	m := doctorToModel(d)
	return s.db.Save(&m).Error
}

func (s *GormStore) DeleteDoctor(id uint) error {
	return s.db.Delete(&DoctorModel{}, id).Error
}

// mappings

func (s *GormStore) CreateMapping(patientID, doctorID uint) (domain.Mapping, error) {
	m := MappingModel{
		PatientID: patientID,
		DoctorID:  doctorID,
		CreatedAt: time.Now().UTC(),
	}
	tx := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "patient_id"}, {Name: "doctor_id"}},
		DoNothing: true,
	}).Create(&m)
	if tx.Error != nil {
		return domain.Mapping{}, tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.Mapping{}, ErrDuplicate
	}
	return mappingFromModel(m), nil
}

func (s *GormStore) HasMapping(patientID, doctorID uint) (bool, error) {
	var count int64
	err := s.db.Model(&MappingModel{}).
		Where("patient_id = ? AND doctor_id = ?", patientID, doctorID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *GormStore) ListMappingDetails() ([]domain.MappingDetail, error) {
	return s.listMappingDetails(nil)
}

func (s *GormStore) ListMappingsByPatient(patientID uint) ([]domain.MappingDetail, error) {
	return s.listMappingDetails(map[string]any{"patient_id": patientID})
}

func (s *GormStore) listMappingDetails(conds map[string]any) ([]domain.MappingDetail, error) {
	query := s.db.Preload("Patient").Preload("Doctor").Order("id")
	if len(conds) > 0 {
		query = query.Where(conds)
	}
	var models []MappingModel
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]domain.MappingDetail, 0, len(models))
	for _, m := range models {
		detail := domain.MappingDetail{Mapping: mappingFromModel(m)}
		if m.Patient != nil {
			detail.Patient = patientFromModel(*m.Patient).Summary()
		}
		if m.Doctor != nil {
			detail.Doctor = doctorFromModel(*m.Doctor).Summary()
		}
		out = append(out, detail)
	}
	return out, nil
}

func (s *GormStore) DeleteMapping(patientID, doctorID uint) (bool, error) {
	tx := s.db.Where("patient_id = ? AND doctor_id = ?", patientID, doctorID).
		Delete(&MappingModel{})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// model mappers

func userToModel(u domain.User) UserModel {
	return UserModel{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}

func userFromModel(m UserModel) domain.User {
	return domain.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
	}
}

func patientToModel(p domain.Patient) PatientModel {
	return PatientModel{
		ID:        p.ID,
		Name:      p.Name,
		Age:       p.Age,
		Disease:   p.Disease,
		OwnerID:   p.OwnerID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func patientFromModel(m PatientModel) domain.Patient {
	return domain.Patient{
		ID:        m.ID,
		Name:      m.Name,
		Age:       m.Age,
		Disease:   m.Disease,
		OwnerID:   m.OwnerID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func doctorToModel(d domain.Doctor) DoctorModel {
	return DoctorModel{
		ID:             d.ID,
		Name:           d.Name,
		Specialization: d.Specialization,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func doctorFromModel(m DoctorModel) domain.Doctor {
	return domain.Doctor{
		ID:             m.ID,
		Name:           m.Name,
		Specialization: m.Specialization,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func mappingFromModel(m MappingModel) domain.Mapping {
	return domain.Mapping{
		ID:        m.ID,
		PatientID: m.PatientID,
		DoctorID:  m.DoctorID,
		CreatedAt: m.CreatedAt,
	}
}
