package app

import (
	"fmt"
	"time"

	"caremap/pkg/domain"
)

// Doctors carry no ownership; any authenticated principal may manage them.

func (a *App) CreateDoctor(name, specialization string) (domain.Doctor, error) {
	now := time.Now().UTC()
	doctor, err := a.store.CreateDoctor(domain.Doctor{
		Name:           name,
		Specialization: specialization,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		return domain.Doctor{}, fmt.Errorf("save doctor: %w", err)
	}
	return doctor, nil
}

func (a *App) ListDoctors() ([]domain.Doctor, error) {
	doctors, err := a.store.ListDoctors()
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	return doctors, nil
}

func (a *App) GetDoctor(id uint) (domain.Doctor, error) {
	doctor, ok, err := a.store.GetDoctor(id)
	if err != nil {
		return domain.Doctor{}, fmt.Errorf("fetch doctor: %w", err)
	}
	if !ok {
		return domain.Doctor{}, ErrDoctorNotFound
	}
	return doctor, nil
}

func (a *App) UpdateDoctor(id uint, name, specialization string) (domain.Doctor, error) {
	doctor, ok, err := a.store.GetDoctor(id)
	if err != nil {
		return domain.Doctor{}, fmt.Errorf("fetch doctor: %w", err)
	}
	if !ok {
		return domain.Doctor{}, ErrDoctorNotFound
	}
	doctor.Name = name
	doctor.Specialization = specialization
	doctor.UpdatedAt = time.Now().UTC()
	if err := a.store.UpdateDoctor(doctor); err != nil {
		return domain.Doctor{}, fmt.Errorf("update doctor: %w", err)
	}
	return doctor, nil
}

// DeleteDoctor removes a doctor and, through the storage cascade, its
// mappings.
func (a *App) DeleteDoctor(id uint) error {
	_, ok, err := a.store.GetDoctor(id)
	if err != nil {
		return fmt.Errorf("fetch doctor: %w", err)
	}
	if !ok {
		return ErrDoctorNotFound
	}
	if err := a.store.DeleteDoctor(id); err != nil {
		return fmt.Errorf("delete doctor: %w", err)
	}
	return nil
}
