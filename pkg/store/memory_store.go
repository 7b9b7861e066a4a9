package store

import (
	"sort"
	"sync"

	"caremap/pkg/domain"
)

// MemoryStore keeps all records in-process. It mirrors the GormStore
// semantics (generated IDs, uniqueness, delete cascades) for tests.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[uint]domain.User
	email    map[string]uint // email -> user ID
	patients map[uint]domain.Patient
	doctors  map[uint]domain.Doctor
	mappings map[uint]domain.Mapping
	nextID   map[string]uint
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[uint]domain.User),
		email:    make(map[string]uint),
		patients: make(map[uint]domain.Patient),
		doctors:  make(map[uint]domain.Doctor),
		mappings: make(map[uint]domain.Mapping),
		nextID:   make(map[string]uint),
	}
}

func (m *MemoryStore) allocID(kind string) uint {
	m.nextID[kind]++
	return m.nextID[kind]
}

// users

func (m *MemoryStore) CreateUser(u domain.User) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.email[u.Email]; exists {
		return domain.User{}, ErrDuplicate
	}
	u.ID = m.allocID("user")
	m.users[u.ID] = u
	m.email[u.Email] = u.ID
	return u, nil
}

func (m *MemoryStore) HasUserEmail(email string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.email[email]
	return ok, nil
}

func (m *MemoryStore) GetUserByEmail(email string) (domain.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.email[email]
	if !ok {
		return domain.User{}, false, nil
	}
	u, ok := m.users[id]
	return u, ok, nil
}

func (m *MemoryStore) GetUserByID(id uint) (domain.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	return u, ok, nil
}

// patients

func (m *MemoryStore) CreatePatient(p domain.Patient) (domain.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = m.allocID("patient")
	m.patients[p.ID] = p
	return p, nil
}

func (m *MemoryStore) GetPatient(id uint) (domain.Patient, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.patients[id]
	return p, ok, nil
}

func (m *MemoryStore) ListPatientsByOwner(ownerID uint) ([]domain.Patient, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Patient, 0)
	for _, p := range m.patients {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) UpdatePatient(p domain.Patient) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.patients[p.ID] = p
	return nil
}

// DeletePatient removes the patient and sweeps its mappings, matching the
// ON DELETE CASCADE behavior of the Postgres schema.
func (m *MemoryStore) DeletePatient(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.patients, id)
	for mid, mapping := range m.mappings {
		if mapping.PatientID == id {
			delete(m.mappings, mid)
		}
	}
	return nil
}

// doctors

func (m *MemoryStore) CreateDoctor(d domain.Doctor) (domain.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d.ID = m.allocID("doctor")
	m.doctors[d.ID] = d
	return d, nil
}

func (m *MemoryStore) GetDoctor(id uint) (domain.Doctor, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.doctors[id]
	return d, ok, nil
}

func (m *MemoryStore) ListDoctors() ([]domain.Doctor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Doctor, 0, len(m.doctors))
	for _, d := range m.doctors {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) UpdateDoctor(d domain.Doctor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doctors[d.ID] = d
	return nil
}

// DeleteDoctor removes the doctor and sweeps its mappings.
func (m *MemoryStore) DeleteDoctor(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.doctors, id)
	for mid, mapping := range m.mappings {
		if mapping.DoctorID == id {
			delete(m.mappings, mid)
		}
	}
	return nil
}

// mappings

func (m *MemoryStore) CreateMapping(patientID, doctorID uint) (domain.Mapping, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, mapping := range m.mappings {
		if mapping.PatientID == patientID && mapping.DoctorID == doctorID {
			return domain.Mapping{}, ErrDuplicate
		}
	}
	mapping := domain.Mapping{
		ID:        m.allocID("mapping"),
		PatientID: patientID,
		DoctorID:  doctorID,
	}
	m.mappings[mapping.ID] = mapping
	return mapping, nil
}

func (m *MemoryStore) HasMapping(patientID, doctorID uint) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, mapping := range m.mappings {
		if mapping.PatientID == patientID && mapping.DoctorID == doctorID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStore) ListMappingDetails() ([]domain.MappingDetail, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collectDetails(func(domain.Mapping) bool { return true }), nil
}

func (m *MemoryStore) ListMappingsByPatient(patientID uint) ([]domain.MappingDetail, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collectDetails(func(mp domain.Mapping) bool { return mp.PatientID == patientID }), nil
}

func (m *MemoryStore) collectDetails(keep func(domain.Mapping) bool) []domain.MappingDetail {
	out := make([]domain.MappingDetail, 0)
	for _, mapping := range m.mappings {
		if !keep(mapping) {
			continue
		}
		detail := domain.MappingDetail{Mapping: mapping}
		if p, ok := m.patients[mapping.PatientID]; ok {
			detail.Patient = p.Summary()
		}
		if d, ok := m.doctors[mapping.DoctorID]; ok {
			detail.Doctor = d.Summary()
		}
		out = append(out, detail)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *MemoryStore) DeleteMapping(patientID, doctorID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for mid, mapping := range m.mappings {
		if mapping.PatientID == patientID && mapping.DoctorID == doctorID {
			delete(m.mappings, mid)
			return true, nil
		}
	}
	return false, nil
}
