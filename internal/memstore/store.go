// Package memstore is the single source of truth for patients,
// appointments and the staff roster. All collections live behind one
// mutex: a workflow transition locks once, validates its preconditions,
// mutates every record it touches and unlocks, so no caller can observe
// a half-applied transition.
package memstore

import (
	"sync"

	"github.com/Jijnash2636/medaiton/internal/domain/entity"
)

// PatientBaseID is the id assigned to the very first patient.
const PatientBaseID = 100001

// Store holds the in-memory collections.
type Store struct {
	mu           sync.RWMutex
	patients     map[int]*entity.Patient
	appointments map[int]*entity.Appointment
	staff        map[string]*entity.StaffUser
}

// Tx is a handle to the collections, valid only inside Atomic or View.
// Repositories take it as their first argument the same way a SQL
// repository takes a transaction.
type Tx struct {
	Patients     map[int]*entity.Patient
	Appointments map[int]*entity.Appointment
	Staff        map[string]*entity.StaffUser
}

func New() *Store {
	return &Store{
		patients:     make(map[int]*entity.Patient),
		appointments: make(map[int]*entity.Appointment),
		staff:        make(map[string]*entity.StaffUser),
	}
}

// Atomic runs fn under the write lock. If fn returns an error the
// caller must not have mutated anything; precondition checks come
// before the first write.
func (s *Store) Atomic(fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.tx())
}

// View runs fn under the read lock. fn must not mutate.
func (s *Store) View(fn func(tx *Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.tx())
}

func (s *Store) tx() *Tx {
	return &Tx{
		Patients:     s.patients,
		Appointments: s.appointments,
		Staff:        s.staff,
	}
}

// NextPatientID assigns monotonically above every id ever handed out in
// either collection, starting from the fixed base. Ids are never reused.
func (tx *Tx) NextPatientID() int {
	max := PatientBaseID - 1
	for id := range tx.Patients {
		if id > max {
			max = id
		}
	}
	for id := range tx.Appointments {
		if id > max {
			max = id
		}
	}
	return max + 1
}

// NextAppointmentID assigns max-plus-one scoped to the appointment
// collection only.
func (tx *Tx) NextAppointmentID() int {
	max := 0
	for id := range tx.Appointments {
		if id > max {
			max = id
		}
	}
	return max + 1
}
