package repository

import (
	"github.com/Jijnash2636/medaiton/internal/domain/entity"
	"github.com/Jijnash2636/medaiton/internal/memstore"
)

// PatientRepository reads and writes patient records against a store
// transaction. FindBy* return (nil, nil) when nothing matches.
type PatientRepository interface {
	Create(tx *memstore.Tx, patient *entity.Patient) error
	Update(tx *memstore.Tx, patient *entity.Patient) error
	FindByID(tx *memstore.Tx, id int) (*entity.Patient, error)
	FindByMobile(tx *memstore.Tx, mobile string) (*entity.Patient, error)
	FindByStatus(tx *memstore.Tx, status entity.PatientStatus) ([]entity.Patient, error)
	FindAll(tx *memstore.Tx) ([]entity.Patient, error)
}
