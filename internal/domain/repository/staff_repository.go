package repository

import (
	"github.com/Jijnash2636/medaiton/internal/domain/entity"
	"github.com/Jijnash2636/medaiton/internal/memstore"
)

// StaffRepository serves the fixed professional roster.
type StaffRepository interface {
	Create(tx *memstore.Tx, staff *entity.StaffUser) error
	FindByID(tx *memstore.Tx, id string) (*entity.StaffUser, error)
	FindAll(tx *memstore.Tx) ([]entity.StaffUser, error)
}
