package repository

import (
	"fmt"
	"sort"

	"github.com/Jijnash2636/medaiton/internal/domain/entity"
	domainRepo "github.com/Jijnash2636/medaiton/internal/domain/repository"
	"github.com/Jijnash2636/medaiton/internal/memstore"
)

type staffRepository struct{}

func NewStaffRepository() domainRepo.StaffRepository {
	return &staffRepository{}
}

func (r *staffRepository) Create(tx *memstore.Tx, staff *entity.StaffUser) error {
	if _, exists := tx.Staff[staff.ID]; exists {
		return fmt.Errorf("staff user %s already exists", staff.ID)
	}
	tx.Staff[staff.ID] = staff.Clone()
	return nil
}

func (r *staffRepository) FindByID(tx *memstore.Tx, id string) (*entity.StaffUser, error) {
	s, ok := tx.Staff[id]
	if !ok {
		return nil, nil
	}
	return s.Clone(), nil
}

func (r *staffRepository) FindAll(tx *memstore.Tx) ([]entity.StaffUser, error) {
	out := make([]entity.StaffUser, 0, len(tx.Staff))
	for _, s := range tx.Staff {
		out = append(out, *s.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
