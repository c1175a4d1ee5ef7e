package bootstrap

import (
	"github.com/Jijnash2636/medaiton/config"
	"github.com/Jijnash2636/medaiton/internal/domain/entity"
	"github.com/Jijnash2636/medaiton/internal/memstore"
	"github.com/Jijnash2636/medaiton/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// seedStaff loads the fixed professional roster into the store. The
// shared demo password is hashed once; plaintext never reaches the
// store.
func seedStaff(store *memstore.Store, cfg config.StaffConfig) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	roster := []entity.StaffUser{
		{ID: "DID000067", Name: "Dr. Evelyn Reed", Role: entity.RoleDoctor},
		{ID: "IID000045", Name: "Alex Carter", Role: entity.RoleIntern},
		{ID: "RID000012", Name: "Samuel Jones", Role: entity.RoleReceptionist},
		{ID: "AID000001", Name: "Chris Lee", Role: entity.RoleAdmin},
	}

	staffRepo := repository.NewStaffRepository()
	return store.Atomic(func(tx *memstore.Tx) error {
		for i := range roster {
			roster[i].PasswordHash = string(hash)
			if err := staffRepo.Create(tx, &roster[i]); err != nil {
				return err
			}
		}
		return nil
	})
}
