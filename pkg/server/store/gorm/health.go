package gorm

import (
	"gorm.io/gorm"

	"github.com/doodlesbykumbi/hydra-in-go/pkg/server/store"
)

var _ store.HealthStore = (*HealthStore)(nil)

type HealthStore struct {
	db *gorm.DB
}

func NewHealthStore(db *gorm.DB) *HealthStore {
	return &HealthStore{db: db}
}

// CheckConnectivity fails when the database is unreachable or the schema
// has not been migrated yet.
func (s *HealthStore) CheckConnectivity() error {
	return s.db.Exec("SELECT 1 FROM users LIMIT 1").Error
}
