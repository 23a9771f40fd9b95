package gorm

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/doodlesbykumbi/hydra-in-go/pkg/server/store"
)

var _ store.Stores = (*Stores)(nil)

// Stores hands out GORM stores sharing one database handle
type Stores struct {
	db *gorm.DB
}

// NewStores creates a new Stores
func NewStores(db *gorm.DB) *Stores {
	return &Stores{db: db}
}

func (s *Stores) Projects() store.ProjectsStore { return NewProjectsStore(s.db) }
func (s *Stores) Networks() store.NetworksStore { return NewNetworksStore(s.db) }
func (s *Stores) Attributes() store.AttributesStore { return NewAttributesStore(s.db) }
func (s *Stores) Datasets() store.DatasetsStore { return NewDatasetsStore(s.db) }
func (s *Stores) Users() store.UsersStore { return NewUsersStore(s.db) }
func (s *Stores) UserGroups() store.UserGroupsStore { return NewUserGroupsStore(s.db) }
func (s *Stores) Health() store.HealthStore { return NewHealthStore(s.db) }

// Transaction runs fn with stores bound to a transaction. The transaction
// is rolled back if fn returns an error.
func (s *Stores) Transaction(ctx context.Context, fn func(store.Stores) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStores(tx))
	})
}

// notFound maps gorm's missing record error to store.ErrNotFound
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.ErrNotFound
	}
	return err
}

// affected returns store.ErrNotFound when a write touched no rows
func affected(tx *gorm.DB) error {
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
