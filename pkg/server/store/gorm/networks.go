package gorm

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/doodlesbykumbi/hydra-in-go/pkg/model"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/server/store"
)

var _ store.NetworksStore = (*NetworksStore)(nil)

// NetworksStore implements store.NetworksStore using GORM
type NetworksStore struct {
	db *gorm.DB
}

// NewNetworksStore creates a new NetworksStore
func NewNetworksStore(db *gorm.DB) *NetworksStore {
	return &NetworksStore{db: db}
}

// GetNetwork returns a network with its owners and scenarios.
func (s *NetworksStore) GetNetwork(id int64, withData bool) (*model.Network, error) {
	query := s.db.Preload("Owners").Preload("Scenarios", func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	})
	if withData {
		query = query.Preload("Attributes.Attr").Preload("Scenarios.ResourceScenarios.Dataset")
	}

	var network model.Network
	if err := query.First(&network, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &network, nil
}

// ListProjectNetworks returns the networks of a project with their owners.
func (s *NetworksStore) ListProjectNetworks(projectID int64, status string) ([]model.Network, error) {
	query := s.db.Preload("Owners").Where("project_id = ?", projectID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var networks []model.Network
	err := query.Order("id").Find(&networks).Error
	return networks, err
}

// NetworkNameExists checks if the project already has a network with the name
func (s *NetworksStore) NetworkNameExists(projectID int64, name string) (bool, error) {
	var count int64
	err := s.db.Model(&model.Network{}).
		Where("project_id = ? AND name = ?", projectID, name).
		Count(&count).Error
	return count > 0, err
}

// CreateNetwork inserts a network together with its owners
func (s *NetworksStore) CreateNetwork(network *model.Network) error {
	return s.db.Omit("Project", "Scenarios", "Attributes").Create(network).Error
}

// CreateScenario inserts a scenario
func (s *NetworksStore) CreateScenario(scenario *model.Scenario) error {
	return s.db.Omit("Network", "ResourceScenarios").Create(scenario).Error
}

// SetNetworkOwner inserts or updates an owner entry
func (s *NetworksStore) SetNetworkOwner(owner *model.NetworkOwner) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "network_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"view", "edit", "share"}),
	}).Create(owner).Error
}
