package gorm

import (
	"errors"

	"gorm.io/gorm"

	"github.com/doodlesbykumbi/hydra-in-go/pkg/model"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/server/store"
)

var _ store.AttributesStore = (*AttributesStore)(nil)

// AttributesStore implements store.AttributesStore using GORM
type AttributesStore struct {
	db *gorm.DB
}

// NewAttributesStore creates a new AttributesStore
func NewAttributesStore(db *gorm.DB) *AttributesStore {
	return &AttributesStore{db: db}
}

// GetAttr returns an attribute definition
func (s *AttributesStore) GetAttr(id int64) (*model.Attr, error) {
	var attr model.Attr
	if err := s.db.First(&attr, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &attr, nil
}

// AddResourceAttr attaches an attribute to a project or network
func (s *AttributesStore) AddResourceAttr(ra *model.ResourceAttr) error {
	return s.db.Omit("Attr").Create(ra).Error
}

// SetResourceScenario inserts the value of a resource attribute, or replaces
// the dataset of the existing one for the same scenario
func (s *AttributesStore) SetResourceScenario(rs *model.ResourceScenario) error {
	query := s.db.Where("resource_attr_id = ?", rs.ResourceAttrID)
	if rs.ScenarioID == nil {
		query = query.Where("scenario_id IS NULL")
	} else {
		query = query.Where("scenario_id = ?", *rs.ScenarioID)
	}

	var existing model.ResourceScenario
	err := query.First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.db.Omit("Dataset", "ResourceAttr").Create(rs).Error
	}
	if err != nil {
		return err
	}

	rs.ID = existing.ID
	return s.db.Model(&existing).Updates(map[string]interface{}{
		"dataset_id": rs.DatasetID,
		"source":     rs.Source,
	}).Error
}

// ProjectAttributeData returns the scenario-less data of a project's
// attributes with their datasets
func (s *AttributesStore) ProjectAttributeData(projectID int64) ([]model.ResourceScenario, error) {
	attrs := s.db.Model(&model.ResourceAttr{}).Select("id").Where("project_id = ?", projectID)

	var data []model.ResourceScenario
	err := s.db.Preload("Dataset").Preload("ResourceAttr.Attr").
		Where("resource_attr_id IN (?) AND scenario_id IS NULL", attrs).
		Order("id").
		Find(&data).Error
	return data, err
}
