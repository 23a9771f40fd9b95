package gorm

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/doodlesbykumbi/hydra-in-go/pkg/model"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/server/store"
)

var _ store.DatasetsStore = (*DatasetsStore)(nil)

// DatasetsStore implements store.DatasetsStore using GORM
type DatasetsStore struct {
	db *gorm.DB
}

// NewDatasetsStore creates a new DatasetsStore
func NewDatasetsStore(db *gorm.DB) *DatasetsStore {
	return &DatasetsStore{db: db}
}

// GetDataset returns a dataset.
func (s *DatasetsStore) GetDataset(id int64) (*model.Dataset, error) {
	var dataset model.Dataset
	if err := s.db.First(&dataset, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &dataset, nil
}

// GetDatasets returns the datasets with the given ids, ordered by id
func (s *DatasetsStore) GetDatasets(ids []int64) ([]model.Dataset, error) {
	var datasets []model.Dataset
	err := s.db.Where("id IN ?", ids).Order("id").Find(&datasets).Error
	return datasets, err
}

// FindDatasetByHash returns the dataset with the given content hash
func (s *DatasetsStore) FindDatasetByHash(hash string) (*model.Dataset, error) {
	var dataset model.Dataset
	if err := s.db.Where("hash = ?", hash).First(&dataset).Error; err != nil {
		return nil, notFound(err)
	}
	return &dataset, nil
}

// CreateDataset inserts a dataset
func (s *DatasetsStore) CreateDataset(dataset *model.Dataset) error {
	return s.db.Create(dataset).Error
}

// GetCollection returns a collection with its items
func (s *DatasetsStore) GetCollection(id int64) (*model.DatasetCollection, error) {
	var collection model.DatasetCollection
	err := s.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("dataset_id")
	}).First(&collection, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &collection, nil
}

// FindCollectionsLikeName returns collections whose name contains the text
func (s *DatasetsStore) FindCollectionsLikeName(text string) ([]model.DatasetCollection, error) {
	var collections []model.DatasetCollection
	err := s.db.Preload("Items").
		Where("name ILIKE ?", "%"+text+"%").
		Order("id").
		Find(&collections).Error
	return collections, err
}

// CreateCollection inserts a collection together with its items
func (s *DatasetsStore) CreateCollection(collection *model.DatasetCollection) error {
	return s.db.Create(collection).Error
}

// AddCollectionItem adds a dataset to a collection, ignoring duplicates
func (s *DatasetsStore) AddCollectionItem(collectionID, datasetID int64) error {
	return s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&model.DatasetCollectionItem{
		CollectionID: collectionID,
		DatasetID:    datasetID,
	}).Error
}

// RemoveCollectionItem removes a dataset from a collection.
func (s *DatasetsStore) RemoveCollectionItem(collectionID, datasetID int64) error {
	return affected(s.db.
		Where("collection_id = ? AND dataset_id = ?", collectionID, datasetID).
		Delete(&model.DatasetCollectionItem{}))
}

// DeleteCollection removes a collection. Items cascade in the database.
func (s *DatasetsStore) DeleteCollection(id int64) error {
	return affected(s.db.Delete(&model.DatasetCollection{}, id))
}
