package store

import "github.com/doodlesbykumbi/hydra-in-go/pkg/model"

// DatasetsStore abstracts dataset and dataset collection storage operations
type DatasetsStore interface {
	// GetDataset returns a dataset. Returns ErrNotFound if it doesn't exist.
	GetDataset(id int64) (*model.Dataset, error)

	// GetDatasets returns the datasets with the given ids, ordered by id
	GetDatasets(ids []int64) ([]model.Dataset, error)

	// FindDatasetByHash returns the dataset with the given content hash
	FindDatasetByHash(hash string) (*model.Dataset, error)

	// CreateDataset inserts a dataset
	CreateDataset(dataset *model.Dataset) error

	// GetCollection returns a collection with its items
	GetCollection(id int64) (*model.DatasetCollection, error)

	// FindCollectionsLikeName returns collections whose name contains the text
	FindCollectionsLikeName(text string) ([]model.DatasetCollection, error)

	// CreateCollection inserts a collection together with its items
	CreateCollection(collection *model.DatasetCollection) error

	// AddCollectionItem adds a dataset to a collection, ignoring duplicates
	AddCollectionItem(collectionID, datasetID int64) error

	// RemoveCollectionItem removes a dataset from a collection.
	// Returns ErrNotFound if the dataset is not in the collection.
	RemoveCollectionItem(collectionID, datasetID int64) error

	// DeleteCollection removes a collection and its items
	DeleteCollection(id int64) error
}
