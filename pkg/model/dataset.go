package model

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/doodlesbykumbi/hydra-in-go/pkg/fault"
)

//go:generate go run github.com/dmarkham/enumer -type DataType -trimprefix DataType -transform lower -json -sql -output datatype.gen.go

// DataType is the kind of value a Dataset stores.
type DataType int

const (
	DataTypeDescriptor DataType = iota
	DataTypeScalar
	DataTypeArray
	DataTypeTimeseries
)

// Dataset is a stored value. Value holds the text form: a plain string for
// descriptors, a number for scalars, and JSON for arrays and timeseries.
type Dataset struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id"`
	Type      DataType  `gorm:"column:type;type:varchar(20);not null" json:"type"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Unit      string    `gorm:"column:unit" json:"unit,omitempty"`
	Hash      string    `gorm:"column:hash;not null" json:"hash"`
	Value     string    `gorm:"column:value;type:text" json:"value"`
	Hidden    bool      `gorm:"column:hidden" json:"hidden"`
	CreatedBy int64     `gorm:"column:created_by" json:"created_by"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Dataset) TableName() string {
	return "datasets"
}

// SetHash computes the content hash used to share identical datasets.
// Public datasets are shared between all users; a hidden dataset is only
// shared with later datasets of the same creator.
func (d *Dataset) SetHash() string {
	parts := []string{d.Type.String(), d.Name, d.Unit, d.Value}
	if d.Hidden {
		parts = append(parts, "hidden", strconv.FormatInt(d.CreatedBy, 10))
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	d.Hash = hex.EncodeToString(sum[:])
	return d.Hash
}

// CheckReadPermission lets only the creator or an admin read a hidden
// dataset.
func (d *Dataset) CheckReadPermission(userID int64, isAdmin bool) error {
	if !d.Hidden || isAdmin || d.CreatedBy == userID {
		return nil
	}
	return fault.Permission("User %d does not have permission to view dataset %d", userID, d.ID)
}

// Redacted is d without its value and hash, for callers that may see a
// hidden dataset is bound somewhere but not read it.
func (d *Dataset) Redacted() *Dataset {
	return &Dataset{
		ID:        d.ID,
		Type:      d.Type,
		Name:      d.Name,
		Unit:      d.Unit,
		Hidden:    true,
		CreatedBy: d.CreatedBy,
		CreatedAt: d.CreatedAt,
	}
}

// DatasetCollection is a named group of datasets.
type DatasetCollection struct {
	ID        int64                   `gorm:"column:id;primaryKey" json:"id"`
	Name      string                  `gorm:"column:name;not null" json:"name"`
	CreatedBy int64                   `gorm:"column:created_by" json:"created_by"`
	CreatedAt time.Time               `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Items     []DatasetCollectionItem `gorm:"foreignKey:CollectionID" json:"items,omitempty"`
}

func (DatasetCollection) TableName() string {
	return "dataset_collections"
}

type DatasetCollectionItem struct {
	CollectionID int64     `gorm:"column:collection_id;primaryKey" json:"collection_id"`
	DatasetID    int64     `gorm:"column:dataset_id;primaryKey" json:"dataset_id"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Dataset      *Dataset  `gorm:"foreignKey:DatasetID" json:"dataset,omitempty"`
}

func (DatasetCollectionItem) TableName() string {
	return "dataset_collection_items"
}
