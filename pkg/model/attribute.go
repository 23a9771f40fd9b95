package model

import "time"

// Resource types an attribute can be attached to.
const (
	RefKeyProject = "PROJECT"
	RefKeyNetwork = "NETWORK"
)

// Attr is a named, dimensioned attribute definition.
type Attr struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Dimension string    `gorm:"column:dimension" json:"dimension"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Attr) TableName() string {
	return "attrs"
}

// ResourceAttr attaches an Attr to a project or network.
type ResourceAttr struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id"`
	AttrID    int64     `gorm:"column:attr_id;not null" json:"attr_id"`
	RefKey    string    `gorm:"column:ref_key;not null" json:"ref_key"`
	ProjectID *int64    `gorm:"column:project_id" json:"project_id,omitempty"`
	NetworkID *int64    `gorm:"column:network_id" json:"network_id,omitempty"`
	AttrIsVar bool      `gorm:"column:attr_is_var" json:"attr_is_var"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Attr      *Attr     `gorm:"foreignKey:AttrID" json:"attr,omitempty"`
}

func (ResourceAttr) TableName() string {
	return "resource_attrs"
}

// ResourceScenario binds a dataset to a resource attribute. Project
// attribute data has no scenario.
type ResourceScenario struct {
	ID             int64         `gorm:"column:id;primaryKey" json:"id"`
	ResourceAttrID int64         `gorm:"column:resource_attr_id;not null" json:"resource_attr_id"`
	ScenarioID     *int64        `gorm:"column:scenario_id" json:"scenario_id,omitempty"`
	DatasetID      int64         `gorm:"column:dataset_id;not null" json:"dataset_id"`
	Source         string        `gorm:"column:source" json:"source,omitempty"`
	Dataset        *Dataset      `gorm:"foreignKey:DatasetID" json:"dataset,omitempty"`
	ResourceAttr   *ResourceAttr `gorm:"foreignKey:ResourceAttrID" json:"resourceattr,omitempty"`
}

func (ResourceScenario) TableName() string {
	return "resource_scenarios"
}
