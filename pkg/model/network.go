package model

import "time"

// Network belongs to exactly one project and holds scenarios. Its owner
// list is independent of the project's.
type Network struct {
	ID          int64          `gorm:"column:id;primaryKey" json:"id"`
	ProjectID   int64          `gorm:"column:project_id;not null" json:"project_id"`
	Name        string         `gorm:"column:name;not null" json:"name"`
	Description string         `gorm:"column:description" json:"description"`
	Layout      string         `gorm:"column:layout" json:"layout,omitempty"`
	Status      string         `gorm:"column:status;type:varchar(1);not null" json:"status"`
	CreatedBy   int64          `gorm:"column:created_by" json:"created_by"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	Project     *Project       `gorm:"foreignKey:ProjectID" json:"-"`
	Owners      []NetworkOwner `gorm:"foreignKey:NetworkID" json:"owners,omitempty"`
	Scenarios   []Scenario     `gorm:"foreignKey:NetworkID" json:"scenarios,omitempty"`
	Attributes  []ResourceAttr `gorm:"foreignKey:NetworkID" json:"attributes,omitempty"`
}

func (Network) TableName() string {
	return "networks"
}

type NetworkOwner struct {
	NetworkID int64 `gorm:"column:network_id;primaryKey" json:"network_id"`
	Owner
}

func (NetworkOwner) TableName() string {
	return "network_owners"
}

func (n *Network) acl() acl {
	owners := make([]Owner, len(n.Owners))
	for i, o := range n.Owners {
		owners[i] = o.Owner
	}
	return acl{kind: "network", id: n.ID, createdBy: n.CreatedBy, owners: owners}
}

func (n *Network) CheckReadPermission(userID int64, isAdmin bool) error {
	return n.acl().read(userID, isAdmin)
}

func (n *Network) CheckWritePermission(userID int64, isAdmin bool) error {
	return n.acl().write(userID, isAdmin)
}

func (n *Network) CheckSharePermission(userID int64, isAdmin bool) error {
	return n.acl().share(userID, isAdmin)
}

func (n *Network) SetOwner(userID int64, view, edit, share bool) {
	owners := setOwner(n.acl().owners, userID, view, edit, share)
	n.Owners = n.Owners[:0]
	for _, o := range owners {
		n.Owners = append(n.Owners, NetworkOwner{NetworkID: n.ID, Owner: o})
	}
}

// Scenario is a named set of attribute values within a network.
type Scenario struct {
	ID                int64              `gorm:"column:id;primaryKey" json:"id"`
	NetworkID         int64              `gorm:"column:network_id;not null" json:"network_id"`
	Name              string             `gorm:"column:name;not null" json:"name"`
	Description       string             `gorm:"column:description" json:"description"`
	Status            string             `gorm:"column:status;type:varchar(1);not null" json:"status"`
	StartTime         string             `gorm:"column:start_time" json:"start_time,omitempty"`
	EndTime           string             `gorm:"column:end_time" json:"end_time,omitempty"`
	TimeStep          string             `gorm:"column:time_step" json:"time_step,omitempty"`
	CreatedBy         int64              `gorm:"column:created_by" json:"created_by"`
	CreatedAt         time.Time          `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Network           *Network           `gorm:"foreignKey:NetworkID" json:"-"`
	ResourceScenarios []ResourceScenario `gorm:"foreignKey:ScenarioID" json:"resourcescenarios,omitempty"`
}

func (Scenario) TableName() string {
	return "scenarios"
}
