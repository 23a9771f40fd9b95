package model

import "time"

// Project is the top level container of networks. Attribute data hangs
// directly off the project without a scenario.
type Project struct {
	ID          int64          `gorm:"column:id;primaryKey" json:"id"`
	Name        string         `gorm:"column:name;not null" json:"name"`
	Description string         `gorm:"column:description" json:"description"`
	Status      string         `gorm:"column:status;type:varchar(1);not null" json:"status"`
	CreatedBy   int64          `gorm:"column:created_by" json:"created_by"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	Owners      []ProjectOwner `gorm:"foreignKey:ProjectID" json:"owners,omitempty"`
	Networks    []Network      `gorm:"foreignKey:ProjectID" json:"networks,omitempty"`
	Attributes  []ResourceAttr `gorm:"foreignKey:ProjectID" json:"attributes,omitempty"`
}

func (Project) TableName() string {
	return "projects"
}

type ProjectOwner struct {
	ProjectID int64 `gorm:"column:project_id;primaryKey" json:"project_id"`
	Owner
}

func (ProjectOwner) TableName() string {
	return "project_owners"
}

func (p *Project) acl() acl {
	owners := make([]Owner, len(p.Owners))
	for i, o := range p.Owners {
		owners[i] = o.Owner
	}
	return acl{kind: "project", id: p.ID, createdBy: p.CreatedBy, owners: owners}
}

func (p *Project) CheckReadPermission(userID int64, isAdmin bool) error {
	return p.acl().read(userID, isAdmin)
}

func (p *Project) CheckWritePermission(userID int64, isAdmin bool) error {
	return p.acl().write(userID, isAdmin)
}

func (p *Project) CheckSharePermission(userID int64, isAdmin bool) error {
	return p.acl().share(userID, isAdmin)
}

// SetOwner grants userID the given rights, adding an owner entry if needed.
func (p *Project) SetOwner(userID int64, view, edit, share bool) {
	owners := setOwner(p.acl().owners, userID, view, edit, share)
	p.Owners = p.Owners[:0]
	for _, o := range owners {
		p.Owners = append(p.Owners, ProjectOwner{ProjectID: p.ID, Owner: o})
	}
}

// IsOwner reports whether userID has an owner entry.
func (p *Project) IsOwner(userID int64) bool {
	_, ok := p.acl().owner(userID)
	return ok
}
