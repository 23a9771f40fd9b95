package model

import "time"

// UserGroupType classifies groups, e.g. "organisation" or "team".
type UserGroupType struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	CreatedBy int64     `gorm:"column:created_by" json:"created_by"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (UserGroupType) TableName() string {
	return "usergroup_types"
}

// UserGroup is a typed, hierarchical group of users.
type UserGroup struct {
	ID        int64             `gorm:"column:id;primaryKey" json:"id"`
	Name      string            `gorm:"column:name;not null" json:"name"`
	TypeID    int64             `gorm:"column:type_id;not null" json:"type_id"`
	ParentID  *int64            `gorm:"column:parent_id" json:"parent_id,omitempty"`
	CreatedBy int64             `gorm:"column:created_by" json:"created_by"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	GroupType *UserGroupType    `gorm:"foreignKey:TypeID" json:"grouptype,omitempty"`
	Parent    *UserGroup        `gorm:"foreignKey:ParentID" json:"-"`
	Groups    []UserGroup       `gorm:"foreignKey:ParentID" json:"groups,omitempty"`
	Members   []UserGroupMember `gorm:"foreignKey:UserGroupID" json:"members,omitempty"`
}

func (UserGroup) TableName() string {
	return "usergroups"
}

type UserGroupMember struct {
	UserGroupID int64      `gorm:"column:usergroup_id;primaryKey" json:"usergroup_id"`
	UserID      int64      `gorm:"column:user_id;primaryKey" json:"user_id"`
	CreatedBy   int64      `gorm:"column:created_by" json:"created_by"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Group       *UserGroup `gorm:"foreignKey:UserGroupID" json:"-"`
	User        *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (UserGroupMember) TableName() string {
	return "usergroup_members"
}

// GroupRoleUser scopes a user's role to a group.
type GroupRoleUser struct {
	UserID      int64      `gorm:"column:user_id;primaryKey" json:"user_id"`
	RoleID      int64      `gorm:"column:role_id;primaryKey" json:"role_id"`
	UserGroupID int64      `gorm:"column:usergroup_id;primaryKey" json:"usergroup_id"`
	User        *User      `gorm:"foreignKey:UserID" json:"-"`
	Role        *Role      `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	UserGroup   *UserGroup `gorm:"foreignKey:UserGroupID" json:"-"`
}

func (GroupRoleUser) TableName() string {
	return "group_role_users"
}
