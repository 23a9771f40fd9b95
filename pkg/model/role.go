package model

import "time"

// User is an account that owns projects and networks.
type User struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	Username    string    `gorm:"column:username;not null"`
	DisplayName string    `gorm:"column:display_name"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	Roles       []Role    `gorm:"many2many:role_users;joinForeignKey:UserID;joinReferences:RoleID"`
}

func (User) TableName() string {
	return "users"
}

// Name returns the display name, falling back to the username.
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}

// Role groups permission codes. Users acquire perms through their roles.
type Role struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Code      string    `gorm:"column:code;not null"`
	Name      string    `gorm:"column:name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	Perms     []Perm    `gorm:"many2many:role_perms;joinForeignKey:RoleID;joinReferences:PermID"`
}

func (Role) TableName() string {
	return "roles"
}

// Perm is a named permission code such as "add_project".
type Perm struct {
	ID   int64  `gorm:"column:id;primaryKey"`
	Code string `gorm:"column:code;not null"`
	Name string `gorm:"column:name"`
}

func (Perm) TableName() string {
	return "perms"
}

type RoleUser struct {
	UserID int64 `gorm:"column:user_id;primaryKey"`
	RoleID int64 `gorm:"column:role_id;primaryKey"`
}

func (RoleUser) TableName() string {
	return "role_users"
}

type RolePerm struct {
	RoleID int64 `gorm:"column:role_id;primaryKey"`
	PermID int64 `gorm:"column:perm_id;primaryKey"`
}

func (RolePerm) TableName() string {
	return "role_perms"
}
