package gorm

import (
	"gorm.io/gorm"

	"github.com/doodlesbykumbi/hydra-in-go/pkg/model"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/server/store"
)

var _ store.UsersStore = (*UsersStore)(nil)

// UsersStore implements store.UsersStore using GORM
type UsersStore struct {
	db *gorm.DB
}

// NewUsersStore creates a new UsersStore
func NewUsersStore(db *gorm.DB) *UsersStore {
	return &UsersStore{db: db}
}

// GetUser returns a user.
func (s *UsersStore) GetUser(id int64) (*model.User, error) {
	var user model.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// GetUserByName returns a user by username
func (s *UsersStore) GetUserByName(username string) (*model.User, error) {
	var user model.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// UserPermCodes returns the permission codes granted to a user through its roles
func (s *UsersStore) UserPermCodes(userID int64) ([]string, error) {
	var codes []string
	err := s.db.Table("perms").
		Joins("JOIN role_perms ON role_perms.perm_id = perms.id").
		Joins("JOIN role_users ON role_users.role_id = role_perms.role_id").
		Where("role_users.user_id = ?", userID).
		Pluck("DISTINCT perms.code", &codes).Error
	return codes, err
}

// UserRoleCodes returns the codes of a user's roles
func (s *UsersStore) UserRoleCodes(userID int64) ([]string, error) {
	var codes []string
	err := s.db.Table("roles").
		Joins("JOIN role_users ON role_users.role_id = roles.id").
		Where("role_users.user_id = ?", userID).
		Pluck("roles.code", &codes).Error
	return codes, err
}

// GetRoleByCode returns a role by code
func (s *UsersStore) GetRoleByCode(code string) (*model.Role, error) {
	var role model.Role
	if err := s.db.Where("code = ?", code).First(&role).Error; err != nil {
		return nil, notFound(err)
	}
	return &role, nil
}

// CreateUser inserts a user and assigns it the roles with the given codes
func (s *UsersStore) CreateUser(user *model.User, roleCodes []string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Roles").Create(user).Error; err != nil {
			return err
		}
		for _, code := range roleCodes {
			var role model.Role
			if err := tx.Where("code = ?", code).First(&role).Error; err != nil {
				return notFound(err)
			}
			if err := tx.Create(&model.RoleUser{UserID: user.ID, RoleID: role.ID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
