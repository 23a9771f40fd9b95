package store

import "github.com/doodlesbykumbi/hydra-in-go/pkg/model"

// UsersStore abstracts user, role and permission lookups
type UsersStore interface {
	// GetUser returns a user. Returns ErrNotFound if the user doesn't exist.
	GetUser(id int64) (*model.User, error)

	// GetUserByName returns a user by username
	GetUserByName(username string) (*model.User, error)

	// UserPermCodes returns the permission codes granted to a user through its roles
	UserPermCodes(userID int64) ([]string, error)

	// UserRoleCodes returns the codes of a user's roles
	UserRoleCodes(userID int64) ([]string, error)

	// GetRoleByCode returns a role by code
	GetRoleByCode(code string) (*model.Role, error)

	// CreateUser inserts a user and assigns it the roles with the given codes
	CreateUser(user *model.User, roleCodes []string) error
}
