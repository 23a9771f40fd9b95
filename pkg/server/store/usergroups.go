package store

import "github.com/doodlesbykumbi/hydra-in-go/pkg/model"

// UserGroupsStore abstracts usergroup storage operations
type UserGroupsStore interface {
	// GetGroupType returns a group type. Returns ErrNotFound if it doesn't exist.
	GetGroupType(id int64) (*model.UserGroupType, error)

	// GetGroupTypeByName returns a group type by name
	GetGroupTypeByName(name string) (*model.UserGroupType, error)

	// CreateGroupType inserts a group type
	CreateGroupType(groupType *model.UserGroupType) error

	// GetGroup returns a group with its type
	GetGroup(id int64) (*model.UserGroup, error)

	// GetGroupByName returns a group by name
	GetGroupByName(name string) (*model.UserGroup, error)

	// ListGroups returns all groups ordered by id
	ListGroups() ([]model.UserGroup, error)

	// ListChildGroups returns the direct children of a group ordered by id
	ListChildGroups(parentID int64) ([]model.UserGroup, error)

	// CreateGroup inserts a group
	CreateGroup(group *model.UserGroup) error

	// DeleteGroup removes a group with its members, roles and child groups
	DeleteGroup(id int64) error

	// AddMember adds a user to a group, ignoring existing memberships
	AddMember(member *model.UserGroupMember) error

	// RemoveMember removes a user from a group.
	// Returns ErrNotFound if the user is not a member.
	RemoveMember(groupID, userID int64) error

	// ListMembers returns the members of a group with their users
	ListMembers(groupID int64) ([]model.UserGroupMember, error)

	// SetGroupRole scopes a role to a user within a group
	SetGroupRole(groupRole *model.GroupRoleUser) error
}
