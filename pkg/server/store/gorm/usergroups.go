package gorm

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/doodlesbykumbi/hydra-in-go/pkg/model"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/server/store"
)

var _ store.UserGroupsStore = (*UserGroupsStore)(nil)

// UserGroupsStore implements store.UserGroupsStore using GORM
type UserGroupsStore struct {
	db *gorm.DB
}

// NewUserGroupsStore creates a new UserGroupsStore
func NewUserGroupsStore(db *gorm.DB) *UserGroupsStore {
	return &UserGroupsStore{db: db}
}

func (s *UserGroupsStore) GetGroupType(id int64) (*model.UserGroupType, error) {
	var groupType model.UserGroupType
	if err := s.db.First(&groupType, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &groupType, nil
}

func (s *UserGroupsStore) GetGroupTypeByName(name string) (*model.UserGroupType, error) {
	var groupType model.UserGroupType
	if err := s.db.Where("name = ?", name).First(&groupType).Error; err != nil {
		return nil, notFound(err)
	}
	return &groupType, nil
}

func (s *UserGroupsStore) CreateGroupType(groupType *model.UserGroupType) error {
	return s.db.Create(groupType).Error
}

func (s *UserGroupsStore) GetGroup(id int64) (*model.UserGroup, error) {
	var group model.UserGroup
	if err := s.db.Preload("GroupType").First(&group, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &group, nil
}

func (s *UserGroupsStore) GetGroupByName(name string) (*model.UserGroup, error) {
	var group model.UserGroup
	if err := s.db.Preload("GroupType").Where("name = ?", name).First(&group).Error; err != nil {
		return nil, notFound(err)
	}
	return &group, nil
}

func (s *UserGroupsStore) ListGroups() ([]model.UserGroup, error) {
	var groups []model.UserGroup
	err := s.db.Preload("GroupType").Order("id").Find(&groups).Error
	return groups, err
}

func (s *UserGroupsStore) ListChildGroups(parentID int64) ([]model.UserGroup, error) {
	var groups []model.UserGroup
	err := s.db.Preload("GroupType").Where("parent_id = ?", parentID).Order("id").Find(&groups).Error
	return groups, err
}

func (s *UserGroupsStore) CreateGroup(group *model.UserGroup) error {
	return s.db.Omit("GroupType", "Parent", "Groups", "Members").Create(group).Error
}

// DeleteGroup removes a group. Members, group roles and child groups
// cascade in the database.
func (s *UserGroupsStore) DeleteGroup(id int64) error {
	return affected(s.db.Delete(&model.UserGroup{}, id))
}

func (s *UserGroupsStore) AddMember(member *model.UserGroupMember) error {
	return s.db.Omit("Group", "User").Clauses(clause.OnConflict{DoNothing: true}).Create(member).Error
}

func (s *UserGroupsStore) RemoveMember(groupID, userID int64) error {
	return affected(s.db.
		Where("usergroup_id = ? AND user_id = ?", groupID, userID).
		Delete(&model.UserGroupMember{}))
}

func (s *UserGroupsStore) ListMembers(groupID int64) ([]model.UserGroupMember, error) {
	var members []model.UserGroupMember
	err := s.db.Preload("User").Where("usergroup_id = ?", groupID).Order("user_id").Find(&members).Error
	return members, err
}

func (s *UserGroupsStore) SetGroupRole(groupRole *model.GroupRoleUser) error {
	return s.db.Omit("User", "Role", "UserGroup").Clauses(clause.OnConflict{DoNothing: true}).Create(groupRole).Error
}
