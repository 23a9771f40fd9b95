package hydra

import (
	"context"
	"errors"
	"time"

	"github.com/doodlesbykumbi/hydra-in-go/pkg/fault"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/model"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/server/store"
)

func (s *Service) getUserGroup(groupID int64) (*model.UserGroup, error) {
	group, err := s.stores.UserGroups().GetGroup(groupID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fault.NotFound("User group %d not found", groupID)
	}
	return group, fault.Wrap(err, "loading user group")
}

// AddUserGroupType creates a usergroup type such as "organisation".
func (s *Service) AddUserGroupType(ctx context.Context, userID int64, name string) (groupType *model.UserGroupType, err error) {
	defer s.track("add_usergroup_type", time.Now(), &err)

	if err := s.requireAdmin(userID); err != nil {
		return nil, err
	}
	_, err = s.stores.UserGroups().GetGroupTypeByName(name)
	if err == nil {
		return nil, fault.Validation("A user group type with the name %s already exists", name)
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fault.Wrap(err, "looking up user group type")
	}

	groupType = &model.UserGroupType{Name: name, CreatedBy: userID}
	if err := s.stores.UserGroups().CreateGroupType(groupType); err != nil {
		return nil, fault.Wrap(err, "creating user group type")
	}
	return groupType, nil
}

// AddUserGroup creates a usergroup. Group names are unique and may not
// collide with a username.
func (s *Service) AddUserGroup(ctx context.Context, userID int64, in UserGroupInput) (group *model.UserGroup, err error) {
	defer s.track("add_usergroup", time.Now(), &err)
	defer func() {
		var id int64
		if group != nil {
			id = group.ID
		}
		s.auditMembership(ctx, userID, id, 0, "create-group", err)
	}()

	if err := s.requireAdmin(userID); err != nil {
		return nil, err
	}

	if _, err := s.stores.UserGroups().GetGroupByName(in.Name); err == nil {
		return nil, fault.Validation("A user group with the name %s already exists!", in.Name)
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fault.Wrap(err, "looking up user group")
	}
	if _, err := s.stores.Users().GetUserByName(in.Name); err == nil {
		return nil, fault.Validation("The name %s is already used by a user", in.Name)
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fault.Wrap(err, "looking up user")
	}

	groupType, err := s.resolveGroupType(in)
	if err != nil {
		return nil, err
	}
	if in.ParentID != nil {
		if _, err := s.getUserGroup(*in.ParentID); err != nil {
			return nil, err
		}
	}

	created := &model.UserGroup{
		Name:      in.Name,
		TypeID:    groupType.ID,
		ParentID:  in.ParentID,
		CreatedBy: userID,
	}
	if err := s.stores.UserGroups().CreateGroup(created); err != nil {
		return nil, fault.Wrap(err, "creating user group")
	}
	created.GroupType = groupType
	return created, nil
}

func (s *Service) resolveGroupType(in UserGroupInput) (*model.UserGroupType, error) {
	switch {
	case in.TypeID != 0:
		groupType, err := s.stores.UserGroups().GetGroupType(in.TypeID)
		if errors.Is(err, store.ErrNotFound) {
			return nil, fault.NotFound("User group type %d not found", in.TypeID)
		}
		return groupType, fault.Wrap(err, "loading user group type")
	case in.Type != "":
		groupType, err := s.stores.UserGroups().GetGroupTypeByName(in.Type)
		if errors.Is(err, store.ErrNotFound) {
			return nil, fault.NotFound("User group type %s not found", in.Type)
		}
		return groupType, fault.Wrap(err, "loading user group type")
	default:
		return nil, fault.Validation("User group %s needs a type", in.Name)
	}
}

func (s *Service) GetUserGroup(ctx context.Context, userID, groupID int64) (group *model.UserGroup, err error) {
	defer s.track("get_usergroup", time.Now(), &err)

	if err := s.requireAdmin(userID); err != nil {
		return nil, err
	}
	return s.getUserGroup(groupID)
}

func (s *Service) GetUserGroupByName(ctx context.Context, userID int64, name string) (group *model.UserGroup, err error) {
	defer s.track("get_usergroup_by_name", time.Now(), &err)

	if err := s.requireAdmin(userID); err != nil {
		return nil, err
	}
	group, err = s.stores.UserGroups().GetGroupByName(name)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fault.NotFound("User group %s not found", name)
	}
	return group, fault.Wrap(err, "loading user group")
}

func (s *Service) GetAllUserGroups(ctx context.Context, userID int64) (groups []model.UserGroup, err error) {
	defer s.track("get_all_usergroups", time.Now(), &err)

	if err := s.requireAdmin(userID); err != nil {
		return nil, err
	}
	groups, err = s.stores.UserGroups().ListGroups()
	return groups, fault.Wrap(err, "listing user groups")
}

// GetUserGroups returns the direct children of a usergroup.
func (s *Service) GetUserGroups(ctx context.Context, userID, parentID int64) (groups []model.UserGroup, err error) {
	defer s.track("get_usergroups", time.Now(), &err)

	if err := s.requireAdmin(userID); err != nil {
		return nil, err
	}
	if _, err := s.getUserGroup(parentID); err != nil {
		return nil, err
	}
	groups, err = s.stores.UserGroups().ListChildGroups(parentID)
	return groups, fault.Wrap(err, "listing user groups")
}

// DeleteUserGroup removes a usergroup with its memberships and child groups.
func (s *Service) DeleteUserGroup(ctx context.Context, userID, groupID int64) (err error) {
	defer s.track("delete_usergroup", time.Now(), &err)
	defer func() { s.auditMembership(ctx, userID, groupID, 0, "delete-group", err) }()

	if err := s.requireAdmin(userID); err != nil {
		return err
	}
	err = s.stores.UserGroups().DeleteGroup(groupID)
	if errors.Is(err, store.ErrNotFound) {
		return fault.NotFound("User group %d not found", groupID)
	}
	return fault.Wrap(err, "deleting user group")
}

// AddUserGroupMember adds a user to a usergroup. Adding an existing member
// is a no-op.
func (s *Service) AddUserGroupMember(ctx context.Context, userID, groupID, memberID int64) (err error) {
	defer s.track("add_usergroup_member", time.Now(), &err)
	defer func() { s.auditMembership(ctx, userID, groupID, memberID, "add-member", err) }()

	if err := s.requireAdmin(userID); err != nil {
		return err
	}
	if _, err := s.getUserGroup(groupID); err != nil {
		return err
	}
	if _, err := s.getUser(s.stores, memberID); err != nil {
		return err
	}

	member := &model.UserGroupMember{UserGroupID: groupID, UserID: memberID, CreatedBy: userID}
	return fault.Wrap(s.stores.UserGroups().AddMember(member), "adding user group member")
}

func (s *Service) RemoveUserGroupMember(ctx context.Context, userID, groupID, memberID int64) (err error) {
	defer s.track("remove_usergroup_member", time.Now(), &err)
	defer func() { s.auditMembership(ctx, userID, groupID, memberID, "remove-member", err) }()

	if err := s.requireAdmin(userID); err != nil {
		return err
	}
	err = s.stores.UserGroups().RemoveMember(groupID, memberID)
	if errors.Is(err, store.ErrNotFound) {
		return fault.NotFound("User %d is not a member of user group %d", memberID, groupID)
	}
	return fault.Wrap(err, "removing user group member")
}

func (s *Service) GetUserGroupMembers(ctx context.Context, userID, groupID int64) (members []model.UserGroupMember, err error) {
	defer s.track("get_usergroup_members", time.Now(), &err)

	if err := s.requireAdmin(userID); err != nil {
		return nil, err
	}
	if _, err := s.getUserGroup(groupID); err != nil {
		return nil, err
	}
	members, err = s.stores.UserGroups().ListMembers(groupID)
	return members, fault.Wrap(err, "listing user group members")
}

// SetUserGroupRole gives a member a role scoped to the usergroup.
func (s *Service) SetUserGroupRole(ctx context.Context, userID, groupID, memberID int64, roleCode string) (err error) {
	defer s.track("set_usergroup_role", time.Now(), &err)
	defer func() { s.auditMembership(ctx, userID, groupID, memberID, "set-role", err) }()

	if err := s.requireAdmin(userID); err != nil {
		return err
	}
	if _, err := s.getUserGroup(groupID); err != nil {
		return err
	}
	if _, err := s.getUser(s.stores, memberID); err != nil {
		return err
	}
	role, err := s.stores.Users().GetRoleByCode(roleCode)
	if errors.Is(err, store.ErrNotFound) {
		return fault.NotFound("Role %s not found", roleCode)
	}
	if err != nil {
		return fault.Wrap(err, "loading role")
	}

	groupRole := &model.GroupRoleUser{UserID: memberID, RoleID: role.ID, UserGroupID: groupID}
	return fault.Wrap(s.stores.UserGroups().SetGroupRole(groupRole), "setting user group role")
}
