package hydra

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/hydra-in-go/pkg/audit"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/fault"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/model"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/server/store"
)

func TestUserGroupOperationsRequireAdmin(t *testing.T) {
	f := newFixture(t)
	f.stores.Grant(1, nil)

	_, err := f.svc.AddUserGroup(context.Background(), 1, UserGroupInput{Name: "Team", Type: "organisation"})
	require.Error(t, err)
	assert.True(t, fault.IsPermission(err))
	assert.Equal(t, "User 1 does not have role admin", err.Error())

	_, err = f.svc.GetAllUserGroups(context.Background(), 1)
	assert.True(t, fault.IsPermission(err))
}

func TestAddUserGroup(t *testing.T) {
	f := newFixture(t)
	f.stores.Grant(1, nil, "admin")

	groups := f.stores.UserGroupsMock
	groups.On("GetGroupByName", "Team").Return(nil, store.ErrNotFound)
	f.stores.UsersMock.On("GetUserByName", "Team").Return(nil, store.ErrNotFound)
	groups.On("GetGroupTypeByName", "organisation").Return(&model.UserGroupType{ID: 4, Name: "organisation"}, nil)
	groups.On("GetGroup", int64(2)).Return(&model.UserGroup{ID: 2, Name: "Parent"}, nil)
	groups.On("CreateGroup", mock.MatchedBy(func(g *model.UserGroup) bool {
		return g.Name == "Team" && g.TypeID == 4 && *g.ParentID == 2 && g.CreatedBy == 1
	})).Run(func(args mock.Arguments) { args.Get(0).(*model.UserGroup).ID = 12 }).Return(nil)

	parent := int64(2)
	group, err := f.svc.AddUserGroup(context.Background(), 1, UserGroupInput{Name: "Team", Type: "organisation", ParentID: &parent})
	require.NoError(t, err)
	assert.Equal(t, int64(12), group.ID)
	require.NotNil(t, group.GroupType)
	assert.Equal(t, "organisation", group.GroupType.Name)

	event, ok := f.lastEvent().(audit.MembershipEvent)
	require.True(t, ok)
	assert.Equal(t, "create-group", event.Operation)
	assert.Equal(t, int64(12), event.GroupID)
}

func TestAddUserGroupValidation(t *testing.T) {
	t.Run("group name taken", func(t *testing.T) {
		f := newFixture(t)
		f.stores.Grant(1, nil, "admin")
		f.stores.UserGroupsMock.On("GetGroupByName", "Team").Return(&model.UserGroup{ID: 3, Name: "Team"}, nil)

		_, err := f.svc.AddUserGroup(context.Background(), 1, UserGroupInput{Name: "Team", TypeID: 4})
		require.Error(t, err)
		assert.True(t, fault.IsValidation(err))
		assert.Equal(t, "A user group with the name Team already exists!", err.Error())
	})

	t.Run("name used by a user", func(t *testing.T) {
		f := newFixture(t)
		f.stores.Grant(1, nil, "admin")
		f.stores.UserGroupsMock.On("GetGroupByName", "alice").Return(nil, store.ErrNotFound)
		f.stores.UsersMock.On("GetUserByName", "alice").Return(&model.User{ID: 5, Username: "alice"}, nil)

		_, err := f.svc.AddUserGroup(context.Background(), 1, UserGroupInput{Name: "alice", TypeID: 4})
		assert.True(t, fault.IsValidation(err))
	})

	t.Run("missing type", func(t *testing.T) {
		f := newFixture(t)
		f.stores.Grant(1, nil, "admin")
		f.stores.UserGroupsMock.On("GetGroupByName", "Team").Return(nil, store.ErrNotFound)
		f.stores.UsersMock.On("GetUserByName", "Team").Return(nil, store.ErrNotFound)

		_, err := f.svc.AddUserGroup(context.Background(), 1, UserGroupInput{Name: "Team"})
		assert.True(t, fault.IsValidation(err))
	})

	t.Run("unknown parent", func(t *testing.T) {
		f := newFixture(t)
		f.stores.Grant(1, nil, "admin")
		f.stores.UserGroupsMock.On("GetGroupByName", "Team").Return(nil, store.ErrNotFound)
		f.stores.UsersMock.On("GetUserByName", "Team").Return(nil, store.ErrNotFound)
		f.stores.UserGroupsMock.On("GetGroupType", int64(4)).Return(&model.UserGroupType{ID: 4}, nil)
		f.stores.UserGroupsMock.On("GetGroup", int64(99)).Return(nil, store.ErrNotFound)

		parent := int64(99)
		_, err := f.svc.AddUserGroup(context.Background(), 1, UserGroupInput{Name: "Team", TypeID: 4, ParentID: &parent})
		require.Error(t, err)
		assert.True(t, fault.IsNotFound(err))
		assert.Equal(t, "User group 99 not found", err.Error())
	})
}

func TestAddUserGroupTypeDuplicate(t *testing.T) {
	f := newFixture(t)
	f.stores.Grant(1, nil, "admin")
	f.stores.UserGroupsMock.On("GetGroupTypeByName", "organisation").Return(&model.UserGroupType{ID: 4}, nil)

	_, err := f.svc.AddUserGroupType(context.Background(), 1, "organisation")
	assert.True(t, fault.IsValidation(err))
}

func TestUserGroupMembership(t *testing.T) {
	f := newFixture(t)
	f.stores.Grant(1, nil, "admin")
	groups := f.stores.UserGroupsMock

	groups.On("GetGroup", int64(12)).Return(&model.UserGroup{ID: 12, Name: "Team"}, nil)
	f.stores.UsersMock.On("GetUser", int64(3)).Return(&model.User{ID: 3, Username: "carol"}, nil)
	groups.On("AddMember", &model.UserGroupMember{UserGroupID: 12, UserID: 3, CreatedBy: 1}).Return(nil).Twice()
	groups.On("ListMembers", int64(12)).Return([]model.UserGroupMember{{UserGroupID: 12, UserID: 3}}, nil)
	groups.On("RemoveMember", int64(12), int64(3)).Return(nil).Once()
	groups.On("RemoveMember", int64(12), int64(3)).Return(store.ErrNotFound).Once()

	ctx := context.Background()
	require.NoError(t, f.svc.AddUserGroupMember(ctx, 1, 12, 3))
	require.NoError(t, f.svc.AddUserGroupMember(ctx, 1, 12, 3))

	members, err := f.svc.GetUserGroupMembers(ctx, 1, 12)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, int64(3), members[0].UserID)

	require.NoError(t, f.svc.RemoveUserGroupMember(ctx, 1, 12, 3))

	err = f.svc.RemoveUserGroupMember(ctx, 1, 12, 3)
	require.Error(t, err)
	assert.True(t, fault.IsNotFound(err))
	assert.Equal(t, "User 3 is not a member of user group 12", err.Error())

	event := f.lastEvent().(audit.MembershipEvent)
	assert.Equal(t, "remove-member", event.Operation)
	assert.Equal(t, int64(3), event.MemberID)
	assert.False(t, event.Success)
}

func TestAddUserGroupMemberUnknownUser(t *testing.T) {
	f := newFixture(t)
	f.stores.Grant(1, nil, "admin")
	f.stores.UserGroupsMock.On("GetGroup", int64(12)).Return(&model.UserGroup{ID: 12}, nil)
	f.stores.UsersMock.On("GetUser", int64(3)).Return(nil, store.ErrNotFound)

	err := f.svc.AddUserGroupMember(context.Background(), 1, 12, 3)
	assert.True(t, fault.IsNotFound(err))
}

func TestSetUserGroupRole(t *testing.T) {
	t.Run("grants role", func(t *testing.T) {
		f := newFixture(t)
		f.stores.Grant(1, nil, "admin")
		f.stores.UserGroupsMock.On("GetGroup", int64(12)).Return(&model.UserGroup{ID: 12}, nil)
		f.stores.UsersMock.On("GetUser", int64(3)).Return(&model.User{ID: 3}, nil)
		f.stores.UsersMock.On("GetRoleByCode", "manager").Return(&model.Role{ID: 6, Code: "manager"}, nil)
		f.stores.UserGroupsMock.On("SetGroupRole", &model.GroupRoleUser{UserID: 3, RoleID: 6, UserGroupID: 12}).Return(nil)

		require.NoError(t, f.svc.SetUserGroupRole(context.Background(), 1, 12, 3, "manager"))
	})

	t.Run("unknown role", func(t *testing.T) {
		f := newFixture(t)
		f.stores.Grant(1, nil, "admin")
		f.stores.UserGroupsMock.On("GetGroup", int64(12)).Return(&model.UserGroup{ID: 12}, nil)
		f.stores.UsersMock.On("GetUser", int64(3)).Return(&model.User{ID: 3}, nil)
		f.stores.UsersMock.On("GetRoleByCode", "boss").Return(nil, store.ErrNotFound)

		err := f.svc.SetUserGroupRole(context.Background(), 1, 12, 3, "boss")
		require.Error(t, err)
		assert.True(t, fault.IsNotFound(err))
		assert.Equal(t, "Role boss not found", err.Error())
	})
}

func TestGetUserGroups(t *testing.T) {
	f := newFixture(t)
	f.stores.Grant(1, nil, "admin")
	f.stores.UserGroupsMock.On("GetGroup", int64(2)).Return(&model.UserGroup{ID: 2}, nil)
	f.stores.UserGroupsMock.On("ListChildGroups", int64(2)).Return([]model.UserGroup{{ID: 12}, {ID: 13}}, nil)

	groups, err := f.svc.GetUserGroups(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Len(t, groups, 2)
}

func TestDeleteUserGroupNotFound(t *testing.T) {
	f := newFixture(t)
	f.stores.Grant(1, nil, "admin")
	f.stores.UserGroupsMock.On("DeleteGroup", int64(12)).Return(store.ErrNotFound)

	err := f.svc.DeleteUserGroup(context.Background(), 1, 12)
	assert.True(t, fault.IsNotFound(err))
}
