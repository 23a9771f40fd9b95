// Package storetest provides testify mocks of the store interfaces.
package storetest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/doodlesbykumbi/hydra-in-go/pkg/model"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/server/store"
)

// Stores implements store.Stores with one mock per store. Transaction runs
// fn against the same mocks.
type Stores struct {
	ProjectsMock   *ProjectsStore
	NetworksMock   *NetworksStore
	AttributesMock *AttributesStore
	DatasetsMock   *DatasetsStore
	UsersMock      *UsersStore
	UserGroupsMock *UserGroupsStore
	HealthMock     *HealthStore
}

var _ store.Stores = (*Stores)(nil)

func NewStores() *Stores {
	return &Stores{
		ProjectsMock:   &ProjectsStore{},
		NetworksMock:   &NetworksStore{},
		AttributesMock: &AttributesStore{},
		DatasetsMock:   &DatasetsStore{},
		UsersMock:      &UsersStore{},
		UserGroupsMock: &UserGroupsStore{},
		HealthMock:     &HealthStore{},
	}
}

func (m *Stores) Projects() store.ProjectsStore { return m.ProjectsMock }
func (m *Stores) Networks() store.NetworksStore { return m.NetworksMock }
func (m *Stores) Attributes() store.AttributesStore { return m.AttributesMock }
func (m *Stores) Datasets() store.DatasetsStore { return m.DatasetsMock }
func (m *Stores) Users() store.UsersStore { return m.UsersMock }
func (m *Stores) UserGroups() store.UserGroupsStore { return m.UserGroupsMock }
func (m *Stores) Health() store.HealthStore { return m.HealthMock }

func (m *Stores) Transaction(ctx context.Context, fn func(store.Stores) error) error {
	return fn(m)
}

// AssertExpectations asserts the expectations of every mock.
func (m *Stores) AssertExpectations(t mock.TestingT) {
	m.ProjectsMock.AssertExpectations(t)
	m.NetworksMock.AssertExpectations(t)
	m.AttributesMock.AssertExpectations(t)
	m.DatasetsMock.AssertExpectations(t)
	m.UsersMock.AssertExpectations(t)
	m.UserGroupsMock.AssertExpectations(t)
	m.HealthMock.AssertExpectations(t)
}

// Grant makes the users store report the given permission and role codes
// for userID.
func (m *Stores) Grant(userID int64, perms []string, roles ...string) {
	m.UsersMock.On("UserPermCodes", userID).Return(perms, nil).Maybe()
	if roles == nil {
		roles = []string{}
	}
	m.UsersMock.On("UserRoleCodes", userID).Return(roles, nil).Maybe()
}

// ProjectsStore implements store.ProjectsStore for testing using testify/mock
type ProjectsStore struct {
	mock.Mock
}

func (m *ProjectsStore) GetProject(id int64) (*model.Project, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *ProjectsStore) FindProjectsByName(name string, userID int64) ([]model.Project, error) {
	args := m.Called(name, userID)
	return projects(args.Get(0)), args.Error(1)
}

func (m *ProjectsStore) FindProjectsByNetwork(networkID, userID int64) ([]model.Project, error) {
	args := m.Called(networkID, userID)
	return projects(args.Get(0)), args.Error(1)
}

func (m *ProjectsStore) ListProjects(filter store.ProjectFilter) ([]model.Project, error) {
	args := m.Called(filter)
	return projects(args.Get(0)), args.Error(1)
}

func (m *ProjectsStore) ProjectNameExists(name string, createdBy int64) (bool, error) {
	args := m.Called(name, createdBy)
	return args.Bool(0), args.Error(1)
}

func (m *ProjectsStore) GetNetworkProject(networkID int64) (*model.Project, error) {
	args := m.Called(networkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *ProjectsStore) CreateProject(project *model.Project) error {
	return m.Called(project).Error(0)
}

func (m *ProjectsStore) UpdateProject(project *model.Project) error {
	return m.Called(project).Error(0)
}

func (m *ProjectsStore) SetProjectOwner(owner *model.ProjectOwner) error {
	return m.Called(owner).Error(0)
}

func (m *ProjectsStore) SetProjectStatus(id int64, status string) error {
	return m.Called(id, status).Error(0)
}

func (m *ProjectsStore) DeleteProject(id int64) error {
	return m.Called(id).Error(0)
}

func projects(v interface{}) []model.Project {
	if v == nil {
		return nil
	}
	return v.([]model.Project)
}

// NetworksStore implements store.NetworksStore for testing using testify/mock
type NetworksStore struct {
	mock.Mock
}

func (m *NetworksStore) GetNetwork(id int64, withData bool) (*model.Network, error) {
	args := m.Called(id, withData)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Network), args.Error(1)
}

func (m *NetworksStore) ListProjectNetworks(projectID int64, status string) ([]model.Network, error) {
	args := m.Called(projectID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Network), args.Error(1)
}

func (m *NetworksStore) NetworkNameExists(projectID int64, name string) (bool, error) {
	args := m.Called(projectID, name)
	return args.Bool(0), args.Error(1)
}

func (m *NetworksStore) CreateNetwork(network *model.Network) error {
	return m.Called(network).Error(0)
}

func (m *NetworksStore) CreateScenario(scenario *model.Scenario) error {
	return m.Called(scenario).Error(0)
}

func (m *NetworksStore) SetNetworkOwner(owner *model.NetworkOwner) error {
	return m.Called(owner).Error(0)
}

// AttributesStore implements store.AttributesStore for testing using testify/mock
type AttributesStore struct {
	mock.Mock
}

func (m *AttributesStore) GetAttr(id int64) (*model.Attr, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Attr), args.Error(1)
}

func (m *AttributesStore) AddResourceAttr(ra *model.ResourceAttr) error {
	return m.Called(ra).Error(0)
}

func (m *AttributesStore) SetResourceScenario(rs *model.ResourceScenario) error {
	return m.Called(rs).Error(0)
}

func (m *AttributesStore) ProjectAttributeData(projectID int64) ([]model.ResourceScenario, error) {
	args := m.Called(projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ResourceScenario), args.Error(1)
}

// DatasetsStore implements store.DatasetsStore for testing using testify/mock
type DatasetsStore struct {
	mock.Mock
}

func (m *DatasetsStore) GetDataset(id int64) (*model.Dataset, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Dataset), args.Error(1)
}

func (m *DatasetsStore) GetDatasets(ids []int64) ([]model.Dataset, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Dataset), args.Error(1)
}

func (m *DatasetsStore) FindDatasetByHash(hash string) (*model.Dataset, error) {
	args := m.Called(hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Dataset), args.Error(1)
}

func (m *DatasetsStore) CreateDataset(dataset *model.Dataset) error {
	return m.Called(dataset).Error(0)
}

func (m *DatasetsStore) GetCollection(id int64) (*model.DatasetCollection, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DatasetCollection), args.Error(1)
}

func (m *DatasetsStore) FindCollectionsLikeName(text string) ([]model.DatasetCollection, error) {
	args := m.Called(text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DatasetCollection), args.Error(1)
}

func (m *DatasetsStore) CreateCollection(collection *model.DatasetCollection) error {
	return m.Called(collection).Error(0)
}

func (m *DatasetsStore) AddCollectionItem(collectionID, datasetID int64) error {
	return m.Called(collectionID, datasetID).Error(0)
}

func (m *DatasetsStore) RemoveCollectionItem(collectionID, datasetID int64) error {
	return m.Called(collectionID, datasetID).Error(0)
}

func (m *DatasetsStore) DeleteCollection(id int64) error {
	return m.Called(id).Error(0)
}

// UsersStore implements store.UsersStore for testing using testify/mock
type UsersStore struct {
	mock.Mock
}

func (m *UsersStore) GetUser(id int64) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *UsersStore) GetUserByName(username string) (*model.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *UsersStore) UserPermCodes(userID int64) ([]string, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *UsersStore) UserRoleCodes(userID int64) ([]string, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *UsersStore) GetRoleByCode(code string) (*model.Role, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Role), args.Error(1)
}

func (m *UsersStore) CreateUser(user *model.User, roleCodes []string) error {
	return m.Called(user, roleCodes).Error(0)
}

// UserGroupsStore implements store.UserGroupsStore for testing using testify/mock
type UserGroupsStore struct {
	mock.Mock
}

func (m *UserGroupsStore) GetGroupType(id int64) (*model.UserGroupType, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserGroupType), args.Error(1)
}

func (m *UserGroupsStore) GetGroupTypeByName(name string) (*model.UserGroupType, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserGroupType), args.Error(1)
}

func (m *UserGroupsStore) CreateGroupType(groupType *model.UserGroupType) error {
	return m.Called(groupType).Error(0)
}

func (m *UserGroupsStore) GetGroup(id int64) (*model.UserGroup, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserGroup), args.Error(1)
}

func (m *UserGroupsStore) GetGroupByName(name string) (*model.UserGroup, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserGroup), args.Error(1)
}

func (m *UserGroupsStore) ListGroups() ([]model.UserGroup, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UserGroup), args.Error(1)
}

func (m *UserGroupsStore) ListChildGroups(parentID int64) ([]model.UserGroup, error) {
	args := m.Called(parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UserGroup), args.Error(1)
}

func (m *UserGroupsStore) CreateGroup(group *model.UserGroup) error {
	return m.Called(group).Error(0)
}

func (m *UserGroupsStore) DeleteGroup(id int64) error {
	return m.Called(id).Error(0)
}

func (m *UserGroupsStore) AddMember(member *model.UserGroupMember) error {
	return m.Called(member).Error(0)
}

func (m *UserGroupsStore) RemoveMember(groupID, userID int64) error {
	return m.Called(groupID, userID).Error(0)
}

func (m *UserGroupsStore) ListMembers(groupID int64) ([]model.UserGroupMember, error) {
	args := m.Called(groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UserGroupMember), args.Error(1)
}

func (m *UserGroupsStore) SetGroupRole(groupRole *model.GroupRoleUser) error {
	return m.Called(groupRole).Error(0)
}

// HealthStore implements store.HealthStore for testing using testify/mock
type HealthStore struct {
	mock.Mock
}

func (m *HealthStore) CheckConnectivity() error {
	return m.Called().Error(0)
}
