package gorm

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/doodlesbykumbi/hydra-in-go/pkg/model"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/server/store"
)

var _ store.ProjectsStore = (*ProjectsStore)(nil)

// ProjectsStore implements store.ProjectsStore using GORM
type ProjectsStore struct {
	db *gorm.DB
}

// NewProjectsStore creates a new ProjectsStore
func NewProjectsStore(db *gorm.DB) *ProjectsStore {
	return &ProjectsStore{db: db}
}

func (s *ProjectsStore) ownedBy(userID int64) *gorm.DB {
	return s.db.Model(&model.ProjectOwner{}).Select("project_id").Where("user_id = ?", userID)
}

// GetProject returns a project with its owners and attributes.
func (s *ProjectsStore) GetProject(id int64) (*model.Project, error) {
	var project model.Project
	err := s.db.Preload("Owners").Preload("Attributes.Attr").First(&project, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &project, nil
}

// FindProjectsByName returns the projects with the given name owned by userID
func (s *ProjectsStore) FindProjectsByName(name string, userID int64) ([]model.Project, error) {
	var projects []model.Project
	err := s.db.Preload("Owners").
		Where("name = ?", name).
		Where("id IN (?)", s.ownedBy(userID)).
		Order("name").
		Find(&projects).Error
	return projects, err
}

// FindProjectsByNetwork returns the projects containing networkID owned by userID
func (s *ProjectsStore) FindProjectsByNetwork(networkID, userID int64) ([]model.Project, error) {
	var projects []model.Project
	network := s.db.Model(&model.Network{}).Select("project_id").Where("id = ?", networkID)
	err := s.db.Preload("Owners").
		Where("id IN (?)", network).
		Where("id IN (?)", s.ownedBy(userID)).
		Order("name").
		Find(&projects).Error
	return projects, err
}

// ListProjects returns projects ordered by id, without networks
func (s *ProjectsStore) ListProjects(filter store.ProjectFilter) ([]model.Project, error) {
	query := s.db.Preload("Owners").Preload("Attributes.Attr")
	if filter.IncludeShared {
		query = query.Where("status = ?", model.StatusActive).
			Where("id IN (?) OR created_by = ?", s.ownedBy(filter.UserID), filter.UserID)
	} else {
		query = query.Where("created_by = ?", filter.UserID)
	}
	if len(filter.IDs) > 0 {
		query = query.Where("id IN ?", filter.IDs)
	}

	var projects []model.Project
	err := query.Order("id").Find(&projects).Error
	return projects, err
}

// ProjectNameExists checks if createdBy already created a project with the name
func (s *ProjectsStore) ProjectNameExists(name string, createdBy int64) (bool, error) {
	var count int64
	err := s.db.Model(&model.Project{}).
		Where("name = ? AND created_by = ?", name, createdBy).
		Count(&count).Error
	return count > 0, err
}

// GetNetworkProject returns the project a network belongs to
func (s *ProjectsStore) GetNetworkProject(networkID int64) (*model.Project, error) {
	var project model.Project
	err := s.db.Joins("JOIN networks ON networks.project_id = projects.id").
		Where("networks.id = ?", networkID).
		First(&project).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &project, nil
}

// CreateProject inserts a project together with its owners
func (s *ProjectsStore) CreateProject(project *model.Project) error {
	return s.db.Omit("Networks", "Attributes").Create(project).Error
}

// UpdateProject saves the name and description of a project
func (s *ProjectsStore) UpdateProject(project *model.Project) error {
	return affected(s.db.Model(&model.Project{}).Where("id = ?", project.ID).Updates(map[string]interface{}{
		"name":        project.Name,
		"description": project.Description,
	}))
}

// SetProjectOwner inserts or updates an owner entry
func (s *ProjectsStore) SetProjectOwner(owner *model.ProjectOwner) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "project_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"view", "edit", "share"}),
	}).Create(owner).Error
}

// SetProjectStatus sets the soft-delete status of a project
func (s *ProjectsStore) SetProjectStatus(id int64, status string) error {
	return affected(s.db.Model(&model.Project{}).Where("id = ?", id).Update("status", status))
}

// DeleteProject removes a project. Networks, owners and attribute data
// cascade in the database.
func (s *ProjectsStore) DeleteProject(id int64) error {
	return affected(s.db.Delete(&model.Project{}, id))
}
