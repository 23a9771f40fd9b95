package store

import "github.com/doodlesbykumbi/hydra-in-go/pkg/model"

// ProjectFilter selects the projects returned by ListProjects
type ProjectFilter struct {
	// UserID is the user whose projects are listed
	UserID int64
	// IncludeShared also returns active projects the user owns but did not create
	IncludeShared bool
	// IDs restricts the result when non-empty
	IDs []int64
}

// ProjectsStore abstracts project storage operations
type ProjectsStore interface {
	// GetProject returns a project with its owners and attributes.
	// Returns ErrNotFound if the project doesn't exist.
	GetProject(id int64) (*model.Project, error)

	// FindProjectsByName returns the projects with the given name owned by userID
	FindProjectsByName(name string, userID int64) ([]model.Project, error)

	// FindProjectsByNetwork returns the projects containing networkID owned by userID
	FindProjectsByNetwork(networkID, userID int64) ([]model.Project, error)

	// ListProjects returns projects ordered by id, without networks
	ListProjects(filter ProjectFilter) ([]model.Project, error)

	// ProjectNameExists checks if createdBy already created a project with the name
	ProjectNameExists(name string, createdBy int64) (bool, error)

	// GetNetworkProject returns the project a network belongs to
	GetNetworkProject(networkID int64) (*model.Project, error)

	// CreateProject inserts a project together with its owners
	CreateProject(project *model.Project) error

	// UpdateProject saves the name and description of a project
	UpdateProject(project *model.Project) error

	// SetProjectOwner inserts or updates an owner entry
	SetProjectOwner(owner *model.ProjectOwner) error

	// SetProjectStatus sets the soft-delete status of a project
	SetProjectStatus(id int64, status string) error

	// DeleteProject removes a project and everything it owns
	DeleteProject(id int64) error
}
