package store

import "github.com/doodlesbykumbi/hydra-in-go/pkg/model"

// NetworksStore abstracts network storage operations
type NetworksStore interface {
	// GetNetwork returns a network with its owners and scenarios. withData
	// also loads attributes and scenario data with their datasets.
	// Returns ErrNotFound if the network doesn't exist.
	GetNetwork(id int64, withData bool) (*model.Network, error)

	// ListProjectNetworks returns the networks of a project with their owners.
	// An empty status returns networks of any status.
	ListProjectNetworks(projectID int64, status string) ([]model.Network, error)

	// NetworkNameExists checks if the project already has a network with the name
	NetworkNameExists(projectID int64, name string) (bool, error)

	// CreateNetwork inserts a network together with its owners
	CreateNetwork(network *model.Network) error

	// CreateScenario inserts a scenario
	CreateScenario(scenario *model.Scenario) error

	// SetNetworkOwner inserts or updates an owner entry
	SetNetworkOwner(owner *model.NetworkOwner) error
}
