package store

import "context"

// Stores bundles the stores a request works with. Transaction runs fn
// against stores bound to a single database transaction.
type Stores interface {
	Projects() ProjectsStore
	Networks() NetworksStore
	Attributes() AttributesStore
	Datasets() DatasetsStore
	Users() UsersStore
	UserGroups() UserGroupsStore
	Health() HealthStore

	Transaction(ctx context.Context, fn func(Stores) error) error
}
