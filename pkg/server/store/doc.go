// Package store provides storage abstractions for the hydra server.
//
// This package defines interfaces for database operations, allowing the
// library operations and endpoints to be decoupled from the specific
// database implementation. The gorm subpackage holds the implementation
// used in production; tests substitute testify mocks.
//
// # Available Stores
//
//   - ProjectsStore: projects, their owners and soft-delete status
//   - NetworksStore: networks, owners and scenarios
//   - AttributesStore: resource attributes and their data
//   - DatasetsStore: datasets and dataset collections
//   - UsersStore: users, roles and permission codes
//   - UserGroupsStore: usergroups, group types and membership
//   - HealthStore: database connectivity
//
// # Usage
//
//	stores := gorm.NewStores(db)
//	project, err := stores.Projects().GetProject(id)
//	if errors.Is(err, store.ErrNotFound) {
//	    // Handle not found
//	}
//
// Writes spanning several stores run through Stores.Transaction.
package store
