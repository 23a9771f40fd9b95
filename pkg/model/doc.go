// Package model defines the database models for the hydra platform.
//
// This package contains GORM models that map to the platform's PostgreSQL
// schema (see db/migrations).
//
// # Core Models
//
//   - User, Role, Perm: identities and the permission codes granted through roles
//   - Project, ProjectOwner: top level containers with per-user access flags
//   - Network, NetworkOwner, Scenario: networks owned by a project
//   - Attr, ResourceAttr, ResourceScenario: attributes and their values
//   - Dataset, DatasetCollection: stored values, including timeseries
//   - UserGroupType, UserGroup, UserGroupMember, GroupRoleUser: user groups
//
// Projects and networks carry a soft-delete status: StatusActive ("A") or
// StatusDeleted ("X").
package model
