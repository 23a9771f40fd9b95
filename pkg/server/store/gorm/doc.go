// Package gorm provides GORM-based implementations of the store interfaces
// defined in the parent store package.
//
// Stores are thin: they load and persist rows and translate
// gorm.ErrRecordNotFound into store.ErrNotFound. Permission checks and
// business rules live in the hydra package.
package gorm
