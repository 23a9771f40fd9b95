package model

import (
	"time"

	"github.com/doodlesbykumbi/hydra-in-go/pkg/fault"
)

// Soft-delete status of projects and networks.
const (
	StatusActive  = "A"
	StatusDeleted = "X"
)

// Owner is an access control entry scoping a user's rights on one object.
type Owner struct {
	UserID    int64     `gorm:"column:user_id;primaryKey" json:"user_id"`
	View      bool      `gorm:"column:view;not null" json:"view"`
	Edit      bool      `gorm:"column:edit;not null" json:"edit"`
	Share     bool      `gorm:"column:share;not null" json:"share"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// acl is the shared permission logic of projects and networks.
type acl struct {
	kind      string
	id        int64
	createdBy int64
	owners    []Owner
}

func (a acl) owner(userID int64) (Owner, bool) {
	for _, o := range a.owners {
		if o.UserID == userID {
			return o, true
		}
	}
	return Owner{}, false
}

func (a acl) check(userID int64, isAdmin bool, access string, allowed func(Owner) bool) error {
	if isAdmin || a.createdBy == userID {
		return nil
	}
	if o, ok := a.owner(userID); ok && allowed(o) {
		return nil
	}
	return fault.Permission("Permission denied. User %d does not have %s access on %s %d", userID, access, a.kind, a.id)
}

func (a acl) read(userID int64, isAdmin bool) error {
	return a.check(userID, isAdmin, "read", func(o Owner) bool { return o.View })
}

func (a acl) write(userID int64, isAdmin bool) error {
	return a.check(userID, isAdmin, "write", func(o Owner) bool { return o.View && o.Edit })
}

func (a acl) share(userID int64, isAdmin bool) error {
	return a.check(userID, isAdmin, "share", func(o Owner) bool { return o.Share })
}

// setOwner grants or replaces userID's entry in owners.
func setOwner(owners []Owner, userID int64, view, edit, share bool) []Owner {
	for i := range owners {
		if owners[i].UserID == userID {
			owners[i].View, owners[i].Edit, owners[i].Share = view, edit, share
			return owners
		}
	}
	return append(owners, Owner{UserID: userID, View: view, Edit: edit, Share: share})
}
