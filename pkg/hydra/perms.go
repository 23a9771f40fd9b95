package hydra

import (
	"github.com/doodlesbykumbi/hydra-in-go/pkg/fault"
)

// Permission codes checked by the library operations.
const (
	PermAddProject    = "add_project"
	PermGetProject    = "get_project"
	PermEditProject   = "edit_project"
	PermDeleteProject = "delete_project"
	PermShareProject  = "share_project"
	PermAddNetwork    = "add_network"
	PermGetNetwork    = "get_network"
	PermViewData      = "view_data"
	PermEditData      = "edit_data"
)

// authorize requires userID to hold every perm code and reports whether
// the user has the admin role.
func (s *Service) authorize(userID int64, codes ...string) (bool, error) {
	if err := s.requirePerms(userID, codes...); err != nil {
		return false, err
	}
	return s.hasRole(userID, s.config().AdminRole)
}

func (s *Service) requirePerms(userID int64, codes ...string) error {
	perms, err := s.stores.Users().UserPermCodes(userID)
	if err != nil {
		return fault.Wrap(err, "loading user permissions")
	}
	granted := make(map[string]bool, len(perms))
	for _, p := range perms {
		granted[p] = true
	}
	for _, code := range codes {
		if !granted[code] {
			return fault.Permission("User %d does not have permission %s", userID, code)
		}
	}
	return nil
}

func (s *Service) hasRole(userID int64, role string) (bool, error) {
	roles, err := s.stores.Users().UserRoleCodes(userID)
	if err != nil {
		return false, fault.Wrap(err, "loading user roles")
	}
	for _, r := range roles {
		if r == role {
			return true, nil
		}
	}
	return false, nil
}

// requireAdmin gates the usergroup administration operations.
func (s *Service) requireAdmin(userID int64) error {
	role := s.config().AdminRole
	ok, err := s.hasRole(userID, role)
	if err != nil {
		return err
	}
	if !ok {
		return fault.Permission("User %d does not have role %s", userID, role)
	}
	return nil
}
