package hydra

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/doodlesbykumbi/hydra-in-go/pkg/fault"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/metrics"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/model"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/server/store"
)

func getProject(stores store.Stores, projectID int64) (*model.Project, error) {
	project, err := stores.Projects().GetProject(projectID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fault.NotFound("Project %d not found", projectID)
	}
	if err != nil {
		return nil, fault.Wrap(err, "loading project")
	}
	return project, nil
}

// readable drops the projects userID cannot read.
func (s *Service) readable(projects []model.Project, userID int64, isAdmin bool) []model.Project {
	var out []model.Project
	for i := range projects {
		if err := projects[i].CheckReadPermission(userID, isAdmin); err != nil {
			s.log.WithFields(logrus.Fields{"user_id": userID, "project_id": projects[i].ID}).
				Debug("skipping project the user cannot read")
			metrics.RecordSkipped("project")
			continue
		}
		out = append(out, projects[i])
	}
	return out
}

// AddProject creates a project owned by userID.
func (s *Service) AddProject(ctx context.Context, userID int64, in ProjectInput) (project *model.Project, err error) {
	defer s.track("add_project", time.Now(), &err)

	isAdmin, err := s.authorize(userID, PermAddProject)
	if err != nil {
		return nil, err
	}

	existing, err := s.stores.Projects().FindProjectsByName(in.Name, userID)
	if err != nil {
		return nil, fault.Wrap(err, "looking up project name")
	}
	if len(s.readable(existing, userID, isAdmin)) > 0 {
		return nil, fault.Validation("A Project with the name \"%s\" already exists", in.Name)
	}

	err = s.stores.Transaction(ctx, func(tx store.Stores) error {
		project = &model.Project{
			Name:        in.Name,
			Description: in.Description,
			Status:      model.StatusActive,
			CreatedBy:   userID,
		}
		project.SetOwner(userID, true, true, true)
		if err := tx.Projects().CreateProject(project); err != nil {
			return fault.Wrap(err, "creating project")
		}

		ids, err := addResourceAttrs(tx, model.RefKeyProject, project.ID, nil, in.Attributes)
		if err != nil {
			return err
		}
		return s.setAttributeData(tx, userID, isAdmin, ids, nil, in.AttributeData)
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"user_id": userID, "project_id": project.ID}).Info("project created")
	s.auditProject(ctx, userID, project.ID, 0, "create", nil)
	return project, nil
}

// UpdateProject updates the name and description of a project and adds or
// replaces attributes and attribute data.
func (s *Service) UpdateProject(ctx context.Context, userID int64, in ProjectInput) (project *model.Project, err error) {
	defer s.track("update_project", time.Now(), &err)
	defer func() { s.auditProject(ctx, userID, in.ID, 0, "update", err) }()

	isAdmin, err := s.authorize(userID, PermGetProject)
	if err != nil {
		return nil, err
	}

	project, err = getProject(s.stores, in.ID)
	if err != nil {
		return nil, err
	}
	if err := project.CheckWritePermission(userID, isAdmin); err != nil {
		return nil, err
	}

	err = s.stores.Transaction(ctx, func(tx store.Stores) error {
		project.Name = in.Name
		project.Description = in.Description
		if err := tx.Projects().UpdateProject(project); err != nil {
			return fault.Wrap(err, "updating project")
		}

		ids, err := addResourceAttrs(tx, model.RefKeyProject, project.ID, project.Attributes, in.Attributes)
		if err != nil {
			return err
		}
		return s.setAttributeData(tx, userID, isAdmin, ids, nil, in.AttributeData)
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

// GetProject returns a project with its attribute data and the networks the
// caller can read. Deleted networks are left out unless includeDeleted.
func (s *Service) GetProject(ctx context.Context, userID, projectID int64, includeDeleted bool) (view *ProjectView, err error) {
	defer s.track("get_project", time.Now(), &err)

	isAdmin, err := s.authorize(userID, PermGetProject)
	if err != nil {
		return nil, err
	}

	project, err := getProject(s.stores, projectID)
	if err != nil {
		return nil, err
	}
	if err := project.CheckReadPermission(userID, isAdmin); err != nil {
		return nil, err
	}

	data, err := s.stores.Attributes().ProjectAttributeData(projectID)
	if err != nil {
		return nil, fault.Wrap(err, "loading project attribute data")
	}

	networks, err := s.stores.Networks().ListProjectNetworks(projectID, "")
	if err != nil {
		return nil, fault.Wrap(err, "loading project networks")
	}

	redactData(data, userID, isAdmin)
	view = &ProjectView{Project: *project, AttributeData: data}
	view.Networks = []model.Network{}
	for i := range networks {
		network := networks[i]
		if !includeDeleted && network.Status == model.StatusDeleted {
			continue
		}
		if err := network.CheckReadPermission(userID, isAdmin); err != nil {
			s.skipNetwork(userID, network.ID)
			continue
		}
		view.Networks = append(view.Networks, network)
	}
	return view, nil
}

func (s *Service) skipNetwork(userID, networkID int64) {
	s.log.WithFields(logrus.Fields{"user_id": userID, "network_id": networkID}).
		Debug("skipping network the user cannot read")
	metrics.RecordSkipped("network")
}

// GetProjectByNetworkID returns the project, owned by the caller, that
// contains a network.
func (s *Service) GetProjectByNetworkID(ctx context.Context, userID, networkID int64) (project *model.Project, err error) {
	defer s.track("get_project_by_network_id", time.Now(), &err)

	isAdmin, err := s.authorize(userID, PermGetProject)
	if err != nil {
		return nil, err
	}

	projects, err := s.stores.Projects().FindProjectsByNetwork(networkID, userID)
	if err != nil {
		return nil, fault.Wrap(err, "looking up network project")
	}
	projects = s.readable(projects, userID, isAdmin)
	if len(projects) == 0 {
		return nil, fault.NotFound("No project found for network %d", networkID)
	}
	return &projects[0], nil
}

// GetProjectByName returns the caller's readable projects with the name.
func (s *Service) GetProjectByName(ctx context.Context, userID int64, name string) (projects []model.Project, err error) {
	defer s.track("get_project_by_name", time.Now(), &err)

	isAdmin, err := s.authorize(userID, PermGetProject)
	if err != nil {
		return nil, err
	}

	found, err := s.stores.Projects().FindProjectsByName(name, userID)
	if err != nil {
		return nil, fault.Wrap(err, "looking up project name")
	}
	projects = s.readable(found, userID, isAdmin)
	if len(projects) == 0 {
		return nil, fault.NotFound("Project %s not found", name)
	}
	return projects, nil
}

// GetProjects lists the active projects of uid: those it created and, with
// q.IncludeShared, those shared with it. Projects the caller cannot read are
// skipped. Each project carries the active networks uid can read.
func (s *Service) GetProjects(ctx context.Context, userID, uid int64, q ProjectsQuery) (views []ProjectView, err error) {
	defer s.track("get_projects", time.Now(), &err)

	isAdmin, err := s.authorize(userID, PermGetProject)
	if err != nil {
		return nil, err
	}

	projects, err := s.stores.Projects().ListProjects(store.ProjectFilter{
		UserID:        uid,
		IncludeShared: q.IncludeShared,
		IDs:           q.IDs,
	})
	if err != nil {
		return nil, fault.Wrap(err, "listing projects")
	}
	s.log.WithFields(logrus.Fields{"user_id": userID, "uid": uid, "count": len(projects)}).Debug("projects listed")

	views = []ProjectView{}
	for _, project := range s.readable(projects, userID, isAdmin) {
		data, err := s.stores.Attributes().ProjectAttributeData(project.ID)
		if err != nil {
			return nil, fault.Wrap(err, "loading project attribute data")
		}
		networks, err := s.stores.Networks().ListProjectNetworks(project.ID, model.StatusActive)
		if err != nil {
			return nil, fault.Wrap(err, "loading project networks")
		}

		redactData(data, userID, isAdmin)
		view := ProjectView{Project: project, AttributeData: data}
		view.Networks = []model.Network{}
		for _, network := range networks {
			if !isAdmin && network.CheckReadPermission(uid, false) != nil {
				s.skipNetwork(uid, network.ID)
				continue
			}
			view.Networks = append(view.Networks, network)
		}
		views = append(views, view)
	}
	return views, nil
}

// GetProjectAttributeData returns the attribute data of a project.
func (s *Service) GetProjectAttributeData(ctx context.Context, userID, projectID int64) (data []model.ResourceScenario, err error) {
	defer s.track("get_project_attribute_data", time.Now(), &err)

	isAdmin, err := s.authorize(userID, PermGetProject)
	if err != nil {
		return nil, err
	}
	project, err := getProject(s.stores, projectID)
	if err != nil {
		return nil, err
	}
	if err := project.CheckReadPermission(userID, isAdmin); err != nil {
		return nil, err
	}

	data, err = s.stores.Attributes().ProjectAttributeData(projectID)
	if err != nil {
		return nil, fault.Wrap(err, "loading project attribute data")
	}
	redactData(data, userID, isAdmin)
	return data, nil
}

// SetProjectStatus soft-deletes (X) or restores (A) a project.
func (s *Service) SetProjectStatus(ctx context.Context, userID, projectID int64, status string) (err error) {
	defer s.track("set_project_status", time.Now(), &err)
	defer func() { s.auditProject(ctx, userID, projectID, 0, "status", err) }()

	if status != model.StatusActive && status != model.StatusDeleted {
		return fault.Validation("Invalid project status %q", status)
	}

	isAdmin, err := s.authorize(userID, PermDeleteProject)
	if err != nil {
		return err
	}
	project, err := getProject(s.stores, projectID)
	if err != nil {
		return err
	}
	if err := project.CheckWritePermission(userID, isAdmin); err != nil {
		return err
	}

	return fault.Wrap(s.stores.Projects().SetProjectStatus(projectID, status), "setting project status")
}

// DeleteProject removes a project with its networks and data.
func (s *Service) DeleteProject(ctx context.Context, userID, projectID int64) (err error) {
	defer s.track("delete_project", time.Now(), &err)
	defer func() { s.auditProject(ctx, userID, projectID, 0, "delete", err) }()

	isAdmin, err := s.authorize(userID, PermEditProject, PermDeleteProject)
	if err != nil {
		return err
	}
	project, err := getProject(s.stores, projectID)
	if err != nil {
		return err
	}
	if err := project.CheckWritePermission(userID, isAdmin); err != nil {
		return err
	}

	err = s.stores.Projects().DeleteProject(projectID)
	if errors.Is(err, store.ErrNotFound) {
		return fault.NotFound("Project %d not found", projectID)
	}
	return fault.Wrap(err, "deleting project")
}

// GetNetworks returns the active networks of a project the caller can read.
func (s *Service) GetNetworks(ctx context.Context, userID, projectID int64, includeData bool) (networks []model.Network, err error) {
	defer s.track("get_networks", time.Now(), &err)

	isAdmin, err := s.authorize(userID, PermGetProject)
	if err != nil {
		return nil, err
	}
	project, err := getProject(s.stores, projectID)
	if err != nil {
		return nil, err
	}
	if err := project.CheckReadPermission(userID, isAdmin); err != nil {
		return nil, err
	}

	summaries, err := s.stores.Networks().ListProjectNetworks(projectID, model.StatusActive)
	if err != nil {
		return nil, fault.Wrap(err, "loading project networks")
	}

	networks = []model.Network{}
	for _, summary := range summaries {
		if err := summary.CheckReadPermission(userID, isAdmin); err != nil {
			s.skipNetwork(userID, summary.ID)
			continue
		}
		network, err := s.stores.Networks().GetNetwork(summary.ID, includeData)
		if err != nil {
			return nil, fault.Wrap(err, "loading network")
		}
		if !includeData {
			network.Scenarios = nil
		}
		networks = append(networks, *network)
	}
	return networks, nil
}

// GetNetworkProject returns the project a network is in.
func (s *Service) GetNetworkProject(ctx context.Context, userID, networkID int64) (project *model.Project, err error) {
	defer s.track("get_network_project", time.Now(), &err)

	if _, err := s.authorize(userID, PermGetProject); err != nil {
		return nil, err
	}

	project, err = s.stores.Projects().GetNetworkProject(networkID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fault.NotFound("Network %d not found", networkID)
	}
	if err != nil {
		return nil, fault.Wrap(err, "loading network project")
	}
	return project, nil
}

// CloneProject copies a project with its attributes, attribute data and
// active networks. The clone is owned by the caller and, when given, the
// recipient. Returns the id of the new project.
func (s *Service) CloneProject(ctx context.Context, userID, projectID int64, in CloneProjectInput) (newID int64, err error) {
	defer s.track("clone_project", time.Now(), &err)
	defer func() { s.auditProject(ctx, userID, projectID, 0, "clone", err) }()

	isAdmin, err := s.authorize(userID, PermGetProject, PermAddProject)
	if err != nil {
		return 0, err
	}
	project, err := getProject(s.stores, projectID)
	if err != nil {
		return 0, err
	}
	if err := project.CheckWritePermission(userID, isAdmin); err != nil {
		return 0, err
	}

	name := in.Name
	if name == "" {
		user, err := s.getUser(s.stores, userID)
		if err != nil {
			return 0, err
		}
		name = project.Name + " Cloned By " + user.Name()
	}
	exists, err := s.stores.Projects().ProjectNameExists(name, userID)
	if err != nil {
		return 0, fault.Wrap(err, "looking up project name")
	}
	if exists {
		return 0, fault.Validation("A project with the name %s already exists", name)
	}

	if in.RecipientUserID != nil {
		if err := project.CheckSharePermission(userID, isAdmin); err != nil {
			return 0, err
		}
		if _, err := s.getUser(s.stores, *in.RecipientUserID); err != nil {
			return 0, err
		}
	}

	description := in.Description
	if description == "" {
		description = project.Description
	}

	err = s.stores.Transaction(ctx, func(tx store.Stores) error {
		clone := &model.Project{
			Name:        name,
			Description: description,
			Status:      model.StatusActive,
			CreatedBy:   userID,
		}
		if in.RecipientUserID != nil {
			clone.SetOwner(*in.RecipientUserID, true, true, true)
		}
		clone.SetOwner(userID, true, true, true)
		if err := tx.Projects().CreateProject(clone); err != nil {
			return fault.Wrap(err, "creating project")
		}
		newID = clone.ID

		if err := copyProjectData(tx, project, clone.ID); err != nil {
			return err
		}

		networks, err := tx.Networks().ListProjectNetworks(projectID, model.StatusActive)
		if err != nil {
			return fault.Wrap(err, "loading project networks")
		}
		for _, network := range networks {
			if _, err := s.cloneNetwork(tx, userID, network.ID, clone.ID, in.RecipientUserID, ""); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.WithFields(logrus.Fields{"user_id": userID, "project_id": projectID, "clone_id": newID}).Info("project cloned")
	return newID, nil
}

// copyProjectData attaches the attributes of project to the project
// targetID and points them at the same datasets.
func copyProjectData(tx store.Stores, project *model.Project, targetID int64) error {
	raIDs := make(map[int64]int64, len(project.Attributes))
	for _, ra := range project.Attributes {
		id := targetID
		copied := &model.ResourceAttr{AttrID: ra.AttrID, RefKey: ra.RefKey, ProjectID: &id, AttrIsVar: ra.AttrIsVar}
		if err := tx.Attributes().AddResourceAttr(copied); err != nil {
			return fault.Wrap(err, "copying resource attribute")
		}
		raIDs[ra.ID] = copied.ID
	}

	data, err := tx.Attributes().ProjectAttributeData(project.ID)
	if err != nil {
		return fault.Wrap(err, "loading project attribute data")
	}
	for _, rs := range data {
		raID, ok := raIDs[rs.ResourceAttrID]
		if !ok {
			continue
		}
		copied := &model.ResourceScenario{ResourceAttrID: raID, DatasetID: rs.DatasetID, Source: rs.Source}
		if err := tx.Attributes().SetResourceScenario(copied); err != nil {
			return fault.Wrap(err, "copying attribute data")
		}
	}
	return nil
}

// ShareProject grants usernames access to a project and all its networks.
// Read-only shares carry neither edit nor share rights; only the project's
// creator can pass on the share right.
func (s *Service) ShareProject(ctx context.Context, userID, projectID int64, in ShareInput) (err error) {
	defer s.track("share_project", time.Now(), &err)
	defer func() { s.auditProject(ctx, userID, projectID, 0, "share", err) }()

	isAdmin, err := s.authorize(userID, PermShareProject)
	if err != nil {
		return err
	}
	project, err := getProject(s.stores, projectID)
	if err != nil {
		return err
	}
	if err := project.CheckSharePermission(userID, isAdmin); err != nil {
		return err
	}

	edit, share := !in.ReadOnly, in.Share && !in.ReadOnly
	if share && project.CreatedBy != userID {
		return fault.Validation("Cannot share the 'sharing' ability as user %d is not the owner of project %d", userID, projectID)
	}

	return s.stores.Transaction(ctx, func(tx store.Stores) error {
		networks, err := tx.Networks().ListProjectNetworks(projectID, "")
		if err != nil {
			return fault.Wrap(err, "loading project networks")
		}
		for _, username := range in.Usernames {
			user, err := tx.Users().GetUserByName(username)
			if errors.Is(err, store.ErrNotFound) {
				return fault.NotFound("User %s not found", username)
			}
			if err != nil {
				return fault.Wrap(err, "loading user")
			}

			owner := model.Owner{UserID: user.ID, View: true, Edit: edit, Share: share}
			if err := tx.Projects().SetProjectOwner(&model.ProjectOwner{ProjectID: projectID, Owner: owner}); err != nil {
				return fault.Wrap(err, "sharing project")
			}
			for _, network := range networks {
				if err := tx.Networks().SetNetworkOwner(&model.NetworkOwner{NetworkID: network.ID, Owner: owner}); err != nil {
					return fault.Wrap(err, "sharing network")
				}
			}
		}
		return nil
	})
}

func (s *Service) getUser(stores store.Stores, userID int64) (*model.User, error) {
	user, err := stores.Users().GetUser(userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fault.NotFound("User %d not found", userID)
	}
	return user, fault.Wrap(err, "loading user")
}
