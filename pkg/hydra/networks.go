package hydra

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/doodlesbykumbi/hydra-in-go/pkg/fault"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/model"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/server/store"
)

func getNetwork(stores store.Stores, networkID int64, withData bool) (*model.Network, error) {
	network, err := stores.Networks().GetNetwork(networkID, withData)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fault.NotFound("Network %d not found", networkID)
	}
	if err != nil {
		return nil, fault.Wrap(err, "loading network")
	}
	return network, nil
}

// AddNetwork creates a network with its attributes and scenarios in a
// project the caller can write to.
func (s *Service) AddNetwork(ctx context.Context, userID int64, in NetworkInput) (network *model.Network, err error) {
	defer s.track("add_network", time.Now(), &err)

	isAdmin, err := s.authorize(userID, PermAddNetwork)
	if err != nil {
		return nil, err
	}
	project, err := getProject(s.stores, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if err := project.CheckWritePermission(userID, isAdmin); err != nil {
		return nil, err
	}

	exists, err := s.stores.Networks().NetworkNameExists(in.ProjectID, in.Name)
	if err != nil {
		return nil, fault.Wrap(err, "looking up network name")
	}
	if exists {
		return nil, fault.Validation("A network with the name \"%s\" already exists in project %d", in.Name, in.ProjectID)
	}

	err = s.stores.Transaction(ctx, func(tx store.Stores) error {
		network = &model.Network{
			ProjectID:   in.ProjectID,
			Name:        in.Name,
			Description: in.Description,
			Layout:      in.Layout,
			Status:      model.StatusActive,
			CreatedBy:   userID,
		}
		network.SetOwner(userID, true, true, true)
		if err := tx.Networks().CreateNetwork(network); err != nil {
			return fault.Wrap(err, "creating network")
		}

		ids, err := addResourceAttrs(tx, model.RefKeyNetwork, network.ID, nil, in.Attributes)
		if err != nil {
			return err
		}

		for _, sc := range in.Scenarios {
			scenario := &model.Scenario{
				NetworkID:   network.ID,
				Name:        sc.Name,
				Description: sc.Description,
				Status:      model.StatusActive,
				StartTime:   sc.StartTime,
				EndTime:     sc.EndTime,
				TimeStep:    sc.TimeStep,
				CreatedBy:   userID,
			}
			if err := tx.Networks().CreateScenario(scenario); err != nil {
				return fault.Wrap(err, "creating scenario")
			}
			scenarioID := scenario.ID
			if err := s.setAttributeData(tx, userID, isAdmin, ids, &scenarioID, sc.ResourceScenarios); err != nil {
				return err
			}
			network.Scenarios = append(network.Scenarios, *scenario)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"user_id": userID, "network_id": network.ID}).Info("network created")
	s.auditProject(ctx, userID, in.ProjectID, network.ID, "add-network", nil)
	return network, nil
}

// GetNetwork returns a network the caller can read.
func (s *Service) GetNetwork(ctx context.Context, userID, networkID int64, q NetworkQuery) (network *model.Network, err error) {
	defer s.track("get_network", time.Now(), &err)

	isAdmin, err := s.authorize(userID, PermGetNetwork)
	if err != nil {
		return nil, err
	}
	network, err = getNetwork(s.stores, networkID, q.IncludeData && !q.Summary)
	if err != nil {
		return nil, err
	}
	if err := network.CheckReadPermission(userID, isAdmin); err != nil {
		return nil, err
	}
	if q.Summary {
		network.Scenarios = nil
		network.Attributes = nil
	}
	for i := range network.Scenarios {
		redactData(network.Scenarios[i].ResourceScenarios, userID, isAdmin)
	}
	return network, nil
}

// CloneNetwork copies a network into its own project or another one the
// caller can write to. Returns the id of the new network.
func (s *Service) CloneNetwork(ctx context.Context, userID, networkID int64, in CloneNetworkInput) (newID int64, err error) {
	defer s.track("clone_network", time.Now(), &err)

	isAdmin, err := s.authorize(userID, PermGetNetwork, PermAddNetwork)
	if err != nil {
		return 0, err
	}
	network, err := getNetwork(s.stores, networkID, false)
	if err != nil {
		return 0, err
	}
	if err := network.CheckReadPermission(userID, isAdmin); err != nil {
		return 0, err
	}

	projectID := network.ProjectID
	if in.ProjectID != nil {
		projectID = *in.ProjectID
	}
	project, err := getProject(s.stores, projectID)
	if err != nil {
		return 0, err
	}
	if err := project.CheckWritePermission(userID, isAdmin); err != nil {
		return 0, err
	}
	if in.RecipientUserID != nil {
		if err := network.CheckSharePermission(userID, isAdmin); err != nil {
			return 0, err
		}
	}

	err = s.stores.Transaction(ctx, func(tx store.Stores) error {
		clone, err := s.cloneNetwork(tx, userID, networkID, projectID, in.RecipientUserID, in.Name)
		if err != nil {
			return err
		}
		newID = clone.ID
		return nil
	})
	s.auditProject(ctx, userID, projectID, newID, "clone-network", err)
	if err != nil {
		return 0, err
	}
	return newID, nil
}

// cloneNetwork deep copies a network into projectID: owners, attributes,
// scenarios and their data. Datasets are shared with the source. A clone
// in the source's own project needs a new name, which defaults to
// "<name> Cloned By <display name>".
func (s *Service) cloneNetwork(tx store.Stores, userID, networkID, projectID int64, recipient *int64, name string) (*model.Network, error) {
	src, err := getNetwork(tx, networkID, true)
	if err != nil {
		return nil, err
	}

	if name == "" {
		name = src.Name
		if projectID == src.ProjectID {
			user, err := s.getUser(tx, userID)
			if err != nil {
				return nil, err
			}
			name = src.Name + " Cloned By " + user.Name()
		}
	}
	exists, err := tx.Networks().NetworkNameExists(projectID, name)
	if err != nil {
		return nil, fault.Wrap(err, "looking up network name")
	}
	if exists {
		return nil, fault.Validation("A network with the name \"%s\" already exists in project %d", name, projectID)
	}

	clone := &model.Network{
		ProjectID:   projectID,
		Name:        name,
		Description: src.Description,
		Layout:      src.Layout,
		Status:      model.StatusActive,
		CreatedBy:   userID,
	}
	for _, o := range src.Owners {
		clone.SetOwner(o.UserID, o.View, o.Edit, o.Share)
	}
	if recipient != nil {
		clone.SetOwner(*recipient, true, true, true)
	}
	clone.SetOwner(userID, true, true, true)
	if err := tx.Networks().CreateNetwork(clone); err != nil {
		return nil, fault.Wrap(err, "creating network")
	}

	raIDs := make(map[int64]int64, len(src.Attributes))
	for _, ra := range src.Attributes {
		id := clone.ID
		copied := &model.ResourceAttr{AttrID: ra.AttrID, RefKey: ra.RefKey, NetworkID: &id, AttrIsVar: ra.AttrIsVar}
		if err := tx.Attributes().AddResourceAttr(copied); err != nil {
			return nil, fault.Wrap(err, "copying resource attribute")
		}
		raIDs[ra.ID] = copied.ID
	}

	for _, sc := range src.Scenarios {
		scenario := &model.Scenario{
			NetworkID:   clone.ID,
			Name:        sc.Name,
			Description: sc.Description,
			Status:      sc.Status,
			StartTime:   sc.StartTime,
			EndTime:     sc.EndTime,
			TimeStep:    sc.TimeStep,
			CreatedBy:   userID,
		}
		if err := tx.Networks().CreateScenario(scenario); err != nil {
			return nil, fault.Wrap(err, "copying scenario")
		}
		for _, rs := range sc.ResourceScenarios {
			raID, ok := raIDs[rs.ResourceAttrID]
			if !ok {
				return nil, fault.Wrap(errors.New("resource attribute outside the network"), "copying scenario data")
			}
			scenarioID := scenario.ID
			copied := &model.ResourceScenario{
				ResourceAttrID: raID,
				ScenarioID:     &scenarioID,
				DatasetID:      rs.DatasetID,
				Source:         rs.Source,
			}
			if err := tx.Attributes().SetResourceScenario(copied); err != nil {
				return nil, fault.Wrap(err, "copying scenario data")
			}
		}
	}

	s.log.WithFields(logrus.Fields{"user_id": userID, "network_id": networkID, "clone_id": clone.ID}).Debug("network cloned")
	return clone, nil
}
