package hydra

import (
	"context"
	"time"

	"github.com/doodlesbykumbi/hydra-in-go/pkg/fault"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/flatten"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/model"
)

// GetProjectRecord returns a project flattened into a nested record, with
// its active networks limited to those the caller can read.
func (s *Service) GetProjectRecord(ctx context.Context, userID, projectID int64, q RecordQuery) (record *flatten.Record, err error) {
	defer s.track("get_project_record", time.Now(), &err)

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

	networks, err := s.stores.Networks().ListProjectNetworks(projectID, model.StatusActive)
	if err != nil {
		return nil, fault.Wrap(err, "loading project networks")
	}
	project.Networks = []model.Network{}
	for i := range networks {
		if err := networks[i].CheckReadPermission(userID, isAdmin); err != nil {
			s.skipNetwork(userID, networks[i].ID)
			continue
		}
		project.Networks = append(project.Networks, networks[i])
	}

	levels := q.Levels
	if levels <= 0 {
		levels = s.config().FlattenLevels
	}
	record, err = s.flattener.Flatten(project, flatten.Options{
		Levels: levels,
		Ignore: q.Ignore,
		DB:     s.db,
		Omit: func(obj interface{}) bool {
			d, ok := obj.(*model.Dataset)
			return ok && d.CheckReadPermission(userID, isAdmin) != nil
		},
		Extras: []flatten.Extra{
			{Key: "network_count", Value: len(project.Networks)},
			{Key: "owner_count", Value: len(project.Owners)},
		},
	})
	return record, fault.Wrap(err, "flattening project")
}
