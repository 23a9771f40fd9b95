package hydra

import (
	"testing"

	"github.com/doodlesbykumbi/hydra-in-go/pkg/audit"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/config"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/logging"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/model"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/server/store/storetest"
)

type fixture struct {
	svc    *Service
	stores *storetest.Stores
	cfg    *config.HydraConfig
	events []audit.Event
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{stores: storetest.NewStores(), cfg: config.Default()}
	f.svc = New(f.stores,
		WithLogger(logging.Discard()),
		WithConfig(func() *config.HydraConfig { return f.cfg }),
		WithAudit(func(e audit.Event) { f.events = append(f.events, e) }),
	)
	t.Cleanup(func() { f.stores.AssertExpectations(t) })
	return f
}

func (f *fixture) lastEvent() audit.Event {
	if len(f.events) == 0 {
		return nil
	}
	return f.events[len(f.events)-1]
}

func project(id, createdBy int64, owners ...model.Owner) *model.Project {
	p := &model.Project{ID: id, Name: "Basin", Status: model.StatusActive, CreatedBy: createdBy}
	for _, o := range owners {
		p.Owners = append(p.Owners, model.ProjectOwner{ProjectID: id, Owner: o})
	}
	return p
}

func network(id, createdBy int64, status string, owners ...model.Owner) model.Network {
	n := model.Network{ID: id, Name: "net", Status: status, CreatedBy: createdBy}
	for _, o := range owners {
		n.Owners = append(n.Owners, model.NetworkOwner{NetworkID: id, Owner: o})
	}
	return n
}

func viewer(userID int64) model.Owner {
	return model.Owner{UserID: userID, View: true}
}

func editor(userID int64) model.Owner {
	return model.Owner{UserID: userID, View: true, Edit: true}
}

func hiddenDataset(id, createdBy int64) *model.Dataset {
	return &model.Dataset{
		ID:        id,
		Type:      model.DataTypeScalar,
		Name:      "secret flow",
		Value:     "42",
		Hash:      "f00d",
		Hidden:    true,
		CreatedBy: createdBy,
	}
}
