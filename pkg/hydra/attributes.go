package hydra

import (
	"errors"

	"github.com/doodlesbykumbi/hydra-in-go/pkg/fault"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/model"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/server/store"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/timeseries"
)

// addResourceAttrs attaches the attributes in inputs that the object does
// not already carry. The returned map resolves both temporary and real
// input ids, and the ids of existing attributes, to resource attribute ids.
func addResourceAttrs(tx store.Stores, refKey string, refID int64, existing []model.ResourceAttr, inputs []ResourceAttrInput) (map[int64]int64, error) {
	ids := make(map[int64]int64, len(existing)+len(inputs))
	byAttr := make(map[int64]int64, len(existing))
	for _, ra := range existing {
		ids[ra.ID] = ra.ID
		byAttr[ra.AttrID] = ra.ID
	}

	for _, in := range inputs {
		if raID, ok := byAttr[in.AttrID]; ok {
			ids[in.ID] = raID
			continue
		}
		if _, err := tx.Attributes().GetAttr(in.AttrID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, fault.NotFound("Attribute %d not found", in.AttrID)
			}
			return nil, fault.Wrap(err, "loading attribute")
		}

		ra := &model.ResourceAttr{AttrID: in.AttrID, RefKey: refKey, AttrIsVar: in.AttrIsVar}
		id := refID
		if refKey == model.RefKeyProject {
			ra.ProjectID = &id
		} else {
			ra.NetworkID = &id
		}
		if err := tx.Attributes().AddResourceAttr(ra); err != nil {
			return nil, fault.Wrap(err, "adding resource attribute")
		}
		ids[in.ID] = ra.ID
		byAttr[in.AttrID] = ra.ID
	}
	return ids, nil
}

// setAttributeData stores the datasets of data and binds them to the
// resolved resource attributes.
func (s *Service) setAttributeData(tx store.Stores, userID int64, isAdmin bool, ids map[int64]int64, scenarioID *int64, data []ResourceScenarioInput) error {
	for _, d := range data {
		raID, ok := ids[d.ResourceAttrID]
		if !ok {
			return fault.Validation("Resource attribute %d does not belong to this resource", d.ResourceAttrID)
		}
		dataset, err := s.storeDataset(tx, userID, isAdmin, d.Dataset)
		if err != nil {
			return err
		}
		rs := &model.ResourceScenario{
			ResourceAttrID: raID,
			ScenarioID:     scenarioID,
			DatasetID:      dataset.ID,
			Source:         d.Source,
		}
		if err := tx.Attributes().SetResourceScenario(rs); err != nil {
			return fault.Wrap(err, "setting attribute data")
		}
	}
	return nil
}

// storeDataset returns the dataset described by in, reusing an existing
// dataset with identical content. An existing dataset referenced by id must
// be readable by the caller.
func (s *Service) storeDataset(tx store.Stores, userID int64, isAdmin bool, in DatasetInput) (*model.Dataset, error) {
	if in.ID > 0 {
		dataset, err := tx.Datasets().GetDataset(in.ID)
		if errors.Is(err, store.ErrNotFound) {
			return nil, fault.NotFound("Dataset %d not found", in.ID)
		}
		if err != nil {
			return nil, fault.Wrap(err, "loading dataset")
		}
		if err := dataset.CheckReadPermission(userID, isAdmin); err != nil {
			return nil, err
		}
		return dataset, nil
	}

	dataType, err := model.DataTypeString(in.Type)
	if err != nil {
		return nil, fault.Validation("Unknown data type %q", in.Type)
	}
	if dataType == model.DataTypeTimeseries {
		if _, err := timeseries.Parse(in.Value, s.config().SeasonalYear); err != nil {
			return nil, fault.Validation("Invalid timeseries value: %v", err)
		}
	}

	dataset := &model.Dataset{
		Type:      dataType,
		Name:      in.Name,
		Unit:      in.Unit,
		Value:     in.Value,
		Hidden:    in.Hidden,
		CreatedBy: userID,
	}
	existing, err := tx.Datasets().FindDatasetByHash(dataset.SetHash())
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fault.Wrap(err, "looking up dataset")
	}
	if err := tx.Datasets().CreateDataset(dataset); err != nil {
		return nil, fault.Wrap(err, "creating dataset")
	}
	return dataset, nil
}

// redactData replaces hidden datasets the caller cannot read with their
// redacted form.
func redactData(data []model.ResourceScenario, userID int64, isAdmin bool) {
	for i := range data {
		if d := data[i].Dataset; d != nil && d.CheckReadPermission(userID, isAdmin) != nil {
			data[i].Dataset = d.Redacted()
		}
	}
}
