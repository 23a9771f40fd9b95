package hydra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/doodlesbykumbi/hydra-in-go/pkg/fault"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/model"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/server/store"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/timeseries"
)

var jsonNull = json.RawMessage("null")

func (s *Service) getDataset(userID, datasetID int64, isAdmin bool) (*model.Dataset, error) {
	dataset, err := s.stores.Datasets().GetDataset(datasetID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fault.NotFound("Dataset %d not found", datasetID)
	}
	if err != nil {
		return nil, fault.Wrap(err, "loading dataset")
	}
	if err := dataset.CheckReadPermission(userID, isAdmin); err != nil {
		return nil, err
	}
	return dataset, nil
}

// datasetValue renders the stored text of a dataset as JSON.
func datasetValue(d *model.Dataset) json.RawMessage {
	switch d.Type {
	case model.DataTypeDescriptor:
		b, _ := json.Marshal(d.Value)
		return b
	default:
		if gjson.Valid(d.Value) {
			return json.RawMessage(strings.TrimSpace(d.Value))
		}
		b, _ := json.Marshal(d.Value)
		return b
	}
}

func (s *Service) series(d *model.Dataset) (*timeseries.Series, error) {
	ts, err := timeseries.Parse(d.Value, s.config().SeasonalYear)
	if err != nil {
		return nil, fault.Validation("Dataset %d holds an invalid timeseries: %v", d.ID, err)
	}
	return ts, nil
}

func (s *Service) GetDataset(ctx context.Context, userID, datasetID int64) (dataset *model.Dataset, err error) {
	defer s.track("get_dataset", time.Now(), &err)
	defer func() { s.auditData(ctx, userID, []int64{datasetID}, 0, "get-dataset", err) }()

	isAdmin, err := s.authorize(userID, PermViewData)
	if err != nil {
		return nil, err
	}
	return s.getDataset(userID, datasetID, isAdmin)
}

// valuesAt looks up each time in d. Values missing at a time are null.
func (s *Service) valuesAt(d *model.Dataset, times []string) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, len(times))
	if d.Type != model.DataTypeTimeseries {
		v := datasetValue(d)
		for i := range out {
			out[i] = v
		}
		return out, nil
	}

	ts, err := s.series(d)
	if err != nil {
		return nil, err
	}
	for i, t := range times {
		out[i] = jsonNull
		if v := ts.Lookup(t); v != nil {
			out[i] = v
		}
	}
	return out, nil
}

// GetValAtTime returns a dataset's value at the given times: the value
// itself for one time, an array for several. Datasets that are not
// timeseries return their value whatever the times.
func (s *Service) GetValAtTime(ctx context.Context, userID, datasetID int64, times []string) (value json.RawMessage, err error) {
	defer s.track("get_val_at_time", time.Now(), &err)
	defer func() { s.auditData(ctx, userID, []int64{datasetID}, 0, "get-values", err) }()

	isAdmin, err := s.authorize(userID, PermViewData)
	if err != nil {
		return nil, err
	}
	dataset, err := s.getDataset(userID, datasetID, isAdmin)
	if err != nil {
		return nil, err
	}
	if dataset.Type != model.DataTypeTimeseries {
		return datasetValue(dataset), nil
	}
	if len(times) == 0 {
		return nil, fault.Validation("No times given")
	}

	values, err := s.valuesAt(dataset, times)
	if err != nil {
		return nil, err
	}
	if len(values) == 1 {
		return values[0], nil
	}
	b, err := json.Marshal(values)
	return b, fault.Wrap(err, "encoding values")
}

// GetMultipleValsAtTime returns, for each dataset, its values keyed by the
// query time. Results are keyed "dataset_<id>".
func (s *Service) GetMultipleValsAtTime(ctx context.Context, userID int64, datasetIDs []int64, times []string) (result map[string]map[string]json.RawMessage, err error) {
	defer s.track("get_multiple_vals_at_time", time.Now(), &err)
	defer func() { s.auditData(ctx, userID, datasetIDs, 0, "get-values", err) }()

	isAdmin, err := s.authorize(userID, PermViewData)
	if err != nil {
		return nil, err
	}

	result = make(map[string]map[string]json.RawMessage, len(datasetIDs))
	for _, id := range datasetIDs {
		dataset, err := s.getDataset(userID, id, isAdmin)
		if err != nil {
			return nil, err
		}
		values, err := s.valuesAt(dataset, times)
		if err != nil {
			return nil, err
		}
		byTime := make(map[string]json.RawMessage, len(times))
		for i, t := range times {
			byTime[t] = values[i]
		}
		result[fmt.Sprintf("dataset_%d", id)] = byTime
	}
	return result, nil
}

// GetValsBetweenTimes steps from q.Start to q.End inclusive and returns the
// non-null values found at each step. Descriptors and other plain datasets
// return their value as a single element.
func (s *Service) GetValsBetweenTimes(ctx context.Context, userID, datasetID int64, q RangeQuery) (values []json.RawMessage, err error) {
	defer s.track("get_vals_between_times", time.Now(), &err)
	defer func() { s.auditData(ctx, userID, []int64{datasetID}, 0, "get-values", err) }()

	isAdmin, err := s.authorize(userID, PermViewData)
	if err != nil {
		return nil, err
	}
	dataset, err := s.getDataset(userID, datasetID, isAdmin)
	if err != nil {
		return nil, err
	}
	if dataset.Type != model.DataTypeTimeseries {
		return []json.RawMessage{datasetValue(dataset)}, nil
	}

	increment := 1.0
	if q.Increment != nil {
		increment = *q.Increment
	}
	if increment <= 0 {
		return nil, fault.Validation("Increment must be a positive number, got %g", increment)
	}

	ts, err := s.series(dataset)
	if err != nil {
		return nil, err
	}

	values = []json.RawMessage{}
	cfg := s.config()
	switch ts.Kind() {
	case timeseries.KindTime:
		start, err := timeseries.ParseTime(q.Start, cfg.SeasonalYear)
		if err != nil {
			return nil, fault.Validation("Invalid start time %q", q.Start)
		}
		end, err := timeseries.ParseTime(q.End, cfg.SeasonalYear)
		if err != nil {
			return nil, fault.Validation("Invalid end time %q", q.End)
		}
		unit, err := timeseries.UnitString(q.Unit)
		if err != nil {
			return nil, fault.Validation("Unknown time unit %q", q.Unit)
		}
		if increment != math.Trunc(increment) {
			return nil, fault.Validation("Increment must be a whole number of %s", unit)
		}
		times, err := timeseries.Times(start, end, unit, int(increment), cfg.MaxTimesteps)
		if err != nil {
			return nil, err
		}
		for _, t := range times {
			if v := ts.At(t); v != nil {
				values = append(values, v)
			}
		}
	case timeseries.KindRelative:
		start, errStart := strconv.ParseFloat(strings.TrimSpace(q.Start), 64)
		end, errEnd := strconv.ParseFloat(strings.TrimSpace(q.End), 64)
		if errStart != nil || errEnd != nil {
			// a relative series has no value at an absolute time
			return values, nil
		}
		offsets, err := timeseries.Offsets(start, end, increment, cfg.MaxTimesteps)
		if err != nil {
			return nil, err
		}
		for _, x := range offsets {
			if v := ts.AtOffset(x); v != nil {
				values = append(values, v)
			}
		}
	}
	return values, nil
}

func (s *Service) GetCollectionsLikeName(ctx context.Context, userID int64, text string) (collections []model.DatasetCollection, err error) {
	defer s.track("get_collections_like_name", time.Now(), &err)

	if err := s.requirePerms(userID, PermViewData); err != nil {
		return nil, err
	}
	collections, err = s.stores.Datasets().FindCollectionsLikeName(text)
	return collections, fault.Wrap(err, "searching dataset collections")
}

func (s *Service) getCollection(collectionID int64) (*model.DatasetCollection, error) {
	collection, err := s.stores.Datasets().GetCollection(collectionID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fault.NotFound("Dataset collection %d not found", collectionID)
	}
	return collection, fault.Wrap(err, "loading dataset collection")
}

// GetCollectionDatasets returns the datasets of a collection, leaving out
// hidden datasets the caller cannot see.
func (s *Service) GetCollectionDatasets(ctx context.Context, userID, collectionID int64) (datasets []model.Dataset, err error) {
	defer s.track("get_collection_datasets", time.Now(), &err)
	defer func() { s.auditData(ctx, userID, nil, collectionID, "get-collection", err) }()

	isAdmin, err := s.authorize(userID, PermViewData)
	if err != nil {
		return nil, err
	}
	collection, err := s.getCollection(collectionID)
	if err != nil {
		return nil, err
	}
	if len(collection.Items) == 0 {
		return []model.Dataset{}, nil
	}

	ids := make([]int64, len(collection.Items))
	for i, item := range collection.Items {
		ids[i] = item.DatasetID
	}
	all, err := s.stores.Datasets().GetDatasets(ids)
	if err != nil {
		return nil, fault.Wrap(err, "loading datasets")
	}
	datasets = make([]model.Dataset, 0, len(all))
	for _, d := range all {
		if d.CheckReadPermission(userID, isAdmin) != nil {
			continue
		}
		datasets = append(datasets, d)
	}
	return datasets, nil
}

// AddDatasetCollection creates a collection. Repeated dataset ids are added
// once.
func (s *Service) AddDatasetCollection(ctx context.Context, userID int64, in CollectionInput) (collection *model.DatasetCollection, err error) {
	defer s.track("add_dataset_collection", time.Now(), &err)
	defer func() {
		var id int64
		if collection != nil {
			id = collection.ID
		}
		s.auditData(ctx, userID, in.DatasetIDs, id, "add-collection", err)
	}()

	if err := s.requirePerms(userID, PermEditData); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, fault.Validation("A dataset collection needs a name")
	}

	var ids []int64
	seen := map[int64]bool{}
	for _, id := range in.DatasetIDs {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	if len(ids) > 0 {
		found, err := s.stores.Datasets().GetDatasets(ids)
		if err != nil {
			return nil, fault.Wrap(err, "loading datasets")
		}
		present := make(map[int64]bool, len(found))
		for _, d := range found {
			present[d.ID] = true
		}
		for _, id := range ids {
			if !present[id] {
				return nil, fault.NotFound("Dataset %d not found", id)
			}
		}
	}

	created := &model.DatasetCollection{Name: in.Name, CreatedBy: userID}
	for _, id := range ids {
		created.Items = append(created.Items, model.DatasetCollectionItem{DatasetID: id})
	}
	if err := s.stores.Datasets().CreateCollection(created); err != nil {
		return nil, fault.Wrap(err, "creating dataset collection")
	}
	return created, nil
}

func (s *Service) AddDatasetToCollection(ctx context.Context, userID, datasetID, collectionID int64) (err error) {
	defer s.track("add_dataset_to_collection", time.Now(), &err)
	defer func() { s.auditData(ctx, userID, []int64{datasetID}, collectionID, "add-to-collection", err) }()

	if err := s.requirePerms(userID, PermEditData); err != nil {
		return err
	}
	if _, err := s.getCollection(collectionID); err != nil {
		return err
	}
	if _, err := s.stores.Datasets().GetDataset(datasetID); errors.Is(err, store.ErrNotFound) {
		return fault.NotFound("Dataset %d not found", datasetID)
	} else if err != nil {
		return fault.Wrap(err, "loading dataset")
	}
	return fault.Wrap(s.stores.Datasets().AddCollectionItem(collectionID, datasetID), "adding dataset to collection")
}

func (s *Service) RemoveDatasetFromCollection(ctx context.Context, userID, datasetID, collectionID int64) (err error) {
	defer s.track("remove_dataset_from_collection", time.Now(), &err)
	defer func() { s.auditData(ctx, userID, []int64{datasetID}, collectionID, "remove-from-collection", err) }()

	if err := s.requirePerms(userID, PermEditData); err != nil {
		return err
	}
	err = s.stores.Datasets().RemoveCollectionItem(collectionID, datasetID)
	if errors.Is(err, store.ErrNotFound) {
		return fault.NotFound("Dataset %d is not in collection %d", datasetID, collectionID)
	}
	return fault.Wrap(err, "removing dataset from collection")
}

func (s *Service) DeleteDatasetCollection(ctx context.Context, userID, collectionID int64) (err error) {
	defer s.track("delete_dataset_collection", time.Now(), &err)
	defer func() { s.auditData(ctx, userID, nil, collectionID, "delete-collection", err) }()

	if err := s.requirePerms(userID, PermEditData); err != nil {
		return err
	}
	err = s.stores.Datasets().DeleteCollection(collectionID)
	if errors.Is(err, store.ErrNotFound) {
		return fault.NotFound("Dataset collection %d not found", collectionID)
	}
	return fault.Wrap(err, "deleting dataset collection")
}
