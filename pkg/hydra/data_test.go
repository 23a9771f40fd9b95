package hydra

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/hydra-in-go/pkg/audit"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/fault"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/model"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/server/store"
)

const seasonalSeries = `{"0": {"9999-01-01": 1, "9999-02-01": 2, "9999-03-01": 3}}`

const relativeSeries = `{"0": {"0": 10, "1": 20, "2": 30}}`

func float(v float64) *float64 { return &v }

func dataFixture(t *testing.T, datasets ...*model.Dataset) *fixture {
	f := newFixture(t)
	f.stores.Grant(1, []string{PermViewData, PermEditData})
	for _, d := range datasets {
		f.stores.DatasetsMock.On("GetDataset", d.ID).Return(d, nil)
	}
	return f
}

func TestGetValAtTime(t *testing.T) {
	datasets := map[int64]*model.Dataset{
		4: {ID: 4, Type: model.DataTypeTimeseries, Value: seasonalSeries},
		5: {ID: 5, Type: model.DataTypeScalar, Value: "12.5"},
	}

	tests := []struct {
		name    string
		dataset int64
		times   []string
		want    string
	}{
		{name: "seasonal january", dataset: 4, times: []string{"2000-01-10T00:00:00"}, want: `1`},
		{name: "seasonal forward fill", dataset: 4, times: []string{"2000-10-10T00:00:00"}, want: `3`},
		{name: "several times", dataset: 4, times: []string{"2000-01-10T00:00:00", "2000-02-10T00:00:00"}, want: `[1,2]`},
		{name: "seasonal ignores year", dataset: 4, times: []string{"2000-01-10T00:00:00", "1999-12-01T00:00:00"}, want: `[1,3]`},
		{name: "scalar ignores times", dataset: 5, times: []string{"2000-01-10T00:00:00"}, want: `12.5`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := dataFixture(t, datasets[tt.dataset])

			got, err := f.svc.GetValAtTime(context.Background(), 1, tt.dataset, tt.times)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestGetDatasetHidden(t *testing.T) {
	f := dataFixture(t, &model.Dataset{ID: 4, Type: model.DataTypeScalar, Value: "1", Hidden: true, CreatedBy: 9})

	_, err := f.svc.GetDataset(context.Background(), 1, 4)
	assert.True(t, fault.IsPermission(err))

	event := f.lastEvent().(audit.DataAccessEvent)
	assert.Equal(t, []int64{4}, event.DatasetIDs)
	assert.False(t, event.Success)
}

func TestGetDatasetNotFound(t *testing.T) {
	f := dataFixture(t)
	f.stores.DatasetsMock.On("GetDataset", int64(4)).Return(nil, store.ErrNotFound)

	_, err := f.svc.GetDataset(context.Background(), 1, 4)
	assert.True(t, fault.IsNotFound(err))
}

func TestGetMultipleValsAtTime(t *testing.T) {
	f := dataFixture(t, &model.Dataset{ID: 4, Type: model.DataTypeTimeseries, Value: seasonalSeries})

	times := []string{"2000-01-10T00:00:00", "2000-03-10T00:00:00"}
	got, err := f.svc.GetMultipleValsAtTime(context.Background(), 1, []int64{4}, times)
	require.NoError(t, err)

	require.Contains(t, got, "dataset_4")
	assert.JSONEq(t, `1`, string(got["dataset_4"][times[0]]))
	assert.JSONEq(t, `3`, string(got["dataset_4"][times[1]]))
}

func TestGetValsBetweenTimes(t *testing.T) {
	f := dataFixture(t,
		&model.Dataset{ID: 4, Type: model.DataTypeTimeseries, Value: seasonalSeries},
		&model.Dataset{ID: 5, Type: model.DataTypeTimeseries, Value: relativeSeries},
		&model.Dataset{ID: 6, Type: model.DataTypeDescriptor, Value: "test"},
	)
	ctx := context.Background()

	t.Run("seasonal range is inclusive", func(t *testing.T) {
		values, err := f.svc.GetValsBetweenTimes(ctx, 1, 4, RangeQuery{
			Start: "2000-07-10T00:00:00",
			End:   "2000-07-10T01:15:00",
			Unit:  "minutes",
		})
		require.NoError(t, err)
		require.Len(t, values, 76)
		for _, v := range values {
			assert.JSONEq(t, `3`, string(v))
		}
	})

	t.Run("relative offsets", func(t *testing.T) {
		values, err := f.svc.GetValsBetweenTimes(ctx, 1, 5, RangeQuery{Start: "0", End: "2", Increment: float(0.5)})
		require.NoError(t, err)
		b, _ := json.Marshal(values)
		assert.JSONEq(t, `[10,10,20,20,30]`, string(b))
	})

	t.Run("times against a relative series", func(t *testing.T) {
		values, err := f.svc.GetValsBetweenTimes(ctx, 1, 5, RangeQuery{
			Start: "2000-07-10T00:00:00",
			End:   "2000-07-10T01:15:00",
			Unit:  "minutes",
		})
		require.NoError(t, err)
		assert.Empty(t, values)
	})

	t.Run("descriptor", func(t *testing.T) {
		values, err := f.svc.GetValsBetweenTimes(ctx, 1, 6, RangeQuery{Start: "2000-07-10", End: "2000-07-11", Unit: "minutes"})
		require.NoError(t, err)
		b, _ := json.Marshal(values)
		assert.JSONEq(t, `["test"]`, string(b))
	})

	t.Run("zero increment", func(t *testing.T) {
		_, err := f.svc.GetValsBetweenTimes(ctx, 1, 4, RangeQuery{Start: "2000-07-10", End: "2000-07-11", Unit: "minutes", Increment: float(0)})
		assert.True(t, fault.IsValidation(err))
	})

	t.Run("too many steps", func(t *testing.T) {
		f.cfg.MaxTimesteps = 10
		defer func() { f.cfg.MaxTimesteps = 100000 }()

		_, err := f.svc.GetValsBetweenTimes(ctx, 1, 4, RangeQuery{Start: "2000-07-10", End: "2000-07-11", Unit: "minutes"})
		assert.True(t, fault.IsValidation(err))
	})

	t.Run("unknown unit", func(t *testing.T) {
		_, err := f.svc.GetValsBetweenTimes(ctx, 1, 4, RangeQuery{Start: "2000-07-10", End: "2000-07-11", Unit: "fortnights"})
		assert.True(t, fault.IsValidation(err))
	})
}

func TestAddDatasetCollection(t *testing.T) {
	f := dataFixture(t)
	f.stores.DatasetsMock.On("GetDatasets", []int64{1, 2}).Return([]model.Dataset{{ID: 1}, {ID: 2}}, nil)
	f.stores.DatasetsMock.On("CreateCollection", mock.AnythingOfType("*model.DatasetCollection")).
		Run(func(args mock.Arguments) { args.Get(0).(*model.DatasetCollection).ID = 9 }).
		Return(nil)

	collection, err := f.svc.AddDatasetCollection(context.Background(), 1, CollectionInput{
		Name:       "test collection",
		DatasetIDs: []int64{1, 2, 1},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), collection.ID)
	assert.Len(t, collection.Items, 2)
}

func TestAddDatasetCollectionMissingDataset(t *testing.T) {
	f := dataFixture(t)
	f.stores.DatasetsMock.On("GetDatasets", []int64{1, 2}).Return([]model.Dataset{{ID: 1}}, nil)

	_, err := f.svc.AddDatasetCollection(context.Background(), 1, CollectionInput{Name: "c", DatasetIDs: []int64{1, 2}})
	require.Error(t, err)
	assert.Equal(t, "Dataset 2 not found", err.Error())
}

func TestCollectionDatasetsHideOthersHiddenData(t *testing.T) {
	f := dataFixture(t)
	f.stores.DatasetsMock.On("GetCollection", int64(9)).Return(&model.DatasetCollection{
		ID:    9,
		Items: []model.DatasetCollectionItem{{CollectionID: 9, DatasetID: 1}, {CollectionID: 9, DatasetID: 2}},
	}, nil)
	f.stores.DatasetsMock.On("GetDatasets", []int64{1, 2}).Return([]model.Dataset{
		{ID: 1},
		{ID: 2, Hidden: true, CreatedBy: 7},
	}, nil)

	datasets, err := f.svc.GetCollectionDatasets(context.Background(), 1, 9)
	require.NoError(t, err)
	require.Len(t, datasets, 1)
	assert.Equal(t, int64(1), datasets[0].ID)
}

func TestRemoveDatasetFromCollection(t *testing.T) {
	f := dataFixture(t)
	f.stores.DatasetsMock.On("RemoveCollectionItem", int64(9), int64(3)).Return(store.ErrNotFound)

	err := f.svc.RemoveDatasetFromCollection(context.Background(), 1, 3, 9)
	require.Error(t, err)
	assert.True(t, fault.IsNotFound(err))
	assert.Equal(t, "Dataset 3 is not in collection 9", err.Error())
}

func TestCollectionWritesNeedEditData(t *testing.T) {
	f := newFixture(t)
	f.stores.Grant(1, []string{PermViewData})

	err := f.svc.DeleteDatasetCollection(context.Background(), 1, 9)
	assert.True(t, fault.IsPermission(err))
}
