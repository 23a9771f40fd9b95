package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/doodlesbykumbi/hydra-in-go/pkg/fault"
)

func TestProjectPermissions(t *testing.T) {
	project := &Project{
		ID:        10,
		CreatedBy: 1,
		Owners: []ProjectOwner{
			{ProjectID: 10, Owner: Owner{UserID: 1, View: true, Edit: true, Share: true}},
			{ProjectID: 10, Owner: Owner{UserID: 2, View: true}},
			{ProjectID: 10, Owner: Owner{UserID: 3, View: true, Edit: true}},
		},
	}

	tests := []struct {
		name    string
		userID  int64
		isAdmin bool
		read    bool
		write   bool
		share   bool
	}{
		{"creator", 1, false, true, true, true},
		{"read only owner", 2, false, true, false, false},
		{"editor", 3, false, true, true, false},
		{"stranger", 4, false, false, false, false},
		{"admin", 4, true, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := func(err error, want bool) {
				if want {
					assert.NoError(t, err)
				} else {
					assert.True(t, fault.IsPermission(err), "expected permission error, got %v", err)
				}
			}
			check(project.CheckReadPermission(tt.userID, tt.isAdmin), tt.read)
			check(project.CheckWritePermission(tt.userID, tt.isAdmin), tt.write)
			check(project.CheckSharePermission(tt.userID, tt.isAdmin), tt.share)
		})
	}
}

func TestSetOwner(t *testing.T) {
	network := &Network{ID: 5, CreatedBy: 1}

	network.SetOwner(2, true, false, false)
	assert.Len(t, network.Owners, 1)
	assert.Equal(t, int64(5), network.Owners[0].NetworkID)
	assert.Error(t, network.CheckWritePermission(2, false))

	network.SetOwner(2, true, true, true)
	assert.Len(t, network.Owners, 1)
	assert.NoError(t, network.CheckWritePermission(2, false))
	assert.NoError(t, network.CheckSharePermission(2, false))

	project := &Project{ID: 9}
	project.SetOwner(7, true, true, true)
	assert.True(t, project.IsOwner(7))
	assert.False(t, project.IsOwner(8))
}

func TestDataTypeRoundTrip(t *testing.T) {
	for _, dt := range DataTypeValues() {
		parsed, err := DataTypeString(dt.String())
		assert.NoError(t, err)
		assert.Equal(t, dt, parsed)
	}

	var dt DataType
	assert.NoError(t, dt.Scan([]byte("timeseries")))
	assert.Equal(t, DataTypeTimeseries, dt)
	assert.Error(t, dt.Scan("matrix"))
}

func TestDatasetHash(t *testing.T) {
	a := &Dataset{Type: DataTypeScalar, Name: "flow", Unit: "m3", Value: "1.5"}
	b := &Dataset{Type: DataTypeScalar, Name: "flow", Unit: "m3", Value: "1.5"}
	c := &Dataset{Type: DataTypeScalar, Name: "flow", Unit: "m3", Value: "2"}

	assert.Equal(t, a.SetHash(), b.SetHash())
	assert.NotEqual(t, a.Hash, c.SetHash())
	assert.Len(t, a.Hash, 64)

	hidden := &Dataset{Type: DataTypeScalar, Name: "flow", Unit: "m3", Value: "1.5", Hidden: true, CreatedBy: 1}
	sameOwner := &Dataset{Type: DataTypeScalar, Name: "flow", Unit: "m3", Value: "1.5", Hidden: true, CreatedBy: 1}
	otherOwner := &Dataset{Type: DataTypeScalar, Name: "flow", Unit: "m3", Value: "1.5", Hidden: true, CreatedBy: 2}
	assert.NotEqual(t, a.Hash, hidden.SetHash(), "hidden data never matches public data")
	assert.Equal(t, hidden.Hash, sameOwner.SetHash())
	assert.NotEqual(t, hidden.Hash, otherOwner.SetHash(), "hidden data is not shared across creators")
}

func TestDatasetReadPermission(t *testing.T) {
	public := &Dataset{ID: 9, CreatedBy: 2}
	hidden := &Dataset{ID: 9, CreatedBy: 2, Hidden: true, Value: "42", Hash: "abc"}

	assert.NoError(t, public.CheckReadPermission(1, false))
	assert.NoError(t, hidden.CheckReadPermission(2, false))
	assert.NoError(t, hidden.CheckReadPermission(1, true))

	err := hidden.CheckReadPermission(1, false)
	assert.True(t, fault.IsPermission(err))
	assert.Contains(t, err.Error(), "dataset 9")

	redacted := hidden.Redacted()
	assert.Equal(t, int64(9), redacted.ID)
	assert.Empty(t, redacted.Value)
	assert.Empty(t, redacted.Hash)
	assert.True(t, redacted.Hidden)
}
