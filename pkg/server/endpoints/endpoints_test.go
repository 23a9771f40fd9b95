package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/hydra-in-go/pkg/config"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/hydra"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/model"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/server/store"
)

func TestStatusEndpoint(t *testing.T) {
	t.Run("database reachable", func(t *testing.T) {
		ts := newTestServer(t)
		ts.stores.HealthMock.On("CheckConnectivity").Return(nil)

		w := ts.do(t, "GET", "/status", 0, nil)
		assertStatus(t, w, http.StatusOK)

		var body StatusResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "ok", body.Status)
		assert.Equal(t, "dev", body.Version)
	})

	t.Run("database unreachable", func(t *testing.T) {
		ts := newTestServer(t)
		ts.stores.HealthMock.On("CheckConnectivity").Return(errors.New("connection refused"))

		w := ts.do(t, "GET", "/status", 0, nil)
		assertStatus(t, w, http.StatusServiceUnavailable)
		assert.Contains(t, w.Body.String(), "database connectivity check failed")
		assert.NotContains(t, w.Body.String(), "connection refused")
	})
}

func TestMetricsEndpointIsPublic(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, "GET", "/metrics", 0, nil)
	assertStatus(t, w, http.StatusOK)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestAPIRequiresToken(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, "GET", "/projects/1", 0, nil)
	assertStatus(t, w, http.StatusUnauthorized)
	assert.Equal(t, "Authorization missing", decodeError(t, w).Error.Message)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}

func TestWhoami(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, "GET", "/whoami", 7, nil)
	assertStatus(t, w, http.StatusOK)

	var body WhoamiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(7), body.UserID)
	assert.Equal(t, "alice", body.Username)
	assert.NotZero(t, body.TokenIAT)
}

func TestGetProjectEndpoint(t *testing.T) {
	owner := model.ProjectOwner{ProjectID: 3, Owner: model.Owner{UserID: 1, View: true}}

	tests := []struct {
		name       string
		setup      func(ts *testServer)
		wantStatus int
		wantCode   string
	}{
		{
			name: "readable project",
			setup: func(ts *testServer) {
				ts.stores.Grant(1, []string{hydra.PermGetProject})
				ts.stores.ProjectsMock.On("GetProject", int64(3)).
					Return(&model.Project{ID: 3, Name: "Basin", Status: model.StatusActive, Owners: []model.ProjectOwner{owner}}, nil)
				ts.stores.AttributesMock.On("ProjectAttributeData", int64(3)).Return([]model.ResourceScenario{}, nil)
				ts.stores.NetworksMock.On("ListProjectNetworks", int64(3), "").Return([]model.Network{}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "unknown project",
			setup: func(ts *testServer) {
				ts.stores.Grant(1, []string{hydra.PermGetProject})
				ts.stores.ProjectsMock.On("GetProject", int64(3)).Return(nil, store.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantCode:   "ResourceNotFoundError",
		},
		{
			name: "missing permission",
			setup: func(ts *testServer) {
				ts.stores.Grant(1, []string{})
			},
			wantStatus: http.StatusForbidden,
			wantCode:   "PermissionError",
		},
		{
			name: "store failure is not described",
			setup: func(ts *testServer) {
				ts.stores.Grant(1, []string{hydra.PermGetProject})
				ts.stores.ProjectsMock.On("GetProject", int64(3)).Return(nil, errors.New("pq: relation missing"))
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "InternalError",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			tt.setup(ts)

			w := ts.do(t, "GET", "/projects/3", 1, nil)
			assertStatus(t, w, tt.wantStatus)
			if tt.wantCode == "" {
				var view hydra.ProjectView
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
				assert.Equal(t, "Basin", view.Name)
				return
			}
			body := decodeError(t, w)
			assert.Equal(t, tt.wantCode, body.Error.Code)
			if tt.wantStatus == http.StatusInternalServerError {
				assert.Equal(t, "Internal server error", body.Error.Message)
			}
		})
	}
}

func TestAddProjectEndpointValidation(t *testing.T) {
	ts := newTestServer(t)

	t.Run("missing name", func(t *testing.T) {
		w := ts.do(t, "POST", "/projects", 1, map[string]string{"description": "x"})
		assertStatus(t, w, http.StatusBadRequest)
		assert.Equal(t, "HydraError", decodeError(t, w).Error.Code)
	})

	t.Run("unknown field", func(t *testing.T) {
		w := ts.do(t, "POST", "/projects", 1, map[string]string{"name": "Basin", "colour": "blue"})
		assertStatus(t, w, http.StatusBadRequest)
		assert.Contains(t, decodeError(t, w).Error.Message, "Invalid request body")
	})
}

func TestUserGroupsRequireAdmin(t *testing.T) {
	ts := newTestServer(t)
	ts.stores.Grant(2, []string{hydra.PermGetProject})

	w := ts.do(t, "GET", "/usergroups", 2, nil)
	assertStatus(t, w, http.StatusForbidden)
	assert.Equal(t, "User 2 does not have role admin", decodeError(t, w).Error.Message)
}

func TestDatasetValueEndpoints(t *testing.T) {
	scalar := &model.Dataset{ID: 5, Type: model.DataTypeScalar, Name: "capacity", Value: "12.5", CreatedBy: 1}

	t.Run("value at time", func(t *testing.T) {
		ts := newTestServer(t)
		ts.stores.Grant(1, []string{hydra.PermViewData})
		ts.stores.DatasetsMock.On("GetDataset", int64(5)).Return(scalar, nil)

		w := ts.do(t, "GET", "/datasets/5/values?time=2024-01-01", 1, nil)
		assertStatus(t, w, http.StatusOK)
		assert.JSONEq(t, "12.5", w.Body.String())
	})

	t.Run("multiple values need ids", func(t *testing.T) {
		ts := newTestServer(t)

		w := ts.do(t, "GET", "/datasets/values?time=2024-01-01", 1, nil)
		assertStatus(t, w, http.StatusBadRequest)
		assert.Equal(t, "No dataset ids specified", decodeError(t, w).Error.Message)
	})

	t.Run("invalid increment", func(t *testing.T) {
		ts := newTestServer(t)

		w := ts.do(t, "GET", "/datasets/5/range?start=0&end=3&increment=abc", 1, nil)
		assertStatus(t, w, http.StatusBadRequest)
	})
}

func TestRateLimitedCaller(t *testing.T) {
	ts := newTestServer(t, func(cfg *config.HydraConfig) {
		cfg.RateLimit = 1
		cfg.RateLimitBurst = 1
	})

	assertStatus(t, ts.do(t, "GET", "/whoami", 1, nil), http.StatusOK)
	w := ts.do(t, "GET", "/whoami", 1, nil)
	assertStatus(t, w, http.StatusTooManyRequests)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}
