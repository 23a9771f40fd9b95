package endpoints

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/hydra-in-go/pkg/audit"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/config"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/hydra"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/logging"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/server"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/server/store/storetest"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/token"
)

type testServer struct {
	*server.Server
	stores *storetest.Stores
	signer *token.Signer
	cfg    *config.HydraConfig
}

// newTestServer builds a server with every endpoint registered on mocked
// stores.
func newTestServer(t *testing.T, configure ...func(*config.HydraConfig)) *testServer {
	t.Helper()
	audit.DefaultLogger.SetWriter(io.Discard)

	ts := &testServer{stores: storetest.NewStores(), cfg: config.Default()}
	for _, fn := range configure {
		fn(ts.cfg)
	}
	signer, err := token.NewSigner([]byte("test-secret"))
	require.NoError(t, err)
	ts.signer = signer

	getConfig := func() *config.HydraConfig { return ts.cfg }
	svc := hydra.New(ts.stores,
		hydra.WithLogger(logging.Discard()),
		hydra.WithConfig(getConfig),
		hydra.WithAudit(func(audit.Event) {}),
	)
	ts.Server = server.NewServer(svc, signer, getConfig, logging.Discard(), "127.0.0.1", "0")
	RegisterAll(ts.Server)

	t.Cleanup(func() { ts.stores.AssertExpectations(t) })
	return ts
}

// do sends a request as userID. A userID of 0 sends no token.
func (ts *testServer) do(t *testing.T, method, path string, userID int64, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if userID != 0 {
		tok, err := ts.signer.Issue(userID, "alice", time.Hour)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	w := httptest.NewRecorder()
	ts.Handler().ServeHTTP(w, req)
	return w
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func assertStatus(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
}

