package endpoints

import (
	"net/http"

	"github.com/doodlesbykumbi/hydra-in-go/pkg/metrics"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/server"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/server/store"
)

// StatusResponse represents the response from /status
type StatusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Error   string `json:"error,omitempty"`
}

// RegisterStatusEndpoints registers the unauthenticated status and metrics
// endpoints
func RegisterStatusEndpoints(s *server.Server) {
	s.Router.HandleFunc("/status", handleStatus(s.Stores.Health(), s.Version)).Methods("GET")
	s.Router.Handle("/metrics", metrics.Handler()).Methods("GET")
}

func handleStatus(health store.HealthStore, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := health.CheckConnectivity(); err != nil {
			respondWithJSON(w, http.StatusServiceUnavailable, StatusResponse{
				Status:  "error",
				Version: version,
				Error:   "database connectivity check failed",
			})
			return
		}
		respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok", Version: version})
	}
}
