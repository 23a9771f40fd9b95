package endpoints

import (
	"net/http"

	"github.com/doodlesbykumbi/hydra-in-go/pkg/audit"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/identity"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/server"
)

// WhoamiResponse represents the response from the /whoami endpoint
type WhoamiResponse struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	TokenIAT int64  `json:"token_iat,omitempty"`
	ClientIP string `json:"client_ip,omitempty"`
}

// RegisterWhoamiEndpoint registers the /whoami endpoint
func RegisterWhoamiEndpoint(s *server.Server) {
	s.API.HandleFunc("/whoami", handleWhoami()).Methods("GET")
}

func handleWhoami() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.Get(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, map[string]string{
				"code":    "Unauthorized",
				"message": "Unable to determine identity",
			})
			return
		}

		audit.Log(audit.WhoamiEvent{
			UserID:    id.UserID,
			Username:  id.Username,
			ClientIP:  id.ClientIP(),
			RequestID: id.RequestID,
			Success:   true,
		})

		response := WhoamiResponse{
			UserID:   id.UserID,
			Username: id.Username,
			ClientIP: id.ClientIP(),
		}
		if !id.IssuedAt.IsZero() {
			response.TokenIAT = id.IssuedAt.Unix()
		}
		respondWithJSON(w, http.StatusOK, response)
	}
}
