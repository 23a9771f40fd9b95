package endpoints

import (
	"github.com/doodlesbykumbi/hydra-in-go/pkg/server"
)

// RegisterAll registers all API endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterStatusEndpoints(srv)
	RegisterWhoamiEndpoint(srv)
	RegisterProjectsEndpoints(srv)
	RegisterNetworksEndpoints(srv)
	RegisterUserGroupsEndpoints(srv)
	RegisterDatasetsEndpoints(srv)
}
