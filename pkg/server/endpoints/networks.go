package endpoints

import (
	"net/http"
	"strings"

	"github.com/doodlesbykumbi/hydra-in-go/pkg/hydra"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/server"
)

func RegisterNetworksEndpoints(s *server.Server) {
	svc := s.Service
	api := s.API

	api.HandleFunc("/networks", handleAddNetwork(svc)).Methods("POST")
	api.HandleFunc("/networks/{network_id:[0-9]+}", handleGetNetwork(svc)).Methods("GET")
	api.HandleFunc("/networks/{network_id:[0-9]+}/project", handleGetNetworkProject(svc)).Methods("GET")
	api.HandleFunc("/networks/{network_id:[0-9]+}/clone", handleCloneNetwork(svc)).Methods("POST")
}

func handleAddNetwork(svc *hydra.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in hydra.NetworkInput
		if err := decodeBody(r, &in); err != nil {
			respondWithFault(w, err)
			return
		}
		if strings.TrimSpace(in.Name) == "" {
			badRequest(w, "A network needs a name")
			return
		}

		network, err := svc.AddNetwork(r.Context(), callerID(r), in)
		if err != nil {
			respondWithFault(w, err)
			return
		}
		respondWithJSON(w, http.StatusCreated, network)
	}
}

func handleGetNetwork(svc *hydra.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		networkID, err := pathID(r, "network_id")
		if err != nil {
			respondWithFault(w, err)
			return
		}

		q := hydra.NetworkQuery{
			Summary:     queryBool(r, "summary"),
			IncludeData: queryBool(r, "include_data"),
		}
		network, err := svc.GetNetwork(r.Context(), callerID(r), networkID, q)
		if err != nil {
			respondWithFault(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, network)
	}
}

func handleGetNetworkProject(svc *hydra.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		networkID, err := pathID(r, "network_id")
		if err != nil {
			respondWithFault(w, err)
			return
		}

		project, err := svc.GetNetworkProject(r.Context(), callerID(r), networkID)
		if err != nil {
			respondWithFault(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, project)
	}
}

func handleCloneNetwork(svc *hydra.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		networkID, err := pathID(r, "network_id")
		if err != nil {
			respondWithFault(w, err)
			return
		}
		var in hydra.CloneNetworkInput
		if r.ContentLength != 0 {
			if err := decodeBody(r, &in); err != nil {
				respondWithFault(w, err)
				return
			}
		}

		newID, err := svc.CloneNetwork(r.Context(), callerID(r), networkID, in)
		if err != nil {
			respondWithFault(w, err)
			return
		}
		respondWithJSON(w, http.StatusCreated, cloneResponse{ID: newID})
	}
}
