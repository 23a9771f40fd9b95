package endpoints

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/doodlesbykumbi/hydra-in-go/pkg/hydra"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/server"
)

func RegisterProjectsEndpoints(s *server.Server) {
	svc := s.Service
	api := s.API

	// GET /projects?name=... - Caller's projects with a name
	api.HandleFunc("/projects", handleGetProjectByName(svc)).Methods("GET").Queries("name", "{name}")

	// GET /projects?network_id=... - Caller's project containing a network
	api.HandleFunc("/projects", handleGetProjectByNetworkID(svc)).Methods("GET").Queries("network_id", "{network_id:[0-9]+}")

	// GET /projects?user_id=&include_shared=&ids= - List a user's projects
	api.HandleFunc("/projects", handleGetProjects(svc)).Methods("GET")

	api.HandleFunc("/projects", handleAddProject(svc)).Methods("POST")
	api.HandleFunc("/projects/{project_id:[0-9]+}", handleGetProject(svc)).Methods("GET")
	api.HandleFunc("/projects/{project_id:[0-9]+}", handleUpdateProject(svc)).Methods("PUT")
	api.HandleFunc("/projects/{project_id:[0-9]+}", handleDeleteProject(svc)).Methods("DELETE")
	api.HandleFunc("/projects/{project_id:[0-9]+}/status", handleSetProjectStatus(svc)).Methods("PUT")
	api.HandleFunc("/projects/{project_id:[0-9]+}/networks", handleGetNetworks(svc)).Methods("GET")
	api.HandleFunc("/projects/{project_id:[0-9]+}/attribute_data", handleGetProjectAttributeData(svc)).Methods("GET")
	api.HandleFunc("/projects/{project_id:[0-9]+}/record", handleGetProjectRecord(svc)).Methods("GET")
	api.HandleFunc("/projects/{project_id:[0-9]+}/clone", handleCloneProject(svc)).Methods("POST")
	api.HandleFunc("/projects/{project_id:[0-9]+}/share", handleShareProject(svc)).Methods("POST")
}

func handleAddProject(svc *hydra.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in hydra.ProjectInput
		if err := decodeBody(r, &in); err != nil {
			respondWithFault(w, err)
			return
		}
		if strings.TrimSpace(in.Name) == "" {
			badRequest(w, "A project needs a name")
			return
		}

		project, err := svc.AddProject(r.Context(), callerID(r), in)
		if err != nil {
			respondWithFault(w, err)
			return
		}
		respondWithJSON(w, http.StatusCreated, project)
	}
}

func handleUpdateProject(svc *hydra.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := pathID(r, "project_id")
		if err != nil {
			respondWithFault(w, err)
			return
		}
		var in hydra.ProjectInput
		if err := decodeBody(r, &in); err != nil {
			respondWithFault(w, err)
			return
		}
		in.ID = projectID

		project, err := svc.UpdateProject(r.Context(), callerID(r), in)
		if err != nil {
			respondWithFault(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, project)
	}
}

func handleGetProject(svc *hydra.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := pathID(r, "project_id")
		if err != nil {
			respondWithFault(w, err)
			return
		}

		view, err := svc.GetProject(r.Context(), callerID(r), projectID, queryBool(r, "include_deleted_networks"))
		if err != nil {
			respondWithFault(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, view)
	}
}

func handleGetProjectByName(svc *hydra.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := svc.GetProjectByName(r.Context(), callerID(r), mux.Vars(r)["name"])
		if err != nil {
			respondWithFault(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, projects)
	}
}

func handleGetProjectByNetworkID(svc *hydra.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		networkID, err := pathID(r, "network_id")
		if err != nil {
			respondWithFault(w, err)
			return
		}

		project, err := svc.GetProjectByNetworkID(r.Context(), callerID(r), networkID)
		if err != nil {
			respondWithFault(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, project)
	}
}

func handleGetProjects(svc *hydra.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := callerID(r)
		uid := userID
		if raw := r.URL.Query().Get("user_id"); raw != "" {
			parsed, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				badRequest(w, "Invalid user_id %q", raw)
				return
			}
			uid = parsed
		}
		ids, err := queryIDs(r, "ids")
		if err != nil {
			respondWithFault(w, err)
			return
		}

		q := hydra.ProjectsQuery{IncludeShared: true, IDs: ids}
		if r.URL.Query().Has("include_shared") {
			q.IncludeShared = queryBool(r, "include_shared")
		}

		views, err := svc.GetProjects(r.Context(), userID, uid, q)
		if err != nil {
			respondWithFault(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, views)
	}
}

func handleGetProjectAttributeData(svc *hydra.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := pathID(r, "project_id")
		if err != nil {
			respondWithFault(w, err)
			return
		}

		data, err := svc.GetProjectAttributeData(r.Context(), callerID(r), projectID)
		if err != nil {
			respondWithFault(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, data)
	}
}

type statusRequest struct {
	Status string `json:"status"`
}

func handleSetProjectStatus(svc *hydra.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := pathID(r, "project_id")
		if err != nil {
			respondWithFault(w, err)
			return
		}
		var body statusRequest
		if err := decodeBody(r, &body); err != nil {
			respondWithFault(w, err)
			return
		}

		if err := svc.SetProjectStatus(r.Context(), callerID(r), projectID, body.Status); err != nil {
			respondWithFault(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleDeleteProject(svc *hydra.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := pathID(r, "project_id")
		if err != nil {
			respondWithFault(w, err)
			return
		}

		if err := svc.DeleteProject(r.Context(), callerID(r), projectID); err != nil {
			respondWithFault(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleGetNetworks(svc *hydra.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := pathID(r, "project_id")
		if err != nil {
			respondWithFault(w, err)
			return
		}

		networks, err := svc.GetNetworks(r.Context(), callerID(r), projectID, queryBool(r, "include_data"))
		if err != nil {
			respondWithFault(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, networks)
	}
}

func handleGetProjectRecord(svc *hydra.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := pathID(r, "project_id")
		if err != nil {
			respondWithFault(w, err)
			return
		}

		var q hydra.RecordQuery
		if raw := r.URL.Query().Get("levels"); raw != "" {
			levels, err := strconv.Atoi(raw)
			if err != nil || levels < 0 {
				badRequest(w, "Invalid levels %q", raw)
				return
			}
			q.Levels = levels
		}
		for _, raw := range r.URL.Query()["ignore"] {
			q.Ignore = append(q.Ignore, strings.Split(raw, ",")...)
		}

		record, err := svc.GetProjectRecord(r.Context(), callerID(r), projectID, q)
		if err != nil {
			respondWithFault(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, record)
	}
}

type cloneResponse struct {
	ID int64 `json:"id"`
}

func handleCloneProject(svc *hydra.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := pathID(r, "project_id")
		if err != nil {
			respondWithFault(w, err)
			return
		}
		var in hydra.CloneProjectInput
		if r.ContentLength != 0 {
			if err := decodeBody(r, &in); err != nil {
				respondWithFault(w, err)
				return
			}
		}

		newID, err := svc.CloneProject(r.Context(), callerID(r), projectID, in)
		if err != nil {
			respondWithFault(w, err)
			return
		}
		respondWithJSON(w, http.StatusCreated, cloneResponse{ID: newID})
	}
}

func handleShareProject(svc *hydra.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := pathID(r, "project_id")
		if err != nil {
			respondWithFault(w, err)
			return
		}
		var in hydra.ShareInput
		if err := decodeBody(r, &in); err != nil {
			respondWithFault(w, err)
			return
		}
		if len(in.Usernames) == 0 {
			badRequest(w, "No usernames given")
			return
		}

		if err := svc.ShareProject(r.Context(), callerID(r), projectID, in); err != nil {
			respondWithFault(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
