package endpoints

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/doodlesbykumbi/hydra-in-go/pkg/hydra"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/server"
)

func RegisterUserGroupsEndpoints(s *server.Server) {
	svc := s.Service
	api := s.API

	api.HandleFunc("/usergroup_types", handleAddUserGroupType(svc)).Methods("POST")

	// GET /usergroups?name=... - Look up a group by name
	api.HandleFunc("/usergroups", handleGetUserGroupByName(svc)).Methods("GET").Queries("name", "{name}")
	api.HandleFunc("/usergroups", handleGetAllUserGroups(svc)).Methods("GET")
	api.HandleFunc("/usergroups", handleAddUserGroup(svc)).Methods("POST")

	group := api.PathPrefix("/usergroups/{group_id:[0-9]+}").Subrouter()
	group.HandleFunc("", handleGetUserGroup(svc)).Methods("GET")
	group.HandleFunc("", handleDeleteUserGroup(svc)).Methods("DELETE")
	group.HandleFunc("/children", handleGetUserGroups(svc)).Methods("GET")
	group.HandleFunc("/members", handleGetUserGroupMembers(svc)).Methods("GET")
	group.HandleFunc("/members/{user_id:[0-9]+}", handleAddUserGroupMember(svc)).Methods("PUT")
	group.HandleFunc("/members/{user_id:[0-9]+}", handleRemoveUserGroupMember(svc)).Methods("DELETE")
	group.HandleFunc("/members/{user_id:[0-9]+}/role", handleSetUserGroupRole(svc)).Methods("PUT")
}

type nameRequest struct {
	Name string `json:"name"`
}

func handleAddUserGroupType(svc *hydra.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body nameRequest
		if err := decodeBody(r, &body); err != nil {
			respondWithFault(w, err)
			return
		}
		if body.Name == "" {
			badRequest(w, "A user group type needs a name")
			return
		}

		groupType, err := svc.AddUserGroupType(r.Context(), callerID(r), body.Name)
		if err != nil {
			respondWithFault(w, err)
			return
		}
		respondWithJSON(w, http.StatusCreated, groupType)
	}
}

func handleAddUserGroup(svc *hydra.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in hydra.UserGroupInput
		if err := decodeBody(r, &in); err != nil {
			respondWithFault(w, err)
			return
		}
		if in.Name == "" {
			badRequest(w, "A user group needs a name")
			return
		}

		group, err := svc.AddUserGroup(r.Context(), callerID(r), in)
		if err != nil {
			respondWithFault(w, err)
			return
		}
		respondWithJSON(w, http.StatusCreated, group)
	}
}

func handleGetUserGroup(svc *hydra.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groupID, err := pathID(r, "group_id")
		if err != nil {
			respondWithFault(w, err)
			return
		}

		group, err := svc.GetUserGroup(r.Context(), callerID(r), groupID)
		if err != nil {
			respondWithFault(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, group)
	}
}

func handleGetUserGroupByName(svc *hydra.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		group, err := svc.GetUserGroupByName(r.Context(), callerID(r), mux.Vars(r)["name"])
		if err != nil {
			respondWithFault(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, group)
	}
}

func handleGetAllUserGroups(svc *hydra.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groups, err := svc.GetAllUserGroups(r.Context(), callerID(r))
		if err != nil {
			respondWithFault(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, groups)
	}
}

func handleGetUserGroups(svc *hydra.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groupID, err := pathID(r, "group_id")
		if err != nil {
			respondWithFault(w, err)
			return
		}

		groups, err := svc.GetUserGroups(r.Context(), callerID(r), groupID)
		if err != nil {
			respondWithFault(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, groups)
	}
}

func handleDeleteUserGroup(svc *hydra.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groupID, err := pathID(r, "group_id")
		if err != nil {
			respondWithFault(w, err)
			return
		}

		if err := svc.DeleteUserGroup(r.Context(), callerID(r), groupID); err != nil {
			respondWithFault(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleGetUserGroupMembers(svc *hydra.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groupID, err := pathID(r, "group_id")
		if err != nil {
			respondWithFault(w, err)
			return
		}

		members, err := svc.GetUserGroupMembers(r.Context(), callerID(r), groupID)
		if err != nil {
			respondWithFault(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, members)
	}
}

// groupMember parses the group and user ids of a membership route.
func groupMember(r *http.Request) (int64, int64, error) {
	groupID, err := pathID(r, "group_id")
	if err != nil {
		return 0, 0, err
	}
	userID, err := pathID(r, "user_id")
	if err != nil {
		return 0, 0, err
	}
	return groupID, userID, nil
}

func handleAddUserGroupMember(svc *hydra.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groupID, memberID, err := groupMember(r)
		if err != nil {
			respondWithFault(w, err)
			return
		}

		if err := svc.AddUserGroupMember(r.Context(), callerID(r), groupID, memberID); err != nil {
			respondWithFault(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleRemoveUserGroupMember(svc *hydra.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groupID, memberID, err := groupMember(r)
		if err != nil {
			respondWithFault(w, err)
			return
		}

		if err := svc.RemoveUserGroupMember(r.Context(), callerID(r), groupID, memberID); err != nil {
			respondWithFault(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type roleRequest struct {
	Role string `json:"role"`
}

func handleSetUserGroupRole(svc *hydra.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groupID, memberID, err := groupMember(r)
		if err != nil {
			respondWithFault(w, err)
			return
		}
		var body roleRequest
		if err := decodeBody(r, &body); err != nil {
			respondWithFault(w, err)
			return
		}

		if err := svc.SetUserGroupRole(r.Context(), callerID(r), groupID, memberID, body.Role); err != nil {
			respondWithFault(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
