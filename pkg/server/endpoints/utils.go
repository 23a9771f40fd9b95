package endpoints

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/doodlesbykumbi/hydra-in-go/pkg/fault"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/identity"
)

func respondWithError(w http.ResponseWriter, code int, payload interface{}) {
	respondWithJSON(w, code, map[string]interface{}{"error": payload})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondWithFault writes err as {"error":{"code","message"}}. Internal
// errors are not described to the client.
func respondWithFault(w http.ResponseWriter, err error) {
	status := fault.HTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	}
	respondWithError(w, status, map[string]string{
		"code":    fault.Code(err),
		"message": message,
	})
}

func badRequest(w http.ResponseWriter, format string, args ...interface{}) {
	respondWithFault(w, fault.Validation(format, args...))
}

// callerID returns the authenticated user id. The JWT middleware guarantees
// an identity on API routes.
func callerID(r *http.Request) int64 {
	id, ok := identity.Get(r.Context())
	if !ok {
		return 0
	}
	return id.UserID
}

func pathID(r *http.Request, name string) (int64, error) {
	v := mux.Vars(r)[name]
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fault.Validation("Invalid %s %q", name, v)
	}
	return id, nil
}

func decodeBody(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fault.Validation("Invalid request body: %v", err)
	}
	return nil
}

func queryBool(r *http.Request, name string) bool {
	switch strings.ToLower(r.URL.Query().Get(name)) {
	case "true", "1", "y", "yes":
		return true
	}
	return false
}

// queryIDs parses a comma separated id list, also accepting the parameter
// repeated.
func queryIDs(r *http.Request, name string) ([]int64, error) {
	var ids []int64
	for _, raw := range r.URL.Query()[name] {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return nil, fault.Validation("Invalid %s %q", name, part)
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}
