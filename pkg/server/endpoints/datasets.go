package endpoints

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/doodlesbykumbi/hydra-in-go/pkg/hydra"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/server"
)

func RegisterDatasetsEndpoints(s *server.Server) {
	svc := s.Service
	api := s.API

	api.HandleFunc("/datasets/values", handleGetMultipleValsAtTime(svc)).Methods("GET")
	api.HandleFunc("/datasets/{dataset_id:[0-9]+}", handleGetDataset(svc)).Methods("GET")
	api.HandleFunc("/datasets/{dataset_id:[0-9]+}/values", handleGetValAtTime(svc)).Methods("GET")
	api.HandleFunc("/datasets/{dataset_id:[0-9]+}/range", handleGetValsBetweenTimes(svc)).Methods("GET")

	// GET /collections?name=... - Collections whose name contains the text
	api.HandleFunc("/collections", handleGetCollectionsLikeName(svc)).Methods("GET").Queries("name", "{name}")
	api.HandleFunc("/collections", handleAddDatasetCollection(svc)).Methods("POST")
	api.HandleFunc("/collections/{collection_id:[0-9]+}", handleDeleteDatasetCollection(svc)).Methods("DELETE")
	api.HandleFunc("/collections/{collection_id:[0-9]+}/datasets", handleGetCollectionDatasets(svc)).Methods("GET")
	api.HandleFunc("/collections/{collection_id:[0-9]+}/datasets/{dataset_id:[0-9]+}", handleAddDatasetToCollection(svc)).Methods("PUT")
	api.HandleFunc("/collections/{collection_id:[0-9]+}/datasets/{dataset_id:[0-9]+}", handleRemoveDatasetFromCollection(svc)).Methods("DELETE")
}

func handleGetDataset(svc *hydra.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		datasetID, err := pathID(r, "dataset_id")
		if err != nil {
			respondWithFault(w, err)
			return
		}

		dataset, err := svc.GetDataset(r.Context(), callerID(r), datasetID)
		if err != nil {
			respondWithFault(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, dataset)
	}
}

func handleGetValAtTime(svc *hydra.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		datasetID, err := pathID(r, "dataset_id")
		if err != nil {
			respondWithFault(w, err)
			return
		}

		value, err := svc.GetValAtTime(r.Context(), callerID(r), datasetID, r.URL.Query()["time"])
		if err != nil {
			respondWithFault(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, value)
	}
}

func handleGetMultipleValsAtTime(svc *hydra.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids, err := queryIDs(r, "ids")
		if err != nil {
			respondWithFault(w, err)
			return
		}
		if len(ids) == 0 {
			badRequest(w, "No dataset ids specified")
			return
		}

		values, err := svc.GetMultipleValsAtTime(r.Context(), callerID(r), ids, r.URL.Query()["time"])
		if err != nil {
			respondWithFault(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, values)
	}
}

func handleGetValsBetweenTimes(svc *hydra.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		datasetID, err := pathID(r, "dataset_id")
		if err != nil {
			respondWithFault(w, err)
			return
		}

		query := r.URL.Query()
		q := hydra.RangeQuery{
			Start: query.Get("start"),
			End:   query.Get("end"),
			Unit:  query.Get("unit"),
		}
		if raw := query.Get("increment"); raw != "" {
			inc, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				badRequest(w, "Invalid increment %q", raw)
				return
			}
			q.Increment = &inc
		}

		values, err := svc.GetValsBetweenTimes(r.Context(), callerID(r), datasetID, q)
		if err != nil {
			respondWithFault(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, values)
	}
}

func handleGetCollectionsLikeName(svc *hydra.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		collections, err := svc.GetCollectionsLikeName(r.Context(), callerID(r), mux.Vars(r)["name"])
		if err != nil {
			respondWithFault(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, collections)
	}
}

func handleGetCollectionDatasets(svc *hydra.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		collectionID, err := pathID(r, "collection_id")
		if err != nil {
			respondWithFault(w, err)
			return
		}

		datasets, err := svc.GetCollectionDatasets(r.Context(), callerID(r), collectionID)
		if err != nil {
			respondWithFault(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, datasets)
	}
}

func handleAddDatasetCollection(svc *hydra.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in hydra.CollectionInput
		if err := decodeBody(r, &in); err != nil {
			respondWithFault(w, err)
			return
		}

		collection, err := svc.AddDatasetCollection(r.Context(), callerID(r), in)
		if err != nil {
			respondWithFault(w, err)
			return
		}
		respondWithJSON(w, http.StatusCreated, collection)
	}
}

// collectionItem parses the collection and dataset ids of an item route.
func collectionItem(r *http.Request) (int64, int64, error) {
	collectionID, err := pathID(r, "collection_id")
	if err != nil {
		return 0, 0, err
	}
	datasetID, err := pathID(r, "dataset_id")
	if err != nil {
		return 0, 0, err
	}
	return collectionID, datasetID, nil
}

func handleAddDatasetToCollection(svc *hydra.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		collectionID, datasetID, err := collectionItem(r)
		if err != nil {
			respondWithFault(w, err)
			return
		}

		if err := svc.AddDatasetToCollection(r.Context(), callerID(r), datasetID, collectionID); err != nil {
			respondWithFault(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleRemoveDatasetFromCollection(svc *hydra.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		collectionID, datasetID, err := collectionItem(r)
		if err != nil {
			respondWithFault(w, err)
			return
		}

		if err := svc.RemoveDatasetFromCollection(r.Context(), callerID(r), datasetID, collectionID); err != nil {
			respondWithFault(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleDeleteDatasetCollection(svc *hydra.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		collectionID, err := pathID(r, "collection_id")
		if err != nil {
			respondWithFault(w, err)
			return
		}

		if err := svc.DeleteDatasetCollection(r.Context(), callerID(r), collectionID); err != nil {
			respondWithFault(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
