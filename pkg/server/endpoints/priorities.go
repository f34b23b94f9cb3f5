package endpoints

import (
	"errors"
	"net/http"

	"github.com/arthurv/ticketd/pkg/model"
	"github.com/arthurv/ticketd/pkg/server"
	"github.com/arthurv/ticketd/pkg/server/store"
)

// PriorityRequest is the body of priority create and update calls.
type PriorityRequest struct {
	Name string `json:"name"`
}

// RegisterPriorityEndpoints registers the priority CRUD endpoints.
func RegisterPriorityEndpoints(s *server.Server) {
	priorities := s.Stores.Priorities
	router := s.Router

	router.HandleFunc("/api/priority", handleListPriorities(priorities)).Methods("GET")
	router.HandleFunc("/api/priority/{id:[0-9]+}", handleGetPriority(priorities)).Methods("GET")
	router.HandleFunc("/api/priority", handleCreatePriority(priorities)).Methods("POST")
	router.HandleFunc("/api/priority/{id:[0-9]+}", handleUpdatePriority(priorities)).Methods("PUT")
	router.HandleFunc("/api/priority/{id:[0-9]+}", handleDeletePriority(priorities)).Methods("DELETE")
}

func handleListPriorities(priorities store.Priorities) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := priorities.List()
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to list priorities")
			return
		}
		respondWithJSON(w, http.StatusOK, list)
	}
}

func handleGetPriority(priorities store.Priorities) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idVar(r)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid priority id")
			return
		}

		priority, err := priorities.FindByID(id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, "Priority not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to fetch priority")
			return
		}
		respondWithJSON(w, http.StatusOK, priority)
	}
}

func handleCreatePriority(priorities store.Priorities) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body PriorityRequest
		if err := decodeBody(r, &body); err != nil || body.Name == "" {
			respondWithError(w, http.StatusBadRequest, "Name is required")
			return
		}

		priority := &model.Priority{Name: body.Name}
		if err := priorities.Create(priority); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to create priority")
			return
		}
		respondWithJSON(w, http.StatusCreated, priority)
	}
}

func handleUpdatePriority(priorities store.Priorities) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idVar(r)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid priority id")
			return
		}

		priority, err := priorities.FindByID(id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, "Priority not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to fetch priority")
			return
		}

		var body PriorityRequest
		if err := decodeBody(r, &body); err != nil || body.Name == "" {
			respondWithError(w, http.StatusBadRequest, "Name is required")
			return
		}

		priority.Name = body.Name
		if err := priorities.Update(priority); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to update priority")
			return
		}
		respondWithJSON(w, http.StatusOK, priority)
	}
}

func handleDeletePriority(priorities store.Priorities) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idVar(r)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid priority id")
			return
		}

		if err := priorities.Delete(id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, "Priority not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to delete priority")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
