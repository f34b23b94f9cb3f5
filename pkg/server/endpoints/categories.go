package endpoints

import (
	"errors"
	"net/http"

	"github.com/arthurv/ticketd/pkg/model"
	"github.com/arthurv/ticketd/pkg/server"
	"github.com/arthurv/ticketd/pkg/server/store"
)

// CategoryRequest is the body of category create and update calls.
type CategoryRequest struct {
	Name string `json:"name"`
}

// RegisterCategoryEndpoints registers the category CRUD endpoints.
func RegisterCategoryEndpoints(s *server.Server) {
	categories := s.Stores.Categories
	router := s.Router

	router.HandleFunc("/api/category", handleListCategories(categories)).Methods("GET")
	router.HandleFunc("/api/category/{id:[0-9]+}", handleGetCategory(categories)).Methods("GET")
	router.HandleFunc("/api/category", handleCreateCategory(categories)).Methods("POST")
	router.HandleFunc("/api/category/{id:[0-9]+}", handleUpdateCategory(categories)).Methods("PUT")
	router.HandleFunc("/api/category/{id:[0-9]+}", handleDeleteCategory(categories)).Methods("DELETE")
}

func handleListCategories(categories store.Categories) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := categories.List()
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to list categories")
			return
		}
		respondWithJSON(w, http.StatusOK, list)
	}
}

func handleGetCategory(categories store.Categories) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idVar(r)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid category id")
			return
		}

		category, err := categories.FindByID(id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, "Category not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to fetch category")
			return
		}
		respondWithJSON(w, http.StatusOK, category)
	}
}

func handleCreateCategory(categories store.Categories) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body CategoryRequest
		if err := decodeBody(r, &body); err != nil || body.Name == "" {
			respondWithError(w, http.StatusBadRequest, "Name is required")
			return
		}

		category := &model.Category{Name: body.Name}
		if err := categories.Create(category); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to create category")
			return
		}
		respondWithJSON(w, http.StatusCreated, category)
	}
}

func handleUpdateCategory(categories store.Categories) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idVar(r)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid category id")
			return
		}

		category, err := categories.FindByID(id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, "Category not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to fetch category")
			return
		}

		var body CategoryRequest
		if err := decodeBody(r, &body); err != nil || body.Name == "" {
			respondWithError(w, http.StatusBadRequest, "Name is required")
			return
		}

		category.Name = body.Name
		if err := categories.Update(category); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to update category")
			return
		}
		respondWithJSON(w, http.StatusOK, category)
	}
}

func handleDeleteCategory(categories store.Categories) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idVar(r)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid category id")
			return
		}

		if err := categories.Delete(id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, "Category not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to delete category")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
