package endpoints

import (
	"errors"
	"net/http"

	"github.com/arthurv/ticketd/pkg/authn"
	"github.com/arthurv/ticketd/pkg/model"
	"github.com/arthurv/ticketd/pkg/server"
	"github.com/arthurv/ticketd/pkg/server/store"
)

// UserRequest is the body of the administrative user create and update
// calls. Role is the lowercase role name; an empty role means standard on
// create and no role change on update. An empty password on update keeps the
// stored credential.
type UserRequest struct {
	Handle   string `json:"handle"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// RegisterUserEndpoints registers the user-management endpoints. The whole
// /api/user surface is gated to administrators.
func RegisterUserEndpoints(s *server.Server) {
	users := s.Stores.Users
	authenticator := s.Authenticator
	router := s.Router

	router.HandleFunc("/api/user", handleListUsers(users)).Methods("GET")
	router.HandleFunc("/api/user/{id:[0-9]+}", handleGetUser(users)).Methods("GET")
	router.HandleFunc("/api/user", handleCreateUser(authenticator)).Methods("POST")
	router.HandleFunc("/api/user/{id:[0-9]+}", handleUpdateUser(users, authenticator)).Methods("PUT")
	router.HandleFunc("/api/user/{id:[0-9]+}", handleDeleteUser(users)).Methods("DELETE")
}

func handleListUsers(users store.Users) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := users.List()
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to list users")
			return
		}
		respondWithJSON(w, http.StatusOK, list)
	}
}

func handleGetUser(users store.Users) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idVar(r)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid user id")
			return
		}

		user, err := users.FindByID(id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, "User not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to fetch user")
			return
		}
		respondWithJSON(w, http.StatusOK, user)
	}
}

func handleCreateUser(authenticator *authn.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body UserRequest
		if err := decodeBody(r, &body); err != nil {
			respondWithError(w, http.StatusBadRequest, "Malformed request body")
			return
		}

		role := model.RoleStandard
		if body.Role != "" {
			var err error
			role, err = model.RoleString(body.Role)
			if err != nil {
				respondWithError(w, http.StatusBadRequest, "Unknown role")
				return
			}
		}

		user, err := authenticator.CreateWithRole(body.Handle, body.Password, role)
		if err != nil {
			switch {
			case errors.Is(err, authn.ErrInvalidInput):
				respondWithError(w, http.StatusBadRequest, "Handle and password are required")
			case errors.Is(err, store.ErrDuplicateHandle):
				respondWithError(w, http.StatusConflict, "Handle already taken")
			default:
				respondWithError(w, http.StatusInternalServerError, "Failed to create user")
			}
			return
		}
		respondWithJSON(w, http.StatusCreated, user)
	}
}

func handleUpdateUser(users store.Users, authenticator *authn.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idVar(r)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid user id")
			return
		}

		user, err := users.FindByID(id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, "User not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to fetch user")
			return
		}

		var body UserRequest
		if err := decodeBody(r, &body); err != nil {
			respondWithError(w, http.StatusBadRequest, "Malformed request body")
			return
		}

		if body.Handle != "" {
			user.Handle = body.Handle
		}
		if body.Role != "" {
			role, err := model.RoleString(body.Role)
			if err != nil {
				respondWithError(w, http.StatusBadRequest, "Unknown role")
				return
			}
			user.Role = role
		}

		// The stored hash survives unless a new password arrives.
		if err := users.Update(user); err != nil {
			if errors.Is(err, store.ErrDuplicateHandle) {
				respondWithError(w, http.StatusConflict, "Handle already taken")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to update user")
			return
		}

		if body.Password != "" {
			if err := authenticator.ResetPassword(user.Handle, body.Password); err != nil {
				respondWithError(w, http.StatusInternalServerError, "Failed to update password")
				return
			}
		}

		respondWithJSON(w, http.StatusOK, user)
	}
}

func handleDeleteUser(users store.Users) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idVar(r)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid user id")
			return
		}

		if err := users.Delete(id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, "User not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to delete user")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
