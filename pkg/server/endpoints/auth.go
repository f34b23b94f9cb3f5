package endpoints

import (
	"errors"
	"net/http"

	"github.com/arthurv/ticketd/pkg/audit"
	"github.com/arthurv/ticketd/pkg/authn"
	"github.com/arthurv/ticketd/pkg/identity"
	"github.com/arthurv/ticketd/pkg/server"
	"github.com/arthurv/ticketd/pkg/server/store"
	"github.com/arthurv/ticketd/pkg/token"
)

// CredentialsRequest is the body of register and login calls.
type CredentialsRequest struct {
	Handle   string `json:"handle"`
	Password string `json:"password"`
}

// LoginResponse is returned on successful login. Role reflects the role at
// the moment of issue; the identity filter rechecks the live record on every
// request.
type LoginResponse struct {
	Token  string `json:"token"`
	Type   string `json:"type"`
	Handle string `json:"handle"`
	Role   string `json:"role"`
}

// ProfileResponse describes the authenticated caller.
type ProfileResponse struct {
	ID     uint   `json:"id"`
	Handle string `json:"handle"`
	Role   string `json:"role"`
}

// RegisterAuthEndpoints registers the registration, login and profile
// endpoints.
func RegisterAuthEndpoints(s *server.Server) {
	authenticator := s.Authenticator
	codec := s.Codec
	router := s.Router

	router.HandleFunc("/api/auth/register", handleRegister(authenticator)).Methods("POST")
	router.HandleFunc("/api/auth/login", handleLogin(authenticator, codec)).Methods("POST")
	router.HandleFunc("/api/auth/profile", handleProfile()).Methods("GET")
}

func handleRegister(authenticator *authn.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body CredentialsRequest
		if err := decodeBody(r, &body); err != nil {
			respondWithError(w, http.StatusBadRequest, "Malformed request body")
			return
		}

		user, err := authenticator.Register(body.Handle, body.Password)
		if err != nil {
			audit.Log(audit.RegistrationEvent{
				Handle:       body.Handle,
				ClientIP:     r.RemoteAddr,
				Success:      false,
				ErrorMessage: err.Error(),
			})
			switch {
			case errors.Is(err, authn.ErrInvalidInput):
				respondWithError(w, http.StatusBadRequest, "Handle and password are required")
			case errors.Is(err, store.ErrDuplicateHandle):
				respondWithError(w, http.StatusConflict, "Handle already taken")
			default:
				respondWithError(w, http.StatusInternalServerError, "Registration failed")
			}
			return
		}

		audit.Log(audit.RegistrationEvent{
			Handle:   user.Handle,
			ClientIP: r.RemoteAddr,
			Success:  true,
		})
		respondWithJSON(w, http.StatusCreated, user)
	}
}

func handleLogin(authenticator *authn.Authenticator, codec *token.Codec) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body CredentialsRequest
		if err := decodeBody(r, &body); err != nil {
			respondWithError(w, http.StatusBadRequest, "Malformed request body")
			return
		}

		user, err := authenticator.Authenticate(body.Handle, body.Password)
		if err != nil {
			audit.Log(audit.AuthenticateEvent{
				Handle:       body.Handle,
				ClientIP:     r.RemoteAddr,
				Success:      false,
				ErrorMessage: err.Error(),
			})
			respondWithError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		tokenStr, err := codec.Encode(token.Claim{Handle: user.Handle, Role: user.Role})
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Token issuance failed")
			return
		}

		audit.Log(audit.AuthenticateEvent{
			Handle:   user.Handle,
			ClientIP: r.RemoteAddr,
			Success:  true,
		})
		respondWithJSON(w, http.StatusOK, LoginResponse{
			Token:  tokenStr,
			Type:   "Bearer",
			Handle: user.Handle,
			Role:   user.Role.String(),
		})
	}
}

func handleProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// The route is public so a bad token still reaches here. Anonymous
		// callers have no profile to show.
		id, ok := identity.Get(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		respondWithJSON(w, http.StatusOK, ProfileResponse{
			ID:     id.UserID,
			Handle: id.Handle,
			Role:   id.Role.String(),
		})
	}
}
