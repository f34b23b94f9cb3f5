package endpoints

import (
	"net/http"
	"os"

	"github.com/arthurv/ticketd/pkg/server"
	"github.com/arthurv/ticketd/pkg/server/store"
)

// StatusResponse is the body of the root status endpoint.
type StatusResponse struct {
	Service string `json:"service"`
	Version string `json:"version"`
}

// HealthResponse is the body of the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}

// RegisterStatusEndpoints registers the public status and health endpoints.
func RegisterStatusEndpoints(s *server.Server) {
	health := s.Stores.Health

	s.Router.HandleFunc("/", handleStatus()).Methods("GET")
	s.Router.HandleFunc("/health", handleHealth(health)).Methods("GET")
}

func handleStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		version := os.Getenv("TICKETD_VERSION_DISPLAY")
		if version == "" {
			version = "0.1.0"
		}

		respondWithJSON(w, http.StatusOK, StatusResponse{
			Service: "ticketd",
			Version: version,
		})
	}
}

func handleHealth(health store.Health) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := health.Ping(); err != nil {
			respondWithJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "error"})
			return
		}
		respondWithJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}
