package endpoints

import (
	"github.com/arthurv/ticketd/pkg/server"
)

// RegisterAll registers all API endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterAuthEndpoints(srv)
	RegisterTicketEndpoints(srv)
	RegisterCategoryEndpoints(srv)
	RegisterPriorityEndpoints(srv)
	RegisterUserEndpoints(srv)
	RegisterStatusEndpoints(srv)
}
