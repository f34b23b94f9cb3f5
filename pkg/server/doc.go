// Package server provides the HTTP server for the ticketd API.
//
// This package implements the core HTTP server that handles all ticketd REST
// API requests. It uses gorilla/mux for routing and wraps the router in the
// identity filter and the authorization gate, so every request is classified
// before a handler runs.
//
// # Server Setup
//
//	s := server.NewServer(stores, codec, authenticator, db, "0.0.0.0", "8080")
//	endpoints.RegisterAll(s)
//	if err := s.Start(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Components
//
// The Server struct holds:
//
//   - Stores: persistence interfaces for users, tickets, categories, priorities
//   - Codec: HS256 signing and verification of bearer tokens
//   - Authenticator: registration and credential checks
//   - Router: HTTP request router
//   - DB: database connection
//
// # Endpoints
//
// API endpoints are registered via the endpoints subpackage:
//
//	endpoints.RegisterAll(s)
//
// This registers all ticketd API endpoints including:
//
//   - /api/auth/register, /api/auth/login, /api/auth/profile - accounts
//   - /api/ticket - ticket CRUD, markdown rendering, and resolution
//   - /api/category, /api/priority - ticket classification
//   - /api/user - administrator-only account management
//   - /, /health - status and database health
package server
