// Package main provides ticketd, a ticket-tracking REST backend.
//
// Users register and log in with a handle and password, submit support
// tickets classified by priority and category, and administrators resolve
// or manage tickets, categories, priorities and user accounts.
// Authentication is stateless, based on bearer tokens issued at login.
//
// # Architecture
//
// The server is organized into several packages:
//
//   - pkg/server: HTTP server and routing
//   - pkg/server/endpoints: REST API endpoint handlers
//   - pkg/server/middleware: bearer-token identity resolution
//   - pkg/authn: credential issuance and verification
//   - pkg/authz: declarative route authorization
//   - pkg/token: signed bearer tokens
//   - pkg/password: password hashing
//   - pkg/model: Database models
//   - pkg/db: Database connection utilities
//   - pkg/audit: Audit logging
//   - pkg/config: Configuration management
//
// # Quick Start
//
// The server is run via the ticketctl CLI:
//
//	# Generate a token signing key
//	export TICKETD_TOKEN_KEY="$(ticketctl token-key generate)"
//
//	# Run database migrations
//	ticketctl db migrate
//
//	# Create the first administrator
//	ticketctl user create admin --role administrator
//
//	# Start the server
//	ticketctl server
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - TICKETD_TOKEN_KEY: Base64-encoded 256-bit token signing key
//   - TICKETD_LOG_LEVEL: Log level (debug, info, warn, error)
//   - TICKETD_PORT: Server port (default: 8080)
package main
