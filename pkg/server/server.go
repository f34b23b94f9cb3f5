package server

import (
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/arthurv/ticketd/pkg/authn"
	"github.com/arthurv/ticketd/pkg/authz"
	"github.com/arthurv/ticketd/pkg/server/middleware"
	"github.com/arthurv/ticketd/pkg/server/store"
	"github.com/arthurv/ticketd/pkg/token"
)

// Stores bundles the persistence interfaces the endpoints depend on.
type Stores struct {
	Users      store.Users
	Tickets    store.Tickets
	Categories store.Categories
	Priorities store.Priorities
	Health     store.Health
}

// Server owns the router, the persistence layer, and the security chain.
// Every request passes through the identity filter and the authorization
// gate before it reaches a handler.
type Server struct {
	Stores        Stores
	Codec         *token.Codec
	Authenticator *authn.Authenticator
	Router        *mux.Router
	DB            *gorm.DB
	chain         http.Handler
	srv           *http.Server
}

func NewServer(
	stores Stores,
	codec *token.Codec,
	authenticator *authn.Authenticator,
	db *gorm.DB,
	host string,
	port string,
) *Server {

	router := mux.NewRouter().UseEncodedPath()

	filter := middleware.NewIdentityFilter(codec, stores.Users)
	gate := authz.NewGate(authz.DefaultRules())
	chain := filter.Middleware(gate.Middleware(router))

	srv := &http.Server{
		Handler: handlers.LoggingHandler(os.Stdout, chain),
		Addr:    host + ":" + port,
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	return &Server{
		Stores:        stores,
		Codec:         codec,
		Authenticator: authenticator,
		Router:        router,
		DB:            db,
		chain:         chain,
		srv:           srv,
	}
}

// Handler exposes the identity and authorization chain without the access
// log wrapper, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.chain
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

// StartWithListener serves on an existing listener. Integration tests use
// this to bind an ephemeral port before the server goroutine starts.
func (s *Server) StartWithListener(l net.Listener) error {
	return s.srv.Serve(l)
}
