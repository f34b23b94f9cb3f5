package endpoints

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/arthurv/ticketd/pkg/identity"
	"github.com/arthurv/ticketd/pkg/model"
	"github.com/arthurv/ticketd/pkg/server"
	"github.com/arthurv/ticketd/pkg/server/store"
)

// TicketRequest is the body of ticket create and update calls. The
// description is markdown.
type TicketRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	PriorityID  uint   `json:"priority_id"`
	CategoryIDs []uint `json:"category_ids"`
}

// RegisterTicketEndpoints registers the ticket CRUD and resolve endpoints.
func RegisterTicketEndpoints(s *server.Server) {
	tickets := s.Stores.Tickets
	categories := s.Stores.Categories
	priorities := s.Stores.Priorities
	router := s.Router

	router.HandleFunc("/api/ticket", handleListTickets(tickets)).Methods("GET")
	router.HandleFunc("/api/ticket/{id:[0-9]+}", handleGetTicket(tickets)).Methods("GET")
	router.HandleFunc("/api/ticket", handleCreateTicket(tickets, categories, priorities)).Methods("POST")
	router.HandleFunc("/api/ticket/{id:[0-9]+}", handleUpdateTicket(tickets, categories, priorities)).Methods("PUT")
	router.HandleFunc("/api/ticket/{id:[0-9]+}/resolve", handleResolveTicket(tickets)).Methods("PUT")
	router.HandleFunc("/api/ticket/{id:[0-9]+}", handleDeleteTicket(tickets)).Methods("DELETE")
}

func handleListTickets(tickets store.Tickets) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := tickets.List()
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to list tickets")
			return
		}
		respondWithJSON(w, http.StatusOK, list)
	}
}

func handleGetTicket(tickets store.Tickets) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idVar(r)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid ticket id")
			return
		}

		ticket, err := tickets.FindByID(id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, "Ticket not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to fetch ticket")
			return
		}

		if strings.Contains(r.Header.Get("Accept"), "text/html") {
			renderTicketHTML(w, ticket)
			return
		}

		respondWithJSON(w, http.StatusOK, ticket)
	}
}

// renderTicketHTML renders the ticket with its markdown description
// converted to HTML.
func renderTicketHTML(w http.ResponseWriter, ticket *model.Ticket) {
	var description bytes.Buffer
	md := goldmark.New()
	if err := md.Convert([]byte(ticket.Description), &description); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to render ticket")
		return
	}

	status := "open"
	if ticket.Resolved {
		status = "resolved"
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html>\n  <head>\n    <meta charset=\"utf-8\">\n")
	fmt.Fprintf(&page, "    <title>Ticket #%d</title>\n  </head>\n  <body>\n", ticket.ID)
	fmt.Fprintf(&page, "    <h1>%s</h1>\n", html.EscapeString(ticket.Title))
	fmt.Fprintf(&page, "    <p class=\"status\">%s</p>\n", status)
	page.WriteString("    <div class=\"description\">\n")
	page.Write(description.Bytes())
	page.WriteString("    </div>\n  </body>\n</html>\n")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page.Bytes())
}

func handleCreateTicket(tickets store.Tickets, categories store.Categories, priorities store.Priorities) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body TicketRequest
		if err := decodeBody(r, &body); err != nil {
			respondWithError(w, http.StatusBadRequest, "Malformed request body")
			return
		}

		ticket, ok := buildTicket(w, &body, categories, priorities)
		if !ok {
			return
		}

		if id, authenticated := identity.Get(r.Context()); authenticated {
			userID := id.UserID
			ticket.SubmittingUserID = &userID
		}

		if err := tickets.Create(ticket); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to create ticket")
			return
		}
		respondWithJSON(w, http.StatusCreated, ticket)
	}
}

func handleUpdateTicket(tickets store.Tickets, categories store.Categories, priorities store.Priorities) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idVar(r)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid ticket id")
			return
		}

		existing, err := tickets.FindByID(id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, "Ticket not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to fetch ticket")
			return
		}

		var body TicketRequest
		if err := decodeBody(r, &body); err != nil {
			respondWithError(w, http.StatusBadRequest, "Malformed request body")
			return
		}

		updated, ok := buildTicket(w, &body, categories, priorities)
		if !ok {
			return
		}
		updated.ID = existing.ID
		updated.Resolved = existing.Resolved
		updated.SubmittingUserID = existing.SubmittingUserID
		updated.ResolvingUserID = existing.ResolvingUserID

		if err := tickets.Update(updated); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to update ticket")
			return
		}
		respondWithJSON(w, http.StatusOK, updated)
	}
}

func handleResolveTicket(tickets store.Tickets) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idVar(r)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid ticket id")
			return
		}

		ticket, err := tickets.FindByID(id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, "Ticket not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to fetch ticket")
			return
		}

		ticket.Resolved = true
		// The gate only lets administrators through to this route, so the
		// identity is always present here.
		if resolver, ok := identity.Get(r.Context()); ok {
			userID := resolver.UserID
			ticket.ResolvingUserID = &userID
		}

		if err := tickets.Update(ticket); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to resolve ticket")
			return
		}
		respondWithJSON(w, http.StatusOK, ticket)
	}
}

func handleDeleteTicket(tickets store.Tickets) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idVar(r)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid ticket id")
			return
		}

		if err := tickets.Delete(id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, "Ticket not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to delete ticket")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// buildTicket validates the request body against the priority and category
// stores and assembles a ticket. On failure it writes the error response and
// returns false.
func buildTicket(w http.ResponseWriter, body *TicketRequest, categories store.Categories, priorities store.Priorities) (*model.Ticket, bool) {
	if body.Title == "" {
		respondWithError(w, http.StatusBadRequest, "Title is required")
		return nil, false
	}

	priority, err := priorities.FindByID(body.PriorityID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(w, http.StatusBadRequest, "Unknown priority")
			return nil, false
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch priority")
		return nil, false
	}

	var cats []model.Category
	if len(body.CategoryIDs) > 0 {
		cats, err = categories.FindByIDs(body.CategoryIDs)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to fetch categories")
			return nil, false
		}
		if len(cats) != len(body.CategoryIDs) {
			respondWithError(w, http.StatusBadRequest, "Unknown category")
			return nil, false
		}
	}

	return &model.Ticket{
		Title:       body.Title,
		Description: body.Description,
		PriorityID:  priority.ID,
		Priority:    priority,
		Categories:  cats,
	}, true
}
