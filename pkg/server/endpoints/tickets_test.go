package endpoints

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthurv/ticketd/pkg/model"
)

func (f *fixture) seedAdmin(t *testing.T, handle, pass string) string {
	t.Helper()
	f.register(t, handle, pass)
	require.NoError(t, f.users.SetRole(handle, model.RoleAdministrator))
	return f.login(t, handle, pass)
}

func (f *fixture) createTicket(t *testing.T, bearer string, body TicketRequest) model.Ticket {
	t.Helper()
	recorder := f.do(t, http.MethodPost, "/api/ticket", bearer, body)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var ticket model.Ticket
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &ticket))
	return ticket
}

func TestListTicketsIsPublic(t *testing.T) {
	f := newFixture(t)

	recorder := f.do(t, http.MethodGet, "/api/ticket", "", nil)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, "[]", recorder.Body.String())
}

func TestCreateTicketRequiresAuthentication(t *testing.T) {
	f := newFixture(t)
	priorityID := f.seedPriority(t, "high")

	recorder := f.do(t, http.MethodPost, "/api/ticket", "", TicketRequest{
		Title:      "printer on fire",
		PriorityID: priorityID,
	})

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestCreateTicketRecordsSubmitter(t *testing.T) {
	f := newFixture(t)
	priorityID := f.seedPriority(t, "high")
	categoryID := f.seedCategory(t, "hardware")

	f.register(t, "alice", "secret1")
	bearer := f.login(t, "alice", "secret1")

	ticket := f.createTicket(t, bearer, TicketRequest{
		Title:       "printer on fire",
		Description: "It is **actually** on fire.",
		PriorityID:  priorityID,
		CategoryIDs: []uint{categoryID},
	})

	assert.NotZero(t, ticket.ID)
	assert.False(t, ticket.Resolved)
	require.Len(t, ticket.Categories, 1)
	assert.Equal(t, "hardware", ticket.Categories[0].Name)

	stored, err := f.tickets.FindByID(ticket.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.SubmittingUserID)

	alice, err := f.users.FindByHandle("alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, *stored.SubmittingUserID)
}

func TestCreateTicketUnknownPriority(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice", "secret1")
	bearer := f.login(t, "alice", "secret1")

	recorder := f.do(t, http.MethodPost, "/api/ticket", bearer, TicketRequest{
		Title:      "broken keyboard",
		PriorityID: 99,
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestCreateTicketUnknownCategory(t *testing.T) {
	f := newFixture(t)
	priorityID := f.seedPriority(t, "low")
	f.register(t, "alice", "secret1")
	bearer := f.login(t, "alice", "secret1")

	recorder := f.do(t, http.MethodPost, "/api/ticket", bearer, TicketRequest{
		Title:       "broken keyboard",
		PriorityID:  priorityID,
		CategoryIDs: []uint{42},
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetTicketIsPublic(t *testing.T) {
	f := newFixture(t)
	priorityID := f.seedPriority(t, "high")
	f.register(t, "alice", "secret1")
	bearer := f.login(t, "alice", "secret1")
	ticket := f.createTicket(t, bearer, TicketRequest{Title: "vpn down", PriorityID: priorityID})

	recorder := f.do(t, http.MethodGet, "/api/ticket/1", "", nil)

	require.Equal(t, http.StatusOK, recorder.Code)

	var fetched model.Ticket
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &fetched))
	assert.Equal(t, ticket.ID, fetched.ID)
	assert.Equal(t, "vpn down", fetched.Title)
}

func TestGetTicketNotFound(t *testing.T) {
	f := newFixture(t)

	recorder := f.do(t, http.MethodGet, "/api/ticket/7", "", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestGetTicketRendersMarkdownAsHTML(t *testing.T) {
	f := newFixture(t)
	priorityID := f.seedPriority(t, "high")
	f.register(t, "alice", "secret1")
	bearer := f.login(t, "alice", "secret1")
	f.createTicket(t, bearer, TicketRequest{
		Title:       "vpn down <script>",
		Description: "Cannot reach **anything** internal.",
		PriorityID:  priorityID,
	})

	req := httptest.NewRequest(http.MethodGet, "/api/ticket/1", nil)
	req.Header.Set("Accept", "text/html")
	recorder := httptest.NewRecorder()
	f.handler.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, recorder.Body.String(), "<strong>anything</strong>")
	assert.Contains(t, recorder.Body.String(), "&lt;script&gt;", "title must be escaped")
}

func TestUpdateTicketPreservesResolutionState(t *testing.T) {
	f := newFixture(t)
	priorityID := f.seedPriority(t, "high")
	lowID := f.seedPriority(t, "low")
	f.register(t, "alice", "secret1")
	bearer := f.login(t, "alice", "secret1")
	ticket := f.createTicket(t, bearer, TicketRequest{Title: "vpn down", PriorityID: priorityID})

	admin := f.seedAdmin(t, "root", "secret2")
	resolve := f.do(t, http.MethodPut, "/api/ticket/1/resolve", admin, nil)
	require.Equal(t, http.StatusOK, resolve.Code)

	update := f.do(t, http.MethodPut, "/api/ticket/1", bearer, TicketRequest{
		Title:      "vpn down again",
		PriorityID: lowID,
	})
	require.Equal(t, http.StatusOK, update.Code)

	stored, err := f.tickets.FindByID(ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, "vpn down again", stored.Title)
	assert.True(t, stored.Resolved, "an edit must not silently reopen a resolved ticket")
}

func TestResolveTicketIsAdminOnly(t *testing.T) {
	f := newFixture(t)
	priorityID := f.seedPriority(t, "high")
	f.register(t, "alice", "secret1")
	bearer := f.login(t, "alice", "secret1")
	f.createTicket(t, bearer, TicketRequest{Title: "vpn down", PriorityID: priorityID})

	denied := f.do(t, http.MethodPut, "/api/ticket/1/resolve", bearer, nil)
	assert.Equal(t, http.StatusForbidden, denied.Code)

	admin := f.seedAdmin(t, "root", "secret2")
	allowed := f.do(t, http.MethodPut, "/api/ticket/1/resolve", admin, nil)
	require.Equal(t, http.StatusOK, allowed.Code)

	stored, err := f.tickets.FindByID(1)
	require.NoError(t, err)
	assert.True(t, stored.Resolved)
	require.NotNil(t, stored.ResolvingUserID)

	root, err := f.users.FindByHandle("root")
	require.NoError(t, err)
	assert.Equal(t, root.ID, *stored.ResolvingUserID)
}

func TestDeleteTicketIsAdminOnly(t *testing.T) {
	f := newFixture(t)
	priorityID := f.seedPriority(t, "high")
	f.register(t, "alice", "secret1")
	bearer := f.login(t, "alice", "secret1")
	f.createTicket(t, bearer, TicketRequest{Title: "vpn down", PriorityID: priorityID})

	asStandard := f.do(t, http.MethodDelete, "/api/ticket/1", bearer, nil)
	assert.Equal(t, http.StatusForbidden, asStandard.Code)

	anonymous := f.do(t, http.MethodDelete, "/api/ticket/1", "", nil)
	assert.Equal(t, http.StatusUnauthorized, anonymous.Code)

	admin := f.seedAdmin(t, "root", "secret2")
	allowed := f.do(t, http.MethodDelete, "/api/ticket/1", admin, nil)
	assert.Equal(t, http.StatusNoContent, allowed.Code)

	_, err := f.tickets.FindByID(1)
	assert.Error(t, err)
}
