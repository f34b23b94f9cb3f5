package endpoints

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/arthurv/ticketd/pkg/authn"
	"github.com/arthurv/ticketd/pkg/model"
	"github.com/arthurv/ticketd/pkg/password"
	"github.com/arthurv/ticketd/pkg/server"
	"github.com/arthurv/ticketd/pkg/server/store"
	"github.com/arthurv/ticketd/pkg/token"
)

// memUsers is an in-memory Users store with the same uniqueness semantics as
// the database-backed one.
type memUsers struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*model.User
}

var _ store.Users = (*memUsers)(nil)

func newMemUsers() *memUsers {
	return &memUsers{nextID: 1, users: map[uint]*model.User{}}
}

func (m *memUsers) FindByHandle(handle string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Handle == handle {
			clone := *user
			return &clone, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memUsers) FindByID(id uint) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user, ok := m.users[id]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, store.ErrNotFound
}

func (m *memUsers) List() ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := make([]model.User, 0, len(m.users))
	for _, user := range m.users {
		list = append(list, *user)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (m *memUsers) Create(user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Handle == user.Handle {
			return store.ErrDuplicateHandle
		}
	}
	user.ID = m.nextID
	m.nextID++
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *memUsers) Update(user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return store.ErrNotFound
	}
	for _, existing := range m.users {
		if existing.Handle == user.Handle && existing.ID != user.ID {
			return store.ErrDuplicateHandle
		}
	}
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *memUsers) Delete(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *memUsers) SetRole(handle string, role model.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Handle == handle {
			user.Role = role
			return nil
		}
	}
	return store.ErrNotFound
}

type memTickets struct {
	mu      sync.Mutex
	nextID  uint
	tickets map[uint]*model.Ticket
}

var _ store.Tickets = (*memTickets)(nil)

func newMemTickets() *memTickets {
	return &memTickets{nextID: 1, tickets: map[uint]*model.Ticket{}}
}

func (m *memTickets) List() ([]model.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := make([]model.Ticket, 0, len(m.tickets))
	for _, ticket := range m.tickets {
		list = append(list, *ticket)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (m *memTickets) FindByID(id uint) (*model.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ticket, ok := m.tickets[id]; ok {
		clone := *ticket
		return &clone, nil
	}
	return nil, store.ErrNotFound
}

func (m *memTickets) Create(ticket *model.Ticket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ticket.ID = m.nextID
	m.nextID++
	clone := *ticket
	m.tickets[ticket.ID] = &clone
	return nil
}

func (m *memTickets) Update(ticket *model.Ticket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tickets[ticket.ID]; !ok {
		return store.ErrNotFound
	}
	clone := *ticket
	m.tickets[ticket.ID] = &clone
	return nil
}

func (m *memTickets) Delete(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tickets[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.tickets, id)
	return nil
}

type memCategories struct {
	mu         sync.Mutex
	nextID     uint
	categories map[uint]*model.Category
}

var _ store.Categories = (*memCategories)(nil)

func newMemCategories() *memCategories {
	return &memCategories{nextID: 1, categories: map[uint]*model.Category{}}
}

func (m *memCategories) List() ([]model.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := make([]model.Category, 0, len(m.categories))
	for _, category := range m.categories {
		list = append(list, *category)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (m *memCategories) FindByID(id uint) (*model.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if category, ok := m.categories[id]; ok {
		clone := *category
		return &clone, nil
	}
	return nil, store.ErrNotFound
}

func (m *memCategories) FindByIDs(ids []uint) ([]model.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var list []model.Category
	for _, id := range ids {
		if category, ok := m.categories[id]; ok {
			list = append(list, *category)
		}
	}
	return list, nil
}

func (m *memCategories) Create(category *model.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	category.ID = m.nextID
	m.nextID++
	clone := *category
	m.categories[category.ID] = &clone
	return nil
}

func (m *memCategories) Update(category *model.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[category.ID]; !ok {
		return store.ErrNotFound
	}
	clone := *category
	m.categories[category.ID] = &clone
	return nil
}

func (m *memCategories) Delete(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.categories, id)
	return nil
}

type memPriorities struct {
	mu         sync.Mutex
	nextID     uint
	priorities map[uint]*model.Priority
}

var _ store.Priorities = (*memPriorities)(nil)

func newMemPriorities() *memPriorities {
	return &memPriorities{nextID: 1, priorities: map[uint]*model.Priority{}}
}

func (m *memPriorities) List() ([]model.Priority, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := make([]model.Priority, 0, len(m.priorities))
	for _, priority := range m.priorities {
		list = append(list, *priority)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (m *memPriorities) FindByID(id uint) (*model.Priority, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if priority, ok := m.priorities[id]; ok {
		clone := *priority
		return &clone, nil
	}
	return nil, store.ErrNotFound
}

func (m *memPriorities) Create(priority *model.Priority) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	priority.ID = m.nextID
	m.nextID++
	clone := *priority
	m.priorities[priority.ID] = &clone
	return nil
}

func (m *memPriorities) Update(priority *model.Priority) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.priorities[priority.ID]; !ok {
		return store.ErrNotFound
	}
	clone := *priority
	m.priorities[priority.ID] = &clone
	return nil
}

func (m *memPriorities) Delete(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.priorities[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.priorities, id)
	return nil
}

type okHealth struct{}

var _ store.Health = okHealth{}

func (okHealth) Ping() error { return nil }

// fixture is a fully wired test server backed by in-memory stores.
type fixture struct {
	handler    http.Handler
	users      *memUsers
	tickets    *memTickets
	categories *memCategories
	priorities *memPriorities
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	users := newMemUsers()
	tickets := newMemTickets()
	categories := newMemCategories()
	priorities := newMemPriorities()

	key := make([]byte, token.KeySize)
	copy(key, "endpoint-test-key-endpoint-test!")
	codec, err := token.NewCodec(key)
	require.NoError(t, err)

	hasher := password.NewHasher(bcrypt.MinCost)
	authenticator := authn.New(users, hasher)

	srv := server.NewServer(
		server.Stores{
			Users:      users,
			Tickets:    tickets,
			Categories: categories,
			Priorities: priorities,
			Health:     okHealth{},
		},
		codec,
		authenticator,
		nil,
		"127.0.0.1",
		"0",
	)
	RegisterAll(srv)

	return &fixture{
		handler:    srv.Handler(),
		users:      users,
		tickets:    tickets,
		categories: categories,
		priorities: priorities,
	}
}

// do runs one request through the full identity and authorization chain.
func (f *fixture) do(t *testing.T, method, target, bearer string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, target, reader)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	recorder := httptest.NewRecorder()
	f.handler.ServeHTTP(recorder, req)
	return recorder
}

// register creates an account through the public endpoint.
func (f *fixture) register(t *testing.T, handle, pass string) {
	t.Helper()
	recorder := f.do(t, http.MethodPost, "/api/auth/register", "", CredentialsRequest{Handle: handle, Password: pass})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
}

// login returns the bearer token for the given credentials.
func (f *fixture) login(t *testing.T, handle, pass string) string {
	t.Helper()
	recorder := f.do(t, http.MethodPost, "/api/auth/login", "", CredentialsRequest{Handle: handle, Password: pass})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// seedPriority inserts a priority directly into the store.
func (f *fixture) seedPriority(t *testing.T, name string) uint {
	t.Helper()
	priority := &model.Priority{Name: name}
	require.NoError(t, f.priorities.Create(priority))
	return priority.ID
}

// seedCategory inserts a category directly into the store.
func (f *fixture) seedCategory(t *testing.T, name string) uint {
	t.Helper()
	category := &model.Category{Name: name}
	require.NoError(t, f.categories.Create(category))
	return category.ID
}
