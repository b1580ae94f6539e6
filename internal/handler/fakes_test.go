package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eventengine/eventengine/internal/auth"
	"github.com/eventengine/eventengine/internal/model"
	"github.com/eventengine/eventengine/internal/repository"
	"github.com/eventengine/eventengine/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

// In-memory stores backing the handler tests. They satisfy the same
// interfaces the MySQL repositories do, including the sentinel errors.

type memUsers struct {
	mu    sync.Mutex
	seq   uint64
	users map[uint64]*model.User
}

func newMemUsers() *memUsers { return &memUsers{users: map[uint64]*model.User{}} }

func (m *memUsers) Create(_ context.Context, email, password, class string, cost int) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return 0, repository.ErrEmailExists
		}
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	m.seq++
	m.users[m.seq] = &model.User{
		ID:           m.seq,
		Email:        email,
		PasswordHash: hash,
		Class:        class,
		Role:         model.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}
	return m.seq, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return *u, nil
		}
	}
	return model.User{}, repository.ErrUserNotFound
}

func (m *memUsers) GetByID(_ context.Context, id uint64) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		return *u, nil
	}
	return model.User{}, repository.ErrUserNotFound
}

func (m *memUsers) setRole(id uint64, role string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		u.Role = role
	}
}

func (m *memUsers) delete(id uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
}

type memNodes struct {
	mu        sync.Mutex
	seq       uint64
	nodes     map[uint64]*model.Node
	listCalls int
}

func newMemNodes() *memNodes { return &memNodes{nodes: map[uint64]*model.Node{}} }

func (m *memNodes) List(_ context.Context) ([]model.Node, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	out := make([]model.Node, 0, len(m.nodes))
	for id := uint64(1); id <= m.seq; id++ {
		if n, ok := m.nodes[id]; ok {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (m *memNodes) GetByID(_ context.Context, id uint64) (model.Node, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n, ok := m.nodes[id]; ok {
		return *n, nil
	}
	return model.Node{}, repository.ErrNodeNotFound
}

func (m *memNodes) Create(_ context.Context, name, location string, description *string) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	m.nodes[m.seq] = &model.Node{ID: m.seq, Name: name, Location: location, Description: description}
	return m.seq, nil
}

func (m *memNodes) Update(_ context.Context, id uint64, name, location, description *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.nodes[id]
	if !ok {
		return repository.ErrNodeNotFound
	}
	if name != nil {
		n.Name = *name
	}
	if location != nil {
		n.Location = *location
	}
	if description != nil {
		n.Description = description
	}
	return nil
}

func (m *memNodes) Delete(_ context.Context, id uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.nodes[id]; !ok {
		return repository.ErrNodeNotFound
	}
	delete(m.nodes, id)
	return nil
}

type memAttendance struct {
	mu    sync.Mutex
	pairs map[[2]uint64]time.Time
}

func newMemAttendance() *memAttendance {
	return &memAttendance{pairs: map[[2]uint64]time.Time{}}
}

func (m *memAttendance) Record(_ context.Context, userID, nodeID uint64) (time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]uint64{userID, nodeID}
	if _, ok := m.pairs[key]; ok {
		return time.Time{}, repository.ErrAlreadyRecorded
	}
	at := time.Now().UTC()
	m.pairs[key] = at
	return at, nil
}

func (m *memAttendance) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pairs)
}

// testEnv wires handlers against the in-memory stores with a real
// token service.
type testEnv struct {
	users      *memUsers
	nodes      *memNodes
	attendance *memAttendance
	tokens     *auth.TokenService
	node       *NodeHandler
	user       *UserHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		users:      newMemUsers(),
		nodes:      newMemNodes(),
		attendance: newMemAttendance(),
	}
	env.tokens = auth.NewTokenService("handler-test-secret", 60, env.users)
	env.node = NewNodeHandler(env.tokens, env.nodes)
	env.user = NewUserHandler(env.tokens, env.users, env.nodes, env.attendance, bcrypt.MinCost)
	return env
}

// seedUser registers a user directly and returns a valid token for it.
func (env *testEnv) seedUser(t *testing.T, email, password, role string) (uint64, string) {
	t.Helper()
	id, err := env.users.Create(context.Background(), email, password, "2B", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	env.users.setRole(id, role)
	tok, err := env.tokens.Issue(auth.Claims{UserID: id, Email: email, Role: role})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return id, tok
}

func (env *testEnv) seedNode(t *testing.T, name, location string) uint64 {
	t.Helper()
	id, err := env.nodes.Create(context.Background(), name, location, nil)
	if err != nil {
		t.Fatalf("seed node: %v", err)
	}
	return id
}

// post invokes an echo handler with a JSON body and returns the
// recorded response plus the decoded body.
func post(t *testing.T, h echo.HandlerFunc, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(string(raw)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return rec, decoded
}
