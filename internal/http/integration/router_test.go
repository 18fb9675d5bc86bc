package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gatherly/eventsapi/internal/auth"
	"github.com/gatherly/eventsapi/internal/cache"
	"github.com/gatherly/eventsapi/internal/config"
	"github.com/gatherly/eventsapi/internal/domain/event"
	"github.com/gatherly/eventsapi/internal/domain/user"
	apihttp "github.com/gatherly/eventsapi/internal/http"
	"github.com/gatherly/eventsapi/internal/http/handlers"
	"github.com/gatherly/eventsapi/internal/http/middlewares"
	"github.com/gatherly/eventsapi/internal/repo/memory"
	"github.com/gin-gonic/gin"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	if err := handlers.RegisterValidations(); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

type env struct {
	router *gin.Engine
	events *memory.EventsRepo
	users  *memory.UsersRepo
	tokens *auth.Manager
}

func newEnv(t *testing.T) *env {
	t.Helper()

	events := memory.NewEventsRepo()
	users := memory.NewUsersRepo()
	tokens := auth.NewManager("integration-secret", time.Hour)

	cfg := config.Config{
		Env:          "test",
		MaxBodyBytes: 1 << 20,
	}

	router := apihttp.NewRouter(apihttp.Deps{
		Config: cfg,
		Auth:   middlewares.NewAuthMiddleware(tokens),
		Events: handlers.NewEventsHandler(events, cache.New(time.Minute)),
		Users:  handlers.NewUsersHandler(users, tokens),
		Login:  handlers.NewAuthHandler(users, tokens),
	})

	return &env{
		router: router,
		events: events,
		users:  users,
		tokens: tokens,
	}
}

func (e *env) seedUser(t *testing.T, email string, isHost, isAdmin bool) (user.User, string) {
	t.Helper()

	u, err := e.users.Create(context.Background(), user.CreateUserRequest{
		Name:    "Test User",
		Email:   email,
		IsHost:  isHost,
		IsAdmin: isAdmin,
	}, "seeded-hash")

	if err != nil {
		t.Fatalf("seed user: %v", err)
	}

	token, err := e.tokens.GenerateToken(u.ID, u.IsHost, u.IsAdmin)

	if err != nil {
		t.Fatalf("token: %v", err)
	}

	return u, token
}

func (e *env) do(method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	var body []byte

	if payload != nil {
		body, _ = json.Marshal(payload)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set(middlewares.TokenHeader, token)
	}

	e.router.ServeHTTP(w, req)

	return w
}

func futureDate() string {
	return time.Now().Add(14 * 24 * time.Hour).UTC().Format(time.RFC3339)
}

func TestEventLifecycle(t *testing.T) {
	env := newEnv(t)

	host, hostToken := env.seedUser(t, "host@example.org", true, false)
	_, memberToken := env.seedUser(t, "member@example.org", false, false)

	// host publishes an event
	w := env.do(http.MethodPost, "/api/events", hostToken, map[string]interface{}{
		"title":    "Summer Fete",
		"hostId":   host.ID,
		"tags":     []string{"Family", "Free"},
		"date":     futureDate(),
		"location": "NR29 4PJ",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("create: status = %d, body = %s", w.Code, w.Body.String())
	}

	var created event.Event
	_ = json.Unmarshal(w.Body.Bytes(), &created)

	// everyone can list it
	w = env.do(http.MethodGet, "/api/events", "", nil)

	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Summer Fete") {
		t.Fatalf("list: status = %d, body = %s", w.Code, w.Body.String())
	}

	// a member joins
	w = env.do(http.MethodPost, "/api/events/"+created.ID+"/join", memberToken, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("join: status = %d, body = %s", w.Code, w.Body.String())
	}

	var joined event.Event
	_ = json.Unmarshal(w.Body.Bytes(), &joined)

	if len(joined.Members) != 1 {
		t.Errorf("members after join = %v", joined.Members)
	}

	// the detail page serves a projection
	w = env.do(http.MethodGet, "/api/events/"+created.ID, "", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("get: status = %d", w.Code)
	}

	var detail map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &detail)

	if detail["title"] != "Summer Fete" || len(detail) != 3 {
		t.Errorf("detail = %v", detail)
	}

	// host tears it down
	w = env.do(http.MethodDelete, "/api/events/"+created.ID, hostToken, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("delete: status = %d, body = %s", w.Code, w.Body.String())
	}

	w = env.do(http.MethodGet, "/api/events/"+created.ID, "", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete: status = %d", w.Code)
	}
}

func TestEventAccessControl(t *testing.T) {
	env := newEnv(t)

	host, _ := env.seedUser(t, "host@example.org", true, false)
	_, memberToken := env.seedUser(t, "member@example.org", false, false)

	payload := map[string]interface{}{
		"title":    "Summer Fete",
		"hostId":   host.ID,
		"date":     futureDate(),
		"location": "NR29 4PJ",
	}

	// no token
	w := env.do(http.MethodPost, "/api/events", "", payload)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", w.Code)
	}

	// invalid token
	wInvalid := httptest.NewRecorder()
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/events", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middlewares.TokenHeader, "definitely-not-a-jwt")
	env.router.ServeHTTP(wInvalid, req)

	if wInvalid.Code != http.StatusBadRequest {
		t.Errorf("invalid token: status = %d, want 400", wInvalid.Code)
	}

	// valid token, but not a host
	w = env.do(http.MethodPost, "/api/events", memberToken, payload)

	if w.Code != http.StatusForbidden {
		t.Errorf("non-host: status = %d, want 403", w.Code)
	}

	if !strings.Contains(w.Body.String(), "User does not have host privileges.") {
		t.Errorf("non-host body = %s", w.Body.String())
	}
}

func TestEventValidationThroughRouter(t *testing.T) {
	env := newEnv(t)

	host, hostToken := env.seedUser(t, "host@example.org", true, false)

	tests := []struct {
		name    string
		payload map[string]interface{}
	}{
		{
			"title too short",
			map[string]interface{}{
				"title":    "hi",
				"hostId":   host.ID,
				"date":     futureDate(),
				"location": "NR29 4PJ",
			},
		},
		{
			"date in the past",
			map[string]interface{}{
				"title":    "Summer Fete",
				"hostId":   host.ID,
				"date":     time.Now().Add(-14 * 24 * time.Hour).UTC().Format(time.RFC3339),
				"location": "NR29 4PJ",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(http.MethodPost, "/api/events", hostToken, tt.payload)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400; body = %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestUpdateForeignEventLooksMissing(t *testing.T) {
	env := newEnv(t)

	owner, _ := env.seedUser(t, "owner@example.org", true, false)
	other, otherToken := env.seedUser(t, "other@example.org", true, false)

	e, _ := env.events.Create(context.Background(), event.CreateEventRequest{
		Title:    "Summer Fete",
		HostID:   owner.ID,
		Date:     time.Now().Add(24 * time.Hour),
		Location: "NR29 4PJ",
	})

	w := env.do(http.MethodPut, "/api/events/"+e.ID, otherToken, map[string]interface{}{
		"title":    "Hijacked Fete",
		"hostId":   other.ID,
		"date":     futureDate(),
		"location": "Elsewhere",
	})

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404; body = %s", w.Code, w.Body.String())
	}

	got, _ := env.events.GetByID(context.Background(), e.ID)

	if got.Title != "Summer Fete" {
		t.Errorf("event was modified: %+v", got)
	}
}

func TestUserSelfService(t *testing.T) {
	env := newEnv(t)

	u, token := env.seedUser(t, "self@example.org", false, false)
	_, otherToken := env.seedUser(t, "other@example.org", false, false)

	// me
	w := env.do(http.MethodGet, "/api/users/me", token, nil)

	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "self@example.org") {
		t.Fatalf("me: status = %d, body = %s", w.Code, w.Body.String())
	}

	// someone else cannot delete the account
	w = env.do(http.MethodDelete, "/api/users/"+u.ID, otherToken, nil)

	if w.Code != http.StatusForbidden {
		t.Errorf("foreign delete: status = %d, want 403", w.Code)
	}

	// the owner can
	w = env.do(http.MethodDelete, "/api/users/"+u.ID, token, nil)

	if w.Code != http.StatusOK {
		t.Errorf("self delete: status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestOperationalEndpoints(t *testing.T) {
	env := newEnv(t)

	w := env.do(http.MethodGet, "/healthz", "", nil)

	if w.Code != http.StatusOK {
		t.Errorf("healthz: status = %d", w.Code)
	}

	// nil pinger means always ready
	w = env.do(http.MethodGet, "/readyz", "", nil)

	if w.Code != http.StatusOK {
		t.Errorf("readyz: status = %d", w.Code)
	}
}

func TestContentTypeEnforced(t *testing.T) {
	env := newEnv(t)

	_, hostToken := env.seedUser(t, "host@example.org", true, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/events", strings.NewReader("title=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set(middlewares.TokenHeader, hostToken)

	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusUnsupportedMediaType {
		t.Errorf("status = %d, want 415", w.Code)
	}
}

func TestSecurityHeadersPresent(t *testing.T) {
	env := newEnv(t)

	w := env.do(http.MethodGet, "/api/events", "", nil)

	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}

	if got := w.Header().Get("X-Request-Id"); got == "" {
		t.Error("missing X-Request-Id header")
	}
}
