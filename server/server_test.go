package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/redisext/component"
	"github.com/kbukum/redisext/errors"
	"github.com/kbukum/redisext/logger"
	"github.com/kbukum/redisext/server/endpoint"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := Config{Host: "127.0.0.1"}
	cfg.ApplyDefaults()
	s := New(cfg, logger.Nop())
	s.ApplyMiddleware()
	return s
}

func serve(s *Server, method, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(method, path, http.NoBody))
	return rr
}

func TestConfig_Defaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Port != 8080 || cfg.Host != "0.0.0.0" {
		t.Errorf("unexpected address defaults %s:%d", cfg.Host, cfg.Port)
	}
	if cfg.MaxBodySize != "1MB" {
		t.Errorf("expected 1MB body limit, got %s", cfg.MaxBodySize)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestConfig_ValidateRejectsBadPort(t *testing.T) {
	cfg := Config{Port: 70000}
	err := cfg.Validate()
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeInvalidInput {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
}

func TestDefaultEndpoints(t *testing.T) {
	healthy := func(context.Context) []component.Health {
		return []component.Health{{Name: "redis", Status: component.StatusHealthy}}
	}
	s := newTestServer(t)
	s.RegisterDefaultEndpoints("kv", "1.2.3", healthy)

	for _, path := range []string{"/health", "/livez", "/readyz", "/info"} {
		if rr := serve(s, http.MethodGet, path); rr.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, rr.Code)
		}
	}

	var info map[string]any
	_ = json.Unmarshal(serve(s, http.MethodGet, "/info").Body.Bytes(), &info)
	if info["version"] != "1.2.3" || info["service"] != "kv" {
		t.Errorf("unexpected info body: %v", info)
	}
}

func TestHealth_UnhealthyComponent(t *testing.T) {
	checker := func(context.Context) []component.Health {
		return []component.Health{
			{Name: "metrics", Status: component.StatusDegraded},
			{Name: "redis", Status: component.StatusUnhealthy, Message: "connection refused"},
		}
	}
	s := newTestServer(t)
	s.RegisterDefaultEndpoints("kv", "dev", checker)

	rr := serve(s, http.MethodGet, "/health")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
	var body endpoint.HealthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Status != "unhealthy" || len(body.Components) != 2 {
		t.Errorf("unexpected body: %+v", body)
	}
	if rr := serve(s, http.MethodGet, "/readyz"); rr.Code != http.StatusServiceUnavailable {
		t.Errorf("readyz = %d, want 503", rr.Code)
	}
	if rr := serve(s, http.MethodGet, "/livez"); rr.Code != http.StatusOK {
		t.Errorf("livez = %d, want 200", rr.Code)
	}
}

func TestHandle_MountsBesideGin(t *testing.T) {
	s := newTestServer(t)
	s.Handle("/raw/", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	if rr := serve(s, http.MethodGet, "/raw/x"); rr.Code != http.StatusTeapot {
		t.Errorf("expected 418, got %d", rr.Code)
	}
}

func TestRespondWithError(t *testing.T) {
	s := newTestServer(t)
	s.GinEngine().GET("/missing", func(c *gin.Context) {
		RespondWithError(c, errors.NotFound("key", "a"))
	})
	s.GinEngine().GET("/boom", func(c *gin.Context) {
		RespondWithError(c, stderrors.New("boom"))
	})

	rr := serve(s, http.MethodGet, "/missing")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	var body errors.ErrorResponse
	_ = json.Unmarshal(rr.Body.Bytes(), &body)
	if body.Error.Code != errors.ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND, got %s", body.Error.Code)
	}

	if rr := serve(s, http.MethodGet, "/boom"); rr.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rr.Code)
	}
}

func TestComponent_Lifecycle(t *testing.T) {
	cfg := Config{Host: "127.0.0.1", Port: 0}
	cfg.ApplyDefaults()
	cfg.Port = 0
	s := New(cfg, logger.Nop())
	s.ApplyMiddleware()
	s.RegisterDefaultEndpoints("kv", "dev", nil)
	comp := NewComponent(s)
	ctx := context.Background()

	if comp.Name() != "http-server" {
		t.Errorf("unexpected name %s", comp.Name())
	}
	if h := comp.Health(ctx); h.Status != component.StatusUnhealthy {
		t.Errorf("expected unhealthy before start, got %s", h.Status)
	}
	if err := comp.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if h := comp.Health(ctx); h.Status != component.StatusHealthy {
		t.Errorf("expected healthy after start, got %s", h.Status)
	}

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+s.Addr()+"/livez", http.NoBody)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET /livez: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	if err := comp.Stop(ctx); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if h := comp.Health(ctx); h.Status != component.StatusUnhealthy {
		t.Errorf("expected unhealthy after stop, got %s", h.Status)
	}
	if d := comp.Describe(); d.Type != "server" {
		t.Errorf("unexpected description %+v", d)
	}
}
