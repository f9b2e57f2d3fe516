package testutil

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/redisext/component"
	"github.com/kbukum/redisext/server/middleware"
)

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, url, http.NoBody)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

func TestComponent_Lifecycle(t *testing.T) {
	comp := NewComponent()
	ctx := context.Background()

	if comp.BaseURL() != "" {
		t.Error("BaseURL() should be empty before Start")
	}
	if h := comp.Health(ctx); h.Status != component.StatusUnhealthy {
		t.Errorf("Health before Start = %q, want unhealthy", h.Status)
	}
	if err := comp.Start(ctx); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if err := comp.Start(ctx); err == nil {
		t.Error("expected error on second Start")
	}
	if comp.BaseURL() == "" {
		t.Error("BaseURL() should not be empty after Start")
	}
	if h := comp.Health(ctx); h.Status != component.StatusHealthy {
		t.Errorf("Health = %q, want healthy", h.Status)
	}
	if err := comp.Stop(ctx); err != nil {
		t.Fatalf("Stop() failed: %v", err)
	}
	if err := comp.Stop(ctx); err != nil {
		t.Fatalf("second Stop() failed: %v", err)
	}
}

func TestComponent_ServeRoutes(t *testing.T) {
	comp := NewComponent()
	ctx := context.Background()
	comp.GinEngine().GET("/hello", func(c *gin.Context) {
		c.String(http.StatusOK, "world")
	})

	if err := comp.Start(ctx); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	defer comp.Stop(ctx)

	resp, body := get(t, comp.BaseURL()+"/hello")
	if resp.StatusCode != http.StatusOK || body != "world" {
		t.Errorf("got %d %q, want 200 %q", resp.StatusCode, body, "world")
	}
	if resp.Header.Get(middleware.RequestIDHeader) == "" {
		t.Error("expected request id header from the standard middleware")
	}
}

func TestComponent_ExtraMiddleware(t *testing.T) {
	tagged := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Test", "yes")
			next.ServeHTTP(w, r)
		})
	}
	comp := NewComponent(tagged)
	ctx := context.Background()
	comp.GinEngine().GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
	if err := comp.Start(ctx); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	defer comp.Stop(ctx)

	resp, _ := get(t, comp.BaseURL()+"/x")
	if resp.Header.Get("X-Test") != "yes" {
		t.Error("expected extra middleware to run")
	}
}

func TestComponent_Reset(t *testing.T) {
	comp := NewComponent()
	ctx := context.Background()
	comp.GinEngine().GET("/before", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	if err := comp.Reset(ctx); err == nil {
		t.Error("expected Reset to fail before Start")
	}
	if err := comp.Start(ctx); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	defer comp.Stop(ctx)

	if resp, _ := get(t, comp.BaseURL()+"/before"); resp.StatusCode != http.StatusOK {
		t.Errorf("before Reset: status = %d, want 200", resp.StatusCode)
	}
	if err := comp.Reset(ctx); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	if resp, _ := get(t, comp.BaseURL()+"/before"); resp.StatusCode != http.StatusNotFound {
		t.Errorf("after Reset: status = %d, want 404", resp.StatusCode)
	}
}
