package redis

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

func TestTypedStore_SaveAndLoad(t *testing.T) {
	ext, _, _ := newAttached(t)
	store := NewTypedStore[testState](ext, "test")
	ctx := context.Background()

	state := testState{Count: 5, Tags: []string{"a", "b"}}
	if err := store.Save(ctx, "k1", &state, 0); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Load(ctx, "k1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected non-nil result")
	}
	if got.Count != 5 || len(got.Tags) != 2 {
		t.Fatalf("expected Count=5, Tags=2, got %+v", got)
	}
}

func TestTypedStore_LoadMissing(t *testing.T) {
	ext, _, _ := newAttached(t)
	store := NewTypedStore[testState](ext, "test")

	got, err := store.Load(context.Background(), "nonexistent")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing key, got %+v", got)
	}
}

func TestTypedStore_Delete(t *testing.T) {
	ext, _, _ := newAttached(t)
	store := NewTypedStore[testState](ext, "test")
	ctx := context.Background()

	state := testState{Count: 1}
	if err := store.Save(ctx, "k1", &state, 0); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Delete(ctx, "k1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	got, err := store.Load(ctx, "k1")
	if err != nil {
		t.Fatalf("Load after delete failed: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil after delete, got %+v", got)
	}
}

func TestTypedStore_TTL(t *testing.T) {
	ext, mini, _ := newAttached(t)
	store := NewTypedStore[testState](ext, "test")
	ctx := context.Background()

	state := testState{Count: 1}
	if err := store.Save(ctx, "k1", &state, 2*time.Second); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if got, err := store.Load(ctx, "k1"); err != nil || got == nil {
		t.Fatalf("expected value before TTL, got %v, err %v", got, err)
	}

	mini.FastForward(3 * time.Second)

	got, err := store.Load(ctx, "k1")
	if err != nil {
		t.Fatalf("Load after TTL failed: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil after TTL expiration, got %+v", got)
	}
}

func TestTypedStore_KeyPrefix(t *testing.T) {
	ext, mini, _ := newAttached(t)
	ctx := context.Background()

	state := testState{Count: 42}
	if err := NewTypedStore[testState](ext, "myprefix").Save(ctx, "k1", &state, 0); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if raw, err := mini.Get("myprefix:k1"); err != nil || raw == "" {
		t.Fatalf("expected prefixed key in Redis, got %q, err %v", raw, err)
	}

	if err := NewTypedStore[testState](ext, "").Save(ctx, "bare-key", &state, 0); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !mini.Exists("bare-key") {
		t.Fatal("expected bare key in Redis")
	}
}

func TestTypedStore_Unattached(t *testing.T) {
	ext, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	store := NewTypedStore[testState](ext, "test")
	if _, err := store.Load(context.Background(), "k"); !stderrors.Is(err, ErrNotAttached) {
		t.Errorf("Load error = %v, want ErrNotAttached", err)
	}
}

func TestGetJSON_SetJSON(t *testing.T) {
	ext, _, _ := newAttached(t)
	ctx := context.Background()

	val := testState{Count: 10, Tags: []string{"x", "y"}}
	if err := SetJSON(ctx, ext, "json-key", val, 0); err != nil {
		t.Fatalf("SetJSON failed: %v", err)
	}

	var got testState
	if err := GetJSON(ctx, ext, "json-key", &got); err != nil {
		t.Fatalf("GetJSON failed: %v", err)
	}
	if got.Count != 10 || len(got.Tags) != 2 {
		t.Fatalf("expected Count=10, Tags=2, got %+v", got)
	}
}

func TestGetJSON_Missing(t *testing.T) {
	ext, _, _ := newAttached(t)
	var got testState
	if err := GetJSON(context.Background(), ext, "missing", &got); !stderrors.Is(err, goredis.Nil) {
		t.Fatalf("GetJSON error = %v, want redis.Nil", err)
	}
}

func TestGetJSON_InvalidPayload(t *testing.T) {
	ext, mini, _ := newAttached(t)
	if err := mini.Set("raw", "not-json"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	var got testState
	if err := GetJSON(context.Background(), ext, "raw", &got); err == nil {
		t.Fatal("expected decode error")
	}
}

type testState struct {
	Count int      `json:"count"`
	Tags  []string `json:"tags,omitempty"`
}
