package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/pedopt/admin-backend/pkg/logger"
)

type memoryStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: map[string]string{}}
}

func (s *memoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.data[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (s *memoryStore) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; ok {
		return false, nil
	}
	s.data[key] = value.(string)
	return true, nil
}

func (s *memoryStore) IdempotencyKey(scope, id string) string {
	return "idempotency:" + scope + ":" + id
}

func (s *memoryStore) Del(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.data, key)
	}
	return nil
}

func newIdempotentRouter(store *memoryStore, calls *int) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	r := chi.NewRouter()
	r.Use(Idempotency(store, logg, time.Hour))
	r.Post("/api/admin/v1/disputes/{disputeID}/resolve", func(w http.ResponseWriter, _ *http.Request) {
		*calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"data":{"status":"resolved"}}`))
	})
	r.Get("/api/admin/v1/analytics/overview", func(w http.ResponseWriter, _ *http.Request) {
		*calls++
		w.WriteHeader(http.StatusOK)
	})
	return r
}

func TestIdempotencyReplayReturnsStoredResponse(t *testing.T) {
	store := newMemoryStore()
	calls := 0
	router := newIdempotentRouter(store, &calls)

	body := `{"resolution_type":"refund_buyer"}`
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/disputes/abc/resolve", strings.NewReader(body))
		req.Header.Set("Idempotency-Key", "key-1")
		req.Header.Set(ActorIDHeader, "admin-1")
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("attempt %d: expected 200 got %d", i, resp.Code)
		}
		if !strings.Contains(resp.Body.String(), "resolved") {
			t.Fatalf("attempt %d: unexpected body %q", i, resp.Body.String())
		}
	}
	if calls != 1 {
		t.Fatalf("expected handler to run once, ran %d times", calls)
	}
}

func TestIdempotencyRejectsReusedKeyWithDifferentBody(t *testing.T) {
	store := newMemoryStore()
	calls := 0
	router := newIdempotentRouter(store, &calls)

	first := httptest.NewRequest(http.MethodPost, "/api/admin/v1/disputes/abc/resolve", strings.NewReader(`{"resolution_type":"refund_buyer"}`))
	first.Header.Set("Idempotency-Key", "key-1")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, first)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	second := httptest.NewRequest(http.MethodPost, "/api/admin/v1/disputes/abc/resolve", strings.NewReader(`{"resolution_type":"release_to_seller"}`))
	second.Header.Set("Idempotency-Key", "key-1")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, second)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 for mismatched body got %d", resp.Code)
	}
	if calls != 1 {
		t.Fatalf("expected handler to run once, ran %d times", calls)
	}
}

func TestIdempotencyRequiresKeyHeader(t *testing.T) {
	store := newMemoryStore()
	calls := 0
	router := newIdempotentRouter(store, &calls)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/disputes/abc/resolve", strings.NewReader("{}"))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without Idempotency-Key got %d", resp.Code)
	}
	if calls != 0 {
		t.Fatalf("handler must not run without a key")
	}
}

func TestIdempotencySkipsUnmatchedRoutes(t *testing.T) {
	store := newMemoryStore()
	calls := 0
	router := newIdempotentRouter(store, &calls)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/analytics/overview", nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200 got %d", resp.Code)
		}
	}
	if calls != 2 {
		t.Fatalf("reads must not be deduplicated, ran %d times", calls)
	}
}
