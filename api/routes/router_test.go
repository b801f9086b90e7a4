package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/pedopt/admin-backend/internal/analytics"
	"github.com/pedopt/admin-backend/internal/commissions"
	"github.com/pedopt/admin-backend/internal/dashboard"
	"github.com/pedopt/admin-backend/internal/disputes"
	"github.com/pedopt/admin-backend/pkg/config"
	"github.com/pedopt/admin-backend/pkg/enums"
	"github.com/pedopt/admin-backend/pkg/logger"
	"github.com/pedopt/admin-backend/pkg/redis"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubAnalyticsService struct{}

func (stubAnalyticsService) Overview(ctx context.Context) analytics.Overview {
	return analytics.Overview{}
}

func (stubAnalyticsService) RevenueChart(ctx context.Context, p enums.Period) []analytics.RevenueBucket {
	return []analytics.RevenueBucket{}
}

func (stubAnalyticsService) TopSellers(ctx context.Context, limit int) []analytics.TopSeller {
	return []analytics.TopSeller{}
}

func (stubAnalyticsService) TopProducts(ctx context.Context, limit int) []analytics.TopProduct {
	return []analytics.TopProduct{}
}

func (stubAnalyticsService) TopPets(ctx context.Context, limit int) []analytics.TopPet {
	return []analytics.TopPet{}
}

func (stubAnalyticsService) UserGrowth(ctx context.Context, p enums.Period) []analytics.GrowthBucket {
	return []analytics.GrowthBucket{}
}

func (stubAnalyticsService) ActiveUsers(ctx context.Context) analytics.ActiveUsers {
	return analytics.ActiveUsers{}
}

func (stubAnalyticsService) TransactionVolume(ctx context.Context) []analytics.VolumeBucket {
	return []analytics.VolumeBucket{}
}

func (stubAnalyticsService) Snapshot(ctx context.Context) analytics.Snapshot {
	return analytics.Snapshot{}
}

type stubDashboardService struct{}

func (stubDashboardService) Stats(ctx context.Context) dashboard.Stats {
	return dashboard.Stats{}
}

type stubCommissionsService struct{}

func (stubCommissionsService) Stats(ctx context.Context) commissions.Stats {
	return commissions.Stats{}
}

func (stubCommissionsService) BySeller(ctx context.Context, limit int) []commissions.SellerCommission {
	return []commissions.SellerCommission{}
}

func (stubCommissionsService) ByPeriod(ctx context.Context, p enums.Period) []commissions.PeriodBucket {
	return []commissions.PeriodBucket{}
}

type stubDisputesService struct {
	resolveFn func(ctx context.Context, input disputes.ResolveInput) (*disputes.Resolution, error)
}

func (stubDisputesService) Analytics(ctx context.Context) disputes.Analytics {
	return disputes.Analytics{}
}

func (stubDisputesService) BySeller(ctx context.Context, limit int) []disputes.SellerDisputes {
	return []disputes.SellerDisputes{}
}

func (stubDisputesService) Trend(ctx context.Context, p enums.Period) []disputes.TrendBucket {
	return []disputes.TrendBucket{}
}

func (s stubDisputesService) Resolve(ctx context.Context, input disputes.ResolveInput) (*disputes.Resolution, error) {
	if s.resolveFn != nil {
		return s.resolveFn(ctx, input)
	}
	return &disputes.Resolution{
		DisputeID:      input.DisputeID,
		Status:         enums.DisputeStatusResolved,
		ResolutionType: input.Resolution,
		ResolvedAt:     time.Now().UTC(),
	}, nil
}

type memoryIdempotencyStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemoryIdempotencyStore() *memoryIdempotencyStore {
	return &memoryIdempotencyStore{data: map[string]string{}}
}

func (s *memoryIdempotencyStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.data[key]
	if !ok {
		return "", goredis.Nil
	}
	return value, nil
}

func (s *memoryIdempotencyStore) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; ok {
		return false, nil
	}
	s.data[key] = value.(string)
	return true, nil
}

func (s *memoryIdempotencyStore) IdempotencyKey(scope, id string) string {
	return "idempotency:" + scope + ":" + id
}

func (s *memoryIdempotencyStore) Del(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.data, key)
	}
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
	}
}

func newTestRouter(disputesSvc disputes.Service) http.Handler {
	return newTestRouterWithStore(disputesSvc, nil)
}

func newTestRouterWithStore(disputesSvc disputes.Service, store redis.IdempotencyStore) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(Deps{
		Config:        testConfig(),
		Logger:        logg,
		DBPinger:      stubPinger{},
		RedisPinger:   stubPinger{},
		Idempotency:   store,
		IdempotentTTL: time.Hour,
		Analytics:     stubAnalyticsService{},
		Dashboard:     stubDashboardService{},
		Commissions:   stubCommissionsService{},
		Disputes:      disputesSvc,
	})
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(stubDisputesService{})

	for _, path := range []string{"/health/live", "/health/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s got %d", path, resp.Code)
		}
		if got := resp.Header().Get("X-Pedopt-Env"); got != "test" {
			t.Fatalf("expected env header on %s got %q", path, got)
		}
	}
}

func TestReadEndpointsRespond(t *testing.T) {
	router := newTestRouter(stubDisputesService{})

	paths := []string{
		"/api/admin/v1/dashboard",
		"/api/admin/v1/analytics/overview",
		"/api/admin/v1/analytics/revenue",
		"/api/admin/v1/analytics/revenue?period=weekly",
		"/api/admin/v1/analytics/top-sellers",
		"/api/admin/v1/analytics/top-products?limit=5",
		"/api/admin/v1/analytics/top-pets",
		"/api/admin/v1/analytics/user-growth?period=monthly",
		"/api/admin/v1/analytics/active-users",
		"/api/admin/v1/analytics/transaction-volume",
		"/api/admin/v1/analytics/snapshot",
		"/api/admin/v1/disputes/analytics",
		"/api/admin/v1/disputes/by-seller",
		"/api/admin/v1/disputes/trend?period=weekly",
		"/api/admin/v1/commissions/stats",
		"/api/admin/v1/commissions/by-seller?limit=3",
		"/api/admin/v1/commissions/by-period?period=monthly",
	}
	for _, path := range paths {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s got %d: %s", path, resp.Code, resp.Body.String())
		}
	}
}

func TestInvalidPeriodRejected(t *testing.T) {
	router := newTestRouter(stubDisputesService{})

	for _, path := range []string{
		"/api/admin/v1/analytics/revenue?period=hourly",
		"/api/admin/v1/commissions/by-period?period=yearly",
		"/api/admin/v1/disputes/trend?period=annually",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %s got %d", path, resp.Code)
		}
	}
}

func TestInvalidLimitRejected(t *testing.T) {
	router := newTestRouter(stubDisputesService{})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/analytics/top-sellers?limit=zero", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad limit got %d", resp.Code)
	}
}

func TestReportReturnsCSVAttachment(t *testing.T) {
	router := newTestRouter(stubDisputesService{})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/analytics/report?period=weekly", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for report got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("expected csv content type got %q", ct)
	}
	if cd := resp.Header().Get("Content-Disposition"); !strings.Contains(cd, "analytics-report-weekly-") {
		t.Fatalf("expected attachment disposition got %q", cd)
	}
}

func TestResolveDisputeHappyPath(t *testing.T) {
	var captured disputes.ResolveInput
	svc := stubDisputesService{
		resolveFn: func(ctx context.Context, input disputes.ResolveInput) (*disputes.Resolution, error) {
			captured = input
			return &disputes.Resolution{
				DisputeID:      input.DisputeID,
				Status:         enums.DisputeStatusResolved,
				ResolutionType: input.Resolution,
				ResolvedAt:     time.Now().UTC(),
			}, nil
		},
	}
	router := newTestRouter(svc)

	disputeID := uuid.New()
	actorID := uuid.New()
	body := `{"resolution_type":"release_to_seller","resolution_notes":"seller shipped on time"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/disputes/"+disputeID.String()+"/resolve", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Actor-Id", actorID.String())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for resolve got %d: %s", resp.Code, resp.Body.String())
	}

	if captured.DisputeID != disputeID {
		t.Fatalf("expected dispute %s got %s", disputeID, captured.DisputeID)
	}
	if captured.ActorID != actorID {
		t.Fatalf("expected actor %s got %s", actorID, captured.ActorID)
	}
	if captured.Resolution != enums.DisputeResolutionReleaseToSeller {
		t.Fatalf("unexpected resolution type %q", captured.Resolution)
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(envelope.Data) == 0 {
		t.Fatal("expected data envelope")
	}
}

func TestResolveDisputeRequiresActorHeader(t *testing.T) {
	router := newTestRouter(stubDisputesService{})

	body := `{"resolution_type":"refund_buyer"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/disputes/"+uuid.NewString()+"/resolve", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without actor header got %d", resp.Code)
	}
}

func TestResolveDisputeRejectsBadID(t *testing.T) {
	router := newTestRouter(stubDisputesService{})

	body := `{"resolution_type":"refund_buyer"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/disputes/not-a-uuid/resolve", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Actor-Id", uuid.NewString())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad dispute id got %d", resp.Code)
	}
}

func TestResolveDisputeRequiresIdempotencyKey(t *testing.T) {
	calls := 0
	svc := stubDisputesService{
		resolveFn: func(ctx context.Context, input disputes.ResolveInput) (*disputes.Resolution, error) {
			calls++
			return &disputes.Resolution{DisputeID: input.DisputeID, Status: enums.DisputeStatusResolved}, nil
		},
	}
	router := newTestRouterWithStore(svc, newMemoryIdempotencyStore())

	body := `{"resolution_type":"refund_buyer","refund_amount":"40.00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/disputes/"+uuid.NewString()+"/resolve", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Actor-Id", uuid.NewString())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without idempotency key got %d: %s", resp.Code, resp.Body.String())
	}
	if calls != 0 {
		t.Fatalf("resolve ran %d times without an idempotency key", calls)
	}
}

func TestResolveDisputeReplaysDuplicateKey(t *testing.T) {
	calls := 0
	svc := stubDisputesService{
		resolveFn: func(ctx context.Context, input disputes.ResolveInput) (*disputes.Resolution, error) {
			calls++
			return &disputes.Resolution{
				DisputeID:      input.DisputeID,
				Status:         enums.DisputeStatusResolved,
				ResolutionType: input.Resolution,
				ResolvedAt:     time.Now().UTC(),
			}, nil
		},
	}
	router := newTestRouterWithStore(svc, newMemoryIdempotencyStore())

	disputeID := uuid.NewString()
	actorID := uuid.NewString()
	key := uuid.NewString()
	body := `{"resolution_type":"refund_buyer","refund_amount":"40.00","resolution_notes":"item never arrived"}`

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/disputes/"+disputeID+"/resolve", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Actor-Id", actorID)
		req.Header.Set("Idempotency-Key", key)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		return resp
	}

	first := send()
	if first.Code != http.StatusOK {
		t.Fatalf("expected 200 for first resolve got %d: %s", first.Code, first.Body.String())
	}
	second := send()
	if second.Code != http.StatusOK {
		t.Fatalf("expected 200 for replayed resolve got %d: %s", second.Code, second.Body.String())
	}
	if calls != 1 {
		t.Fatalf("resolve ran %d times for one idempotency key", calls)
	}
	if first.Body.String() != second.Body.String() {
		t.Fatalf("replay body mismatch:\nfirst: %s\nsecond: %s", first.Body.String(), second.Body.String())
	}
}

func TestResolveDisputeRejectsKeyReuseAcrossBodies(t *testing.T) {
	router := newTestRouterWithStore(stubDisputesService{}, newMemoryIdempotencyStore())

	disputeID := uuid.NewString()
	actorID := uuid.NewString()
	key := uuid.NewString()

	send := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/disputes/"+disputeID+"/resolve", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Actor-Id", actorID)
		req.Header.Set("Idempotency-Key", key)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		return resp
	}

	if resp := send(`{"resolution_type":"refund_buyer","refund_amount":"40.00"}`); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for first resolve got %d: %s", resp.Code, resp.Body.String())
	}
	resp := send(`{"resolution_type":"release_to_seller"}`)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 for key reuse with different body got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestResolveDisputeRejectsUnknownType(t *testing.T) {
	router := newTestRouter(stubDisputesService{})

	body := `{"resolution_type":"split_the_difference"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/disputes/"+uuid.NewString()+"/resolve", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Actor-Id", uuid.NewString())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown resolution type got %d", resp.Code)
	}
}
