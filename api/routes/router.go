package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pedopt/admin-backend/api/controllers"
	analyticscontrollers "github.com/pedopt/admin-backend/api/controllers/analytics"
	"github.com/pedopt/admin-backend/api/middleware"
	"github.com/pedopt/admin-backend/internal/analytics"
	"github.com/pedopt/admin-backend/internal/commissions"
	"github.com/pedopt/admin-backend/internal/dashboard"
	"github.com/pedopt/admin-backend/internal/disputes"
	"github.com/pedopt/admin-backend/pkg/config"
	"github.com/pedopt/admin-backend/pkg/db"
	"github.com/pedopt/admin-backend/pkg/logger"
	"github.com/pedopt/admin-backend/pkg/metrics"
	"github.com/pedopt/admin-backend/pkg/redis"
)

// Deps carries everything the router wires together. Nil optional deps
// (metrics, idempotency store) degrade to pass-through behavior.
type Deps struct {
	Config        *config.Config
	Logger        *logger.Logger
	DBPinger      db.Pinger
	RedisPinger   redis.Pinger
	Idempotency   redis.IdempotencyStore
	IdempotentTTL time.Duration
	RateLimiter   middleware.RateLimiterStore
	RateLimit     middleware.RateLimitPolicy
	Registry      *prometheus.Registry
	HTTPMetrics   *metrics.HTTPMetrics

	Analytics   analytics.Service
	Dashboard   dashboard.Service
	Commissions commissions.Service
	Disputes    disputes.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)
	if deps.HTTPMetrics != nil {
		r.Use(middleware.Metrics(deps.HTTPMetrics))
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DBPinger, deps.RedisPinger))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(deps.RateLimit, deps.RateLimiter, logg))
		r.Use(middleware.Idempotency(deps.Idempotency, logg, deps.IdempotentTTL))

		r.Get("/dashboard", controllers.DashboardStats(deps.Dashboard, logg))

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/overview", analyticscontrollers.Overview(deps.Analytics, logg))
			r.Get("/revenue", analyticscontrollers.RevenueChart(deps.Analytics, logg))
			r.Get("/top-sellers", analyticscontrollers.TopSellers(deps.Analytics, logg))
			r.Get("/top-products", analyticscontrollers.TopProducts(deps.Analytics, logg))
			r.Get("/top-pets", analyticscontrollers.TopPets(deps.Analytics, logg))
			r.Get("/user-growth", analyticscontrollers.UserGrowth(deps.Analytics, logg))
			r.Get("/active-users", analyticscontrollers.ActiveUsers(deps.Analytics, logg))
			r.Get("/transaction-volume", analyticscontrollers.TransactionVolume(deps.Analytics, logg))
			r.Get("/snapshot", analyticscontrollers.Snapshot(deps.Analytics, logg))
			r.Get("/report", analyticscontrollers.Report(deps.Analytics, logg))
		})

		r.Route("/disputes", func(r chi.Router) {
			r.Get("/analytics", controllers.DisputeAnalytics(deps.Disputes, logg))
			r.Get("/by-seller", controllers.DisputeBySeller(deps.Disputes, logg))
			r.Get("/trend", controllers.DisputeTrend(deps.Disputes, logg))
			r.Post("/{disputeID}/resolve", controllers.DisputeResolve(deps.Disputes, logg))
		})

		r.Route("/commissions", func(r chi.Router) {
			r.Get("/stats", controllers.CommissionStats(deps.Commissions, logg))
			r.Get("/by-seller", controllers.CommissionBySeller(deps.Commissions, logg))
			r.Get("/by-period", controllers.CommissionByPeriod(deps.Commissions, logg))
		})
	})

	return r
}
