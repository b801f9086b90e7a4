package analytics

import (
	"net/http"

	"github.com/pedopt/admin-backend/api/responses"
	"github.com/pedopt/admin-backend/internal/analytics"
	"github.com/pedopt/admin-backend/pkg/logger"
)

func RevenueChart(service analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		period, err := parsePeriod(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, service.RevenueChart(ctx, period))
	}
}

func UserGrowth(service analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		period, err := parsePeriod(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, service.UserGrowth(ctx, period))
	}
}
