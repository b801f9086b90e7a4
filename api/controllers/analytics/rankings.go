package analytics

import (
	"net/http"

	"github.com/pedopt/admin-backend/api/responses"
	"github.com/pedopt/admin-backend/internal/analytics"
	"github.com/pedopt/admin-backend/pkg/logger"
)

const (
	defaultRankingLimit = 10
	maxRankingLimit     = 50
)

func TopSellers(service analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		limit, err := parseLimit(r, defaultRankingLimit, maxRankingLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, service.TopSellers(ctx, limit))
	}
}

func TopProducts(service analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		limit, err := parseLimit(r, defaultRankingLimit, maxRankingLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, service.TopProducts(ctx, limit))
	}
}

func TopPets(service analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		limit, err := parseLimit(r, defaultRankingLimit, maxRankingLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, service.TopPets(ctx, limit))
	}
}
