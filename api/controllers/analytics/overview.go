package analytics

import (
	"net/http"

	"github.com/pedopt/admin-backend/api/responses"
	"github.com/pedopt/admin-backend/internal/analytics"
	"github.com/pedopt/admin-backend/pkg/logger"
)

func Overview(service analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, service.Overview(r.Context()))
	}
}

func ActiveUsers(service analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, service.ActiveUsers(r.Context()))
	}
}

func TransactionVolume(service analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, service.TransactionVolume(r.Context()))
	}
}

func Snapshot(service analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, service.Snapshot(r.Context()))
	}
}
