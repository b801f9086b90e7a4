package controllers

import (
	"net/http"

	"github.com/pedopt/admin-backend/api/responses"
	"github.com/pedopt/admin-backend/internal/dashboard"
	"github.com/pedopt/admin-backend/pkg/logger"
)

func DashboardStats(service dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, service.Stats(r.Context()))
	}
}
