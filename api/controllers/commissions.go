package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/pedopt/admin-backend/api/responses"
	"github.com/pedopt/admin-backend/internal/commissions"
	"github.com/pedopt/admin-backend/pkg/enums"
	pkgerrors "github.com/pedopt/admin-backend/pkg/errors"
	"github.com/pedopt/admin-backend/pkg/logger"
)

const (
	defaultBreakdownLimit = 20
	maxBreakdownLimit     = 100
)

func CommissionStats(service commissions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, service.Stats(r.Context()))
	}
}

func CommissionBySeller(service commissions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		limit, err := breakdownLimit(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, service.BySeller(ctx, limit))
	}
}

func CommissionByPeriod(service commissions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		period, err := queryPeriod(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, service.ByPeriod(ctx, period))
	}
}

func queryPeriod(r *http.Request) (enums.Period, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("period"))
	if raw == "" {
		return enums.PeriodDaily, nil
	}
	p, err := enums.ParsePeriod(strings.ToLower(raw))
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "invalid period").
			WithDetails(map[string]string{"period": "must be one of daily, weekly, monthly"})
	}
	return p, nil
}

func breakdownLimit(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("limit"))
	if raw == "" {
		return defaultBreakdownLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid limit").
			WithDetails(map[string]string{"limit": "must be a positive integer"})
	}
	if limit > maxBreakdownLimit {
		limit = maxBreakdownLimit
	}
	return limit, nil
}
