package analytics

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/pedopt/admin-backend/pkg/enums"
	pkgerrors "github.com/pedopt/admin-backend/pkg/errors"
)

func parsePeriod(r *http.Request) (enums.Period, error) {
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

func parseLimit(r *http.Request, fallback, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("limit"))
	if raw == "" {
		return fallback, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid limit").
			WithDetails(map[string]string{"limit": "must be a positive integer"})
	}
	if limit > max {
		limit = max
	}
	return limit, nil
}
