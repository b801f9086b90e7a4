package analytics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/pedopt/admin-backend/api/responses"
	"github.com/pedopt/admin-backend/internal/analytics"
	"github.com/pedopt/admin-backend/internal/reports"
	"github.com/pedopt/admin-backend/pkg/logger"
)

// Report streams the full analytics snapshot as a CSV download.
func Report(service analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		period, err := parsePeriod(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		now := time.Now().UTC()
		document := reports.Generate(service.Snapshot(ctx), period, now)

		filename := fmt.Sprintf("analytics-report-%s-%s.csv", period, now.Format("2006-01-02"))
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(document))
	}
}
