package commissions

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pedopt/admin-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Row is the commission projection the folds consume.
type Row struct {
	EscrowAccountID uuid.UUID
	Fee             decimal.Decimal
	Rate            decimal.Decimal
	Status          enums.CommissionStatus
	CalculatedAt    time.Time
}

// SellerProfile is the display data joined onto seller breakdowns.
type SellerProfile struct {
	Name           string
	ReputationTier string
}

// Repository defines the commission projections. Reductions happen in
// memory; the repository only filters and projects.
type Repository interface {
	CommissionRows(ctx context.Context, statuses []enums.CommissionStatus, since *time.Time) ([]Row, error)
	EscrowSellers(ctx context.Context, escrowAccountIDs []uuid.UUID) (map[uuid.UUID]uuid.UUID, error)
	SellerProfiles(ctx context.Context, sellerIDs []uuid.UUID) (map[uuid.UUID]SellerProfile, error)
}

// Service exposes the commission aggregations. Reads are best-effort: a
// failed fetch is logged and degrades to zeros.
type Service interface {
	Stats(ctx context.Context) Stats
	BySeller(ctx context.Context, limit int) []SellerCommission
	ByPeriod(ctx context.Context, p enums.Period) []PeriodBucket
}
