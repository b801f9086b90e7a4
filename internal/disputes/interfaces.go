package disputes

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pedopt/admin-backend/pkg/db/models"
	"github.com/pedopt/admin-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// ResolvedRow is a resolved dispute projected for the rate and
// resolution time folds.
type ResolvedRow struct {
	ResolutionType *enums.DisputeResolutionType
	OpenedAt       time.Time
	ResolvedAt     *time.Time
}

// SellerRow attributes one dispute to a seller.
type SellerRow struct {
	SellerID uuid.UUID
	Status   enums.DisputeStatus
}

// TrendRow is a dispute projected for the trend fold.
type TrendRow struct {
	OpenedAt   time.Time
	Status     enums.DisputeStatus
	ResolvedAt *time.Time
}

// ResolutionUpdate carries the fields written when a dispute resolves.
type ResolutionUpdate struct {
	DisputeID       uuid.UUID
	ResolutionType  enums.DisputeResolutionType
	ResolutionNotes string
	RefundAmount    *decimal.Decimal
	ResolvedBy      uuid.UUID
	ResolvedAt      time.Time
}

// Repository defines dispute reads plus the resolution writes. The
// escrow settlement calls run as stored procedures so the money moves
// inside the database.
type Repository interface {
	CountDisputes(ctx context.Context, statuses []enums.DisputeStatus) (int64, error)
	ResolvedRows(ctx context.Context) ([]ResolvedRow, error)
	CountOrders(ctx context.Context, statuses []enums.OrderStatus) (int64, error)
	SellerDisputeRows(ctx context.Context, statuses []enums.DisputeStatus) ([]SellerRow, error)
	SellerOrderCounts(ctx context.Context, statuses []enums.OrderStatus) (map[uuid.UUID]int64, error)
	ProfileNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
	TrendRows(ctx context.Context, since time.Time) ([]TrendRow, error)

	FindDispute(ctx context.Context, id uuid.UUID) (*models.EscrowDispute, error)
	MarkResolved(ctx context.Context, update ResolutionUpdate) error
	RefundEscrowToBuyer(ctx context.Context, escrowAccountID uuid.UUID, amount *decimal.Decimal) error
	ReleaseEscrowToSeller(ctx context.Context, escrowAccountID uuid.UUID) error
}

// Service exposes the dispute aggregations and the resolution flow.
// Reads are best-effort and degrade to zeros; Resolve is the one
// operation that surfaces errors to the caller.
type Service interface {
	Analytics(ctx context.Context) Analytics
	BySeller(ctx context.Context, limit int) []SellerDisputes
	Trend(ctx context.Context, p enums.Period) []TrendBucket
	Resolve(ctx context.Context, input ResolveInput) (*Resolution, error)
}
