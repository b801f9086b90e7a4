package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pedopt/admin-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// CommissionRow is the projection revenue folds consume.
type CommissionRow struct {
	Fee          decimal.Decimal
	CalculatedAt time.Time
}

// EscrowRow is the projection escrow folds consume.
type EscrowRow struct {
	Amount    decimal.Decimal
	CreatedAt time.Time
}

// OrderRow carries the per-order fields the ranking folds need.
type OrderRow struct {
	SellerID   uuid.UUID
	ProductID  uuid.UUID
	Quantity   int
	FinalPrice decimal.Decimal
}

// TransactionRow is a settled direct pet sale.
type TransactionRow struct {
	Amount decimal.Decimal
}

// ProfileRow carries signup metadata for growth folds.
type ProfileRow struct {
	Role      enums.ProfileRole
	CreatedAt time.Time
}

// PetRow is a pet ordered by popularity.
type PetRow struct {
	ID        uuid.UUID
	Name      *string
	ViewCount int
}

// Repository defines the read-only projections the aggregations fold over.
// All reductions happen in memory; the repository only filters and projects.
type Repository interface {
	CommissionRows(ctx context.Context, statuses []enums.CommissionStatus, since *time.Time) ([]CommissionRow, error)
	EscrowRows(ctx context.Context, statuses []enums.EscrowStatus, since *time.Time) ([]EscrowRow, error)
	PayoutSum(ctx context.Context, statuses []enums.PayoutStatus) (decimal.Decimal, error)
	OrderRows(ctx context.Context, statuses []enums.OrderStatus) ([]OrderRow, error)
	TransactionRows(ctx context.Context, statuses []enums.TransactionStatus) ([]TransactionRow, error)
	CountOrders(ctx context.Context, statuses []enums.OrderStatus) (int64, error)
	CountTransactions(ctx context.Context, statuses []enums.TransactionStatus) (int64, error)
	CountDisputes(ctx context.Context) (int64, error)
	ProfilesCreatedSince(ctx context.Context, since time.Time) ([]ProfileRow, error)
	CountProfilesUpdatedSince(ctx context.Context, since time.Time) (int64, error)
	ProfileNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
	ProductNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
	MostViewedPets(ctx context.Context, limit int) ([]PetRow, error)
	LikedMatchCounts(ctx context.Context, petIDs []uuid.UUID) (map[uuid.UUID]int64, error)
}

// Service exposes the admin analytics aggregations. Reads are
// best-effort: a failed fetch is logged and degrades to zeros so one
// broken table never blanks the whole dashboard.
type Service interface {
	Overview(ctx context.Context) Overview
	RevenueChart(ctx context.Context, p enums.Period) []RevenueBucket
	TopSellers(ctx context.Context, limit int) []TopSeller
	TopProducts(ctx context.Context, limit int) []TopProduct
	TopPets(ctx context.Context, limit int) []TopPet
	UserGrowth(ctx context.Context, p enums.Period) []GrowthBucket
	ActiveUsers(ctx context.Context) ActiveUsers
	TransactionVolume(ctx context.Context) []VolumeBucket
	Snapshot(ctx context.Context) Snapshot
}
