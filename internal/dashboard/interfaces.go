package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pedopt/admin-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// PayoutRow is a payout projected for the recent activity feed.
type PayoutRow struct {
	ID           uuid.UUID
	SellerID     uuid.UUID
	PayoutAmount decimal.Decimal
	PayoutMethod *string
	Status       enums.PayoutStatus
	CreatedAt    time.Time
}

// DisputeRow is a dispute projected for the recent activity feed.
type DisputeRow struct {
	ID          uuid.UUID
	SellerID    uuid.UUID
	DisputeType *string
	Status      enums.DisputeStatus
	OpenedAt    time.Time
}

// Repository defines the counts and feeds behind the landing page.
type Repository interface {
	CountProfiles(ctx context.Context, role *enums.ProfileRole) (int64, error)
	CountPets(ctx context.Context) (int64, error)
	CountOrdersSince(ctx context.Context, since time.Time) (int64, error)
	CountPayouts(ctx context.Context, statuses []enums.PayoutStatus) (int64, error)
	CountDisputes(ctx context.Context, statuses []enums.DisputeStatus) (int64, error)
	EscrowVolume(ctx context.Context, statuses []enums.EscrowStatus) (decimal.Decimal, error)
	RecentPayouts(ctx context.Context, limit int) ([]PayoutRow, error)
	RecentDisputes(ctx context.Context, limit int) ([]DisputeRow, error)
}

// Service exposes the landing page summary. Reads are best-effort and
// degrade to zeros on failure.
type Service interface {
	Stats(ctx context.Context) Stats
}
