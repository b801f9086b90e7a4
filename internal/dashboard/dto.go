package dashboard

import (
	"time"

	"github.com/google/uuid"
	"github.com/pedopt/admin-backend/pkg/enums"
)

// RecentPayout is one row of the recent payout feed.
type RecentPayout struct {
	ID           uuid.UUID          `json:"id"`
	SellerID     uuid.UUID          `json:"seller_id"`
	PayoutAmount int64              `json:"payout_amount"`
	PayoutMethod string             `json:"payout_method,omitempty"`
	Status       enums.PayoutStatus `json:"status"`
	CreatedAt    time.Time          `json:"created_at"`
}

// RecentDispute is one row of the recent dispute feed.
type RecentDispute struct {
	ID          uuid.UUID           `json:"id"`
	SellerID    uuid.UUID           `json:"seller_id"`
	DisputeType string              `json:"dispute_type,omitempty"`
	Status      enums.DisputeStatus `json:"status"`
	OpenedAt    time.Time           `json:"opened_at"`
}

// Stats is the landing page summary.
type Stats struct {
	TotalUsers     int64           `json:"total_users"`
	TotalSellers   int64           `json:"total_sellers"`
	TotalPets      int64           `json:"total_pets"`
	OrdersToday    int64           `json:"orders_today"`
	PendingPayouts int64           `json:"pending_payouts"`
	OpenDisputes   int64           `json:"open_disputes"`
	EscrowVolume   int64           `json:"escrow_volume"`
	RecentPayouts  []RecentPayout  `json:"recent_payouts"`
	RecentDisputes []RecentDispute `json:"recent_disputes"`
}
