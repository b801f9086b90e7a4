package disputes

import (
	"time"

	"github.com/google/uuid"
	"github.com/pedopt/admin-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Analytics is the dispute headline summary. Rates are percentages and
// resolution time is in days, both rounded to two decimals.
type Analytics struct {
	TotalDisputes     int64   `json:"total_disputes"`
	OpenDisputes      int64   `json:"open_disputes"`
	ResolvedDisputes  int64   `json:"resolved_disputes"`
	AvgResolutionDays float64 `json:"avg_resolution_time"`
	DisputeRate       float64 `json:"dispute_rate"`
	RefundRate        float64 `json:"refund_rate"`
	ReleaseRate       float64 `json:"release_rate"`
	PartialRefundRate float64 `json:"partial_refund_rate"`
}

// SellerDisputes is the dispute load attributed to one seller.
type SellerDisputes struct {
	SellerID         uuid.UUID `json:"seller_id"`
	SellerName       string    `json:"seller_name"`
	TotalDisputes    int       `json:"total_disputes"`
	ResolvedDisputes int       `json:"resolved_disputes"`
	DisputeRate      float64   `json:"dispute_rate"`
}

// TrendBucket is dispute activity for one time bucket, keyed by the
// opening date.
type TrendBucket struct {
	Date              string  `json:"date"`
	Opened            int     `json:"opened"`
	Resolved          int     `json:"resolved"`
	AvgResolutionDays float64 `json:"avg_resolution_time"`
}

// ResolveInput carries an admin resolution decision.
type ResolveInput struct {
	DisputeID    uuid.UUID
	Resolution   enums.DisputeResolutionType
	Notes        string
	RefundAmount *decimal.Decimal
	ActorID      uuid.UUID
}

// Resolution is the outcome returned after a dispute resolves.
type Resolution struct {
	DisputeID      uuid.UUID                   `json:"dispute_id"`
	Status         enums.DisputeStatus         `json:"status"`
	ResolutionType enums.DisputeResolutionType `json:"resolution_type"`
	ResolvedAt     time.Time                   `json:"resolved_at"`
}
