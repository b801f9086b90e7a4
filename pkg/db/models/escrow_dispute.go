package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pedopt/admin-backend/pkg/enums"
)

// EscrowDispute is a buyer/seller conflict over escrowed funds.
// resolved_by records the admin who settled it.
type EscrowDispute struct {
	ID              uuid.UUID                    `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	EscrowAccountID uuid.UUID                    `gorm:"column:escrow_account_id;type:uuid;not null;index"`
	BuyerID         *uuid.UUID                   `gorm:"column:buyer_id;type:uuid"`
	SellerID        uuid.UUID                    `gorm:"column:seller_id;type:uuid;not null;index"`
	DisputeType     *string                      `gorm:"column:dispute_type"`
	Description     *string                      `gorm:"column:description"`
	Status          enums.DisputeStatus          `gorm:"column:status;type:dispute_status;not null;default:'open'"`
	ResolutionType  *enums.DisputeResolutionType `gorm:"column:resolution_type;type:dispute_resolution_type"`
	ResolutionNotes *string                      `gorm:"column:resolution_notes"`
	RefundAmount    *decimal.Decimal             `gorm:"column:refund_amount;type:numeric(12,2)"`
	ResolvedBy      *uuid.UUID                   `gorm:"column:resolved_by;type:uuid"`
	OpenedAt        time.Time                    `gorm:"column:opened_at;not null"`
	ResolvedAt      *time.Time                   `gorm:"column:resolved_at"`
	CreatedAt       time.Time                    `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time                    `gorm:"column:updated_at;autoUpdateTime"`
}
