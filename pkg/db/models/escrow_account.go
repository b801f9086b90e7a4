package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pedopt/admin-backend/pkg/enums"
)

// EscrowAccount holds buyer funds for an order until release or refund.
type EscrowAccount struct {
	ID        uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   *uuid.UUID         `gorm:"column:order_id;type:uuid;index"`
	BuyerID   *uuid.UUID         `gorm:"column:buyer_id;type:uuid"`
	SellerID  uuid.UUID          `gorm:"column:seller_id;type:uuid;not null;index"`
	Amount    decimal.Decimal    `gorm:"column:amount;type:numeric(12,2);not null"`
	Status    enums.EscrowStatus `gorm:"column:status;type:escrow_status;not null;default:'pending'"`
	CreatedAt time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
