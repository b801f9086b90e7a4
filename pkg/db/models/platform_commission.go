package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pedopt/admin-backend/pkg/enums"
)

// PlatformCommission is the fee the platform takes on an escrowed sale.
type PlatformCommission struct {
	ID               uuid.UUID              `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	EscrowAccountID  uuid.UUID              `gorm:"column:escrow_account_id;type:uuid;not null;index"`
	CommissionRate   decimal.Decimal        `gorm:"column:commission_rate;type:numeric(6,4);not null"`
	TotalPlatformFee decimal.Decimal        `gorm:"column:total_platform_fee;type:numeric(12,2);not null"`
	Status           enums.CommissionStatus `gorm:"column:status;type:commission_status;not null;default:'pending'"`
	CalculatedAt     time.Time              `gorm:"column:calculated_at;not null"`
	CreatedAt        time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}
