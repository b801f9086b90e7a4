package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pedopt/admin-backend/pkg/enums"
)

// PayoutRecord tracks funds paid out to a seller.
type PayoutRecord struct {
	ID           uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	SellerID     uuid.UUID          `gorm:"column:seller_id;type:uuid;not null;index"`
	PayoutAmount decimal.Decimal    `gorm:"column:payout_amount;type:numeric(12,2);not null"`
	PayoutMethod *string            `gorm:"column:payout_method"`
	Status       enums.PayoutStatus `gorm:"column:status;type:payout_status;not null;default:'pending'"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
