package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pedopt/admin-backend/pkg/enums"
)

// Transaction is a direct pet sale settled outside the product order flow.
type Transaction struct {
	ID        uuid.UUID               `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	PetID     *uuid.UUID              `gorm:"column:pet_id;type:uuid;index"`
	BuyerID   *uuid.UUID              `gorm:"column:buyer_id;type:uuid"`
	SellerID  *uuid.UUID              `gorm:"column:seller_id;type:uuid"`
	Amount    decimal.Decimal         `gorm:"column:amount;type:numeric(12,2);not null"`
	Status    enums.TransactionStatus `gorm:"column:status;type:transaction_status;not null;default:'pending'"`
	CreatedAt time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
