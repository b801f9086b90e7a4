package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pedopt/admin-backend/pkg/enums"
)

// Order is a product purchase; final_price is the charged amount after
// any discounts.
type Order struct {
	ID         uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	BuyerID    *uuid.UUID        `gorm:"column:buyer_id;type:uuid;index"`
	SellerID   uuid.UUID         `gorm:"column:seller_id;type:uuid;not null;index"`
	ProductID  uuid.UUID         `gorm:"column:product_id;type:uuid;not null;index"`
	Quantity   int               `gorm:"column:quantity;not null;default:1"`
	UnitPrice  decimal.Decimal   `gorm:"column:unit_price;type:numeric(12,2);not null"`
	FinalPrice decimal.Decimal   `gorm:"column:final_price;type:numeric(12,2);not null"`
	Status     enums.OrderStatus `gorm:"column:status;type:order_status;not null;default:'pending'"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
