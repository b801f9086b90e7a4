package models

import (
	"time"

	"github.com/google/uuid"
)

// Pet is a listed pet profile; views and matches feed the popularity ranking.
type Pet struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	SellerID  *uuid.UUID `gorm:"column:seller_id;type:uuid;index"`
	Name      *string    `gorm:"column:name"`
	Species   *string    `gorm:"column:species"`
	Breed     *string    `gorm:"column:breed"`
	ViewCount int        `gorm:"column:view_count;not null;default:0"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
