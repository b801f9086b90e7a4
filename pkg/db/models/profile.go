package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/pedopt/admin-backend/pkg/enums"
)

// Profile is the marketplace identity row shared by buyers and sellers.
type Profile struct {
	ID               uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email            string            `gorm:"type:text;not null;uniqueIndex"`
	FullName         *string           `gorm:"column:full_name"`
	Role             enums.ProfileRole `gorm:"column:role;type:profile_role;not null;default:'user'"`
	ReputationPoints int               `gorm:"column:reputation_points;not null;default:0"`
	ReputationTier   *string           `gorm:"column:reputation_tier"`
	CreatedAt        time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
