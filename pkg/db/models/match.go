package models

import (
	"time"

	"github.com/google/uuid"
)

// Match records a swipe decision on a pet profile.
type Match struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	PetID     uuid.UUID  `gorm:"column:pet_id;type:uuid;not null;index"`
	ProfileID *uuid.UUID `gorm:"column:profile_id;type:uuid"`
	Liked     bool       `gorm:"column:liked;not null;default:false"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
}
