package commissions

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pedopt/admin-backend/pkg/db/models"
	"github.com/pedopt/admin-backend/pkg/enums"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a commission repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CommissionRows(ctx context.Context, statuses []enums.CommissionStatus, since *time.Time) ([]Row, error) {
	query := r.db.WithContext(ctx).
		Model(&models.PlatformCommission{}).
		Select("escrow_account_id, total_platform_fee AS fee, commission_rate AS rate, status, calculated_at")
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	if since != nil {
		query = query.Where("calculated_at >= ?", *since)
	}

	var rows []Row
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) EscrowSellers(ctx context.Context, escrowAccountIDs []uuid.UUID) (map[uuid.UUID]uuid.UUID, error) {
	sellers := make(map[uuid.UUID]uuid.UUID, len(escrowAccountIDs))
	if len(escrowAccountIDs) == 0 {
		return sellers, nil
	}

	var rows []struct {
		ID       uuid.UUID
		SellerID uuid.UUID
	}
	err := r.db.WithContext(ctx).
		Model(&models.EscrowAccount{}).
		Select("id, seller_id").
		Where("id IN ?", escrowAccountIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		sellers[row.ID] = row.SellerID
	}
	return sellers, nil
}

func (r *repository) SellerProfiles(ctx context.Context, sellerIDs []uuid.UUID) (map[uuid.UUID]SellerProfile, error) {
	profiles := make(map[uuid.UUID]SellerProfile, len(sellerIDs))
	if len(sellerIDs) == 0 {
		return profiles, nil
	}

	var rows []struct {
		ID             uuid.UUID
		FullName       *string
		ReputationTier *string
	}
	err := r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Select("id, full_name, reputation_tier").
		Where("id IN ?", sellerIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		profile := SellerProfile{}
		if row.FullName != nil {
			profile.Name = *row.FullName
		}
		if row.ReputationTier != nil {
			profile.ReputationTier = *row.ReputationTier
		}
		profiles[row.ID] = profile
	}
	return profiles, nil
}
