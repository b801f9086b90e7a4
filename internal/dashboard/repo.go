package dashboard

import (
	"context"
	"time"

	"github.com/pedopt/admin-backend/pkg/db/models"
	"github.com/pedopt/admin-backend/pkg/enums"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a dashboard repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CountProfiles(ctx context.Context, role *enums.ProfileRole) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Profile{})
	if role != nil {
		query = query.Where("role = ?", *role)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) CountPets(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Pet{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) CountOrdersSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) CountPayouts(ctx context.Context, statuses []enums.PayoutStatus) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PayoutRecord{})
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) CountDisputes(ctx context.Context, statuses []enums.DisputeStatus) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.EscrowDispute{})
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) EscrowVolume(ctx context.Context, statuses []enums.EscrowStatus) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&models.EscrowAccount{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("status IN ?", statuses).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (r *repository) RecentPayouts(ctx context.Context, limit int) ([]PayoutRow, error) {
	var rows []PayoutRow
	err := r.db.WithContext(ctx).
		Model(&models.PayoutRecord{}).
		Select("id, seller_id, payout_amount, payout_method, status, created_at").
		Order("created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) RecentDisputes(ctx context.Context, limit int) ([]DisputeRow, error) {
	var rows []DisputeRow
	err := r.db.WithContext(ctx).
		Model(&models.EscrowDispute{}).
		Select("id, seller_id, dispute_type, status, opened_at").
		Order("opened_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
