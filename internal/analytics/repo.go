package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pedopt/admin-backend/pkg/db/models"
	"github.com/pedopt/admin-backend/pkg/enums"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an analytics repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CommissionRows(ctx context.Context, statuses []enums.CommissionStatus, since *time.Time) ([]CommissionRow, error) {
	query := r.db.WithContext(ctx).
		Model(&models.PlatformCommission{}).
		Select("total_platform_fee AS fee, calculated_at")
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	if since != nil {
		query = query.Where("calculated_at >= ?", *since)
	}

	var rows []CommissionRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) EscrowRows(ctx context.Context, statuses []enums.EscrowStatus, since *time.Time) ([]EscrowRow, error) {
	query := r.db.WithContext(ctx).
		Model(&models.EscrowAccount{}).
		Select("amount, created_at")
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	if since != nil {
		query = query.Where("created_at >= ?", *since)
	}

	var rows []EscrowRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) PayoutSum(ctx context.Context, statuses []enums.PayoutStatus) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&models.PayoutRecord{}).
		Select("COALESCE(SUM(payout_amount), 0)").
		Where("status IN ?", statuses).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (r *repository) OrderRows(ctx context.Context, statuses []enums.OrderStatus) ([]OrderRow, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("seller_id, product_id, quantity, final_price")
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}

	var rows []OrderRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) TransactionRows(ctx context.Context, statuses []enums.TransactionStatus) ([]TransactionRow, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Select("amount")
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}

	var rows []TransactionRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) CountOrders(ctx context.Context, statuses []enums.OrderStatus) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Order{})
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) CountTransactions(ctx context.Context, statuses []enums.TransactionStatus) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Transaction{})
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) CountDisputes(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.EscrowDispute{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) ProfilesCreatedSince(ctx context.Context, since time.Time) ([]ProfileRow, error) {
	var rows []ProfileRow
	err := r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Select("role, created_at").
		Where("created_at >= ?", since).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) CountProfilesUpdatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("updated_at >= ?", since).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) ProfileNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	var rows []struct {
		ID       uuid.UUID
		FullName *string
	}
	err := r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Select("id, full_name").
		Where("id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		if row.FullName != nil {
			names[row.ID] = *row.FullName
		}
	}
	return names, nil
}

func (r *repository) ProductNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	var rows []struct {
		ID   uuid.UUID
		Name *string
	}
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("id, name").
		Where("id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		if row.Name != nil {
			names[row.ID] = *row.Name
		}
	}
	return names, nil
}

func (r *repository) MostViewedPets(ctx context.Context, limit int) ([]PetRow, error) {
	var rows []PetRow
	err := r.db.WithContext(ctx).
		Model(&models.Pet{}).
		Select("id, name, view_count").
		Order("view_count DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) LikedMatchCounts(ctx context.Context, petIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(petIDs))
	if len(petIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		PetID uuid.UUID
	}
	err := r.db.WithContext(ctx).
		Model(&models.Match{}).
		Select("pet_id").
		Where("liked = ?", true).
		Where("pet_id IN ?", petIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.PetID]++
	}
	return counts, nil
}
