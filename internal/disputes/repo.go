package disputes

import (
	"context"
	stdErrors "errors"
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

// NewRepository builds a dispute repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
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

func (r *repository) ResolvedRows(ctx context.Context) ([]ResolvedRow, error) {
	var rows []ResolvedRow
	err := r.db.WithContext(ctx).
		Model(&models.EscrowDispute{}).
		Select("resolution_type, opened_at, resolved_at").
		Where("status = ?", enums.DisputeStatusResolved).
		Scan(&rows).Error
	if err != nil {
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

func (r *repository) SellerDisputeRows(ctx context.Context, statuses []enums.DisputeStatus) ([]SellerRow, error) {
	query := r.db.WithContext(ctx).
		Model(&models.EscrowDispute{}).
		Select("seller_id, status")
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}

	var rows []SellerRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) SellerOrderCounts(ctx context.Context, statuses []enums.OrderStatus) (map[uuid.UUID]int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("seller_id, COUNT(*) AS orders").
		Group("seller_id")
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}

	var rows []struct {
		SellerID uuid.UUID
		Orders   int64
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.SellerID] = row.Orders
	}
	return counts, nil
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

func (r *repository) TrendRows(ctx context.Context, since time.Time) ([]TrendRow, error) {
	var rows []TrendRow
	err := r.db.WithContext(ctx).
		Model(&models.EscrowDispute{}).
		Select("opened_at, status, resolved_at").
		Where("opened_at >= ?", since).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) FindDispute(ctx context.Context, id uuid.UUID) (*models.EscrowDispute, error) {
	var dispute models.EscrowDispute
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&dispute).Error
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dispute, nil
}

func (r *repository) MarkResolved(ctx context.Context, update ResolutionUpdate) error {
	fields := map[string]any{
		"status":           enums.DisputeStatusResolved,
		"resolution_type":  update.ResolutionType,
		"resolution_notes": update.ResolutionNotes,
		"refund_amount":    update.RefundAmount,
		"resolved_by":      update.ResolvedBy,
		"resolved_at":      update.ResolvedAt,
	}
	return r.db.WithContext(ctx).
		Model(&models.EscrowDispute{}).
		Where("id = ?", update.DisputeID).
		Updates(fields).Error
}

func (r *repository) RefundEscrowToBuyer(ctx context.Context, escrowAccountID uuid.UUID, amount *decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Exec("SELECT escrow_refund_to_buyer(?, ?)", escrowAccountID, amount).Error
}

func (r *repository) ReleaseEscrowToSeller(ctx context.Context, escrowAccountID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Exec("SELECT escrow_release_to_seller(?)", escrowAccountID).Error
}
