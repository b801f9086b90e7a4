package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pedopt/admin-backend/pkg/enums"
	"github.com/pedopt/admin-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

const recentFeedSize = 5

var (
	pendingPayoutStatuses = []enums.PayoutStatus{enums.PayoutStatusPending, enums.PayoutStatusProcessing}
	openDisputeStatuses   = []enums.DisputeStatus{enums.DisputeStatusOpen, enums.DisputeStatusUnderReview}
	holdingEscrowStatuses = []enums.EscrowStatus{enums.EscrowStatusPending, enums.EscrowStatusEscrowed, enums.EscrowStatusDisputed}
)

type service struct {
	repo Repository
	logg *logger.Logger
	now  func() time.Time
}

// NewService builds the dashboard service with the required dependencies.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("repo is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{
		repo: repo,
		logg: logg,
		now:  func() time.Time { return time.Now().UTC() },
	}, nil
}

// Stats gathers the landing page counts and activity feeds. Every fetch
// runs concurrently; a failed fetch logs and leaves its field at zero.
func (s *service) Stats(ctx context.Context) Stats {
	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	sellerRole := enums.ProfileRoleSeller

	var (
		stats    Stats
		escrow   decimal.Decimal
		payouts  []PayoutRow
		disputes []DisputeRow
	)

	var wg sync.WaitGroup
	run := func(fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn()
		}()
	}

	run(func() { stats.TotalUsers = s.countProfiles(ctx, nil) })
	run(func() { stats.TotalSellers = s.countProfiles(ctx, &sellerRole) })
	run(func() { stats.TotalPets = s.countPets(ctx) })
	run(func() { stats.OrdersToday = s.countOrdersSince(ctx, dayStart) })
	run(func() { stats.PendingPayouts = s.countPayouts(ctx, pendingPayoutStatuses) })
	run(func() { stats.OpenDisputes = s.countDisputes(ctx, openDisputeStatuses) })
	run(func() { escrow = s.escrowVolume(ctx, holdingEscrowStatuses) })
	run(func() { payouts = s.recentPayouts(ctx, recentFeedSize) })
	run(func() { disputes = s.recentDisputes(ctx, recentFeedSize) })
	wg.Wait()

	stats.EscrowVolume = escrow.Round(0).IntPart()
	stats.RecentPayouts = make([]RecentPayout, 0, len(payouts))
	for _, row := range payouts {
		payout := RecentPayout{
			ID:           row.ID,
			SellerID:     row.SellerID,
			PayoutAmount: row.PayoutAmount.Round(0).IntPart(),
			Status:       row.Status,
			CreatedAt:    row.CreatedAt,
		}
		if row.PayoutMethod != nil {
			payout.PayoutMethod = *row.PayoutMethod
		}
		stats.RecentPayouts = append(stats.RecentPayouts, payout)
	}
	stats.RecentDisputes = make([]RecentDispute, 0, len(disputes))
	for _, row := range disputes {
		dispute := RecentDispute{
			ID:       row.ID,
			SellerID: row.SellerID,
			Status:   row.Status,
			OpenedAt: row.OpenedAt,
		}
		if row.DisputeType != nil {
			dispute.DisputeType = *row.DisputeType
		}
		stats.RecentDisputes = append(stats.RecentDisputes, dispute)
	}
	return stats
}

func (s *service) countProfiles(ctx context.Context, role *enums.ProfileRole) int64 {
	count, err := s.repo.CountProfiles(ctx, role)
	if err != nil {
		s.logg.Error(ctx, "dashboard: profile count fetch failed", err)
		return 0
	}
	return count
}

func (s *service) countPets(ctx context.Context) int64 {
	count, err := s.repo.CountPets(ctx)
	if err != nil {
		s.logg.Error(ctx, "dashboard: pet count fetch failed", err)
		return 0
	}
	return count
}

func (s *service) countOrdersSince(ctx context.Context, since time.Time) int64 {
	count, err := s.repo.CountOrdersSince(ctx, since)
	if err != nil {
		s.logg.Error(ctx, "dashboard: order count fetch failed", err)
		return 0
	}
	return count
}

func (s *service) countPayouts(ctx context.Context, statuses []enums.PayoutStatus) int64 {
	count, err := s.repo.CountPayouts(ctx, statuses)
	if err != nil {
		s.logg.Error(ctx, "dashboard: payout count fetch failed", err)
		return 0
	}
	return count
}

func (s *service) countDisputes(ctx context.Context, statuses []enums.DisputeStatus) int64 {
	count, err := s.repo.CountDisputes(ctx, statuses)
	if err != nil {
		s.logg.Error(ctx, "dashboard: dispute count fetch failed", err)
		return 0
	}
	return count
}

func (s *service) escrowVolume(ctx context.Context, statuses []enums.EscrowStatus) decimal.Decimal {
	total, err := s.repo.EscrowVolume(ctx, statuses)
	if err != nil {
		s.logg.Error(ctx, "dashboard: escrow volume fetch failed", err)
		return decimal.Zero
	}
	return total
}

func (s *service) recentPayouts(ctx context.Context, limit int) []PayoutRow {
	rows, err := s.repo.RecentPayouts(ctx, limit)
	if err != nil {
		s.logg.Error(ctx, "dashboard: recent payouts fetch failed", err)
		return nil
	}
	return rows
}

func (s *service) recentDisputes(ctx context.Context, limit int) []DisputeRow {
	rows, err := s.repo.RecentDisputes(ctx, limit)
	if err != nil {
		s.logg.Error(ctx, "dashboard: recent disputes fetch failed", err)
		return nil
	}
	return rows
}
