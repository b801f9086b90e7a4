package commissions

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pedopt/admin-backend/pkg/enums"
	"github.com/pedopt/admin-backend/pkg/logger"
	"github.com/pedopt/admin-backend/pkg/period"
	"github.com/shopspring/decimal"
)

const (
	unknownName = "Unknown"
	defaultTier = "default"
)

var realizedStatuses = []enums.CommissionStatus{enums.CommissionStatusCalculated, enums.CommissionStatusCollected}

type service struct {
	repo Repository
	logg *logger.Logger
	now  func() time.Time
}

// NewService builds the commission service with the required dependencies.
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

// Stats folds every commission record into the headline summary. The
// average rate only covers realized records.
func (s *service) Stats(ctx context.Context) Stats {
	rows := s.commissionRows(ctx, nil, nil)

	var (
		commission decimal.Decimal
		collected  decimal.Decimal
		pending    decimal.Decimal
		refunded   decimal.Decimal
		rateSum    decimal.Decimal
		realized   int64
	)
	for _, row := range rows {
		switch row.Status {
		case enums.CommissionStatusCollected:
			collected = collected.Add(row.Fee)
		case enums.CommissionStatusCalculated:
			pending = pending.Add(row.Fee)
		case enums.CommissionStatusRefunded:
			refunded = refunded.Add(row.Fee)
		}
		if row.Status == enums.CommissionStatusCalculated || row.Status == enums.CommissionStatusCollected {
			commission = commission.Add(row.Fee)
			rateSum = rateSum.Add(row.Rate)
			realized++
		}
	}

	var avgRate float64
	if realized > 0 {
		avgRate = round2(rateSum.InexactFloat64() / float64(realized))
	}

	return Stats{
		TotalCommission:       roundUnit(commission),
		TotalCollected:        roundUnit(collected),
		TotalPending:          roundUnit(pending),
		TotalRefunded:         roundUnit(refunded),
		AverageCommissionRate: avgRate,
		TotalTransactions:     int64(len(rows)),
	}
}

// BySeller attributes realized commissions to sellers through their
// escrow accounts. Records without a matching escrow account are
// skipped; missing profiles display the defaults.
func (s *service) BySeller(ctx context.Context, limit int) []SellerCommission {
	rows := s.commissionRows(ctx, realizedStatuses, nil)

	escrowIDs := make([]uuid.UUID, 0, len(rows))
	seen := make(map[uuid.UUID]struct{}, len(rows))
	for _, row := range rows {
		if _, ok := seen[row.EscrowAccountID]; ok {
			continue
		}
		seen[row.EscrowAccountID] = struct{}{}
		escrowIDs = append(escrowIDs, row.EscrowAccountID)
	}
	escrowSellers := s.escrowSellers(ctx, escrowIDs)

	type acc struct {
		commission   decimal.Decimal
		rateSum      decimal.Decimal
		transactions int
	}
	accs := make(map[uuid.UUID]*acc)
	var sellers []uuid.UUID
	for _, row := range rows {
		sellerID, ok := escrowSellers[row.EscrowAccountID]
		if !ok {
			continue
		}
		entry, ok := accs[sellerID]
		if !ok {
			entry = &acc{}
			accs[sellerID] = entry
			sellers = append(sellers, sellerID)
		}
		entry.commission = entry.commission.Add(row.Fee)
		entry.rateSum = entry.rateSum.Add(row.Rate)
		entry.transactions++
	}

	profiles := s.sellerProfiles(ctx, sellers)

	sort.SliceStable(sellers, func(i, j int) bool {
		return accs[sellers[i]].commission.GreaterThan(accs[sellers[j]].commission)
	})
	if limit > 0 && len(sellers) > limit {
		sellers = sellers[:limit]
	}

	out := make([]SellerCommission, 0, len(sellers))
	for _, id := range sellers {
		entry := accs[id]
		profile := profiles[id]
		if profile.Name == "" {
			profile.Name = unknownName
		}
		if profile.ReputationTier == "" {
			profile.ReputationTier = defaultTier
		}
		out = append(out, SellerCommission{
			SellerID:          id,
			SellerName:        profile.Name,
			ReputationTier:    profile.ReputationTier,
			TotalCommission:   roundUnit(entry.commission),
			TotalTransactions: entry.transactions,
			AverageRate:       round2(entry.rateSum.InexactFloat64() / float64(entry.transactions)),
		})
	}
	return out
}

// ByPeriod folds realized commissions into the zero-filled bucket
// scaffold.
func (s *service) ByPeriod(ctx context.Context, p enums.Period) []PeriodBucket {
	now := s.now()
	start := period.Start(p, now)
	rows := s.commissionRows(ctx, realizedStatuses, &start)

	type acc struct {
		commission   decimal.Decimal
		rateSum      decimal.Decimal
		transactions int
	}

	keys := period.Keys(p, now)
	buckets := make(map[string]*acc, len(keys))
	for _, key := range keys {
		buckets[key] = &acc{}
	}

	for _, row := range rows {
		bucket, ok := buckets[period.Key(p, row.CalculatedAt)]
		if !ok {
			continue
		}
		bucket.commission = bucket.commission.Add(row.Fee)
		bucket.rateSum = bucket.rateSum.Add(row.Rate)
		bucket.transactions++
	}

	out := make([]PeriodBucket, 0, len(keys))
	for _, key := range keys {
		bucket := buckets[key]
		var avgRate float64
		if bucket.transactions > 0 {
			avgRate = round2(bucket.rateSum.InexactFloat64() / float64(bucket.transactions))
		}
		out = append(out, PeriodBucket{
			Date:         key,
			Commission:   roundUnit(bucket.commission),
			Transactions: bucket.transactions,
			AverageRate:  avgRate,
		})
	}
	return out
}

func (s *service) commissionRows(ctx context.Context, statuses []enums.CommissionStatus, since *time.Time) []Row {
	rows, err := s.repo.CommissionRows(ctx, statuses, since)
	if err != nil {
		s.logg.Error(ctx, "commissions: commission rows fetch failed", err)
		return nil
	}
	return rows
}

func (s *service) escrowSellers(ctx context.Context, escrowAccountIDs []uuid.UUID) map[uuid.UUID]uuid.UUID {
	sellers, err := s.repo.EscrowSellers(ctx, escrowAccountIDs)
	if err != nil {
		s.logg.Error(ctx, "commissions: escrow sellers fetch failed", err)
		return nil
	}
	return sellers
}

func (s *service) sellerProfiles(ctx context.Context, sellerIDs []uuid.UUID) map[uuid.UUID]SellerProfile {
	profiles, err := s.repo.SellerProfiles(ctx, sellerIDs)
	if err != nil {
		s.logg.Error(ctx, "commissions: seller profiles fetch failed", err)
		return nil
	}
	return profiles
}

func roundUnit(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
