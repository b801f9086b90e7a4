package disputes

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pedopt/admin-backend/pkg/enums"
	"github.com/pedopt/admin-backend/pkg/errors"
	"github.com/pedopt/admin-backend/pkg/logger"
	"github.com/pedopt/admin-backend/pkg/period"
)

const unknownName = "Unknown"

var (
	openStatuses      = []enums.DisputeStatus{enums.DisputeStatusOpen, enums.DisputeStatusUnderReview}
	activityStatuses  = []enums.DisputeStatus{enums.DisputeStatusOpen, enums.DisputeStatusUnderReview, enums.DisputeStatusResolved}
	fulfilledStatuses = []enums.OrderStatus{enums.OrderStatusDelivered, enums.OrderStatusCompleted}
)

// allowedTransitions lists the dispute statuses each status may move to.
var allowedTransitions = map[enums.DisputeStatus][]enums.DisputeStatus{
	enums.DisputeStatusOpen:        {enums.DisputeStatusUnderReview, enums.DisputeStatusResolved},
	enums.DisputeStatusUnderReview: {enums.DisputeStatusResolved},
	enums.DisputeStatusResolved:    {},
}

func transitionAllowed(from, to enums.DisputeStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type service struct {
	repo Repository
	logg *logger.Logger
	now  func() time.Time
}

// NewService builds the dispute service with the required dependencies.
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

// Analytics combines independent dispute counts and resolution folds
// into the headline summary. The fetches run concurrently.
func (s *service) Analytics(ctx context.Context) Analytics {
	var (
		total     int64
		open      int64
		resolved  []ResolvedRow
		fulfilled int64
	)

	var wg sync.WaitGroup
	run := func(fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn()
		}()
	}

	run(func() { total = s.countDisputes(ctx, nil) })
	run(func() { open = s.countDisputes(ctx, openStatuses) })
	run(func() { resolved = s.resolvedRows(ctx) })
	run(func() { fulfilled = s.countOrders(ctx, fulfilledStatuses) })
	wg.Wait()

	var (
		resolutionDays float64
		timedCount     int64
		byType         = map[enums.DisputeResolutionType]int64{}
	)
	for _, row := range resolved {
		if row.ResolvedAt != nil {
			resolutionDays += row.ResolvedAt.Sub(row.OpenedAt).Hours() / 24
			timedCount++
		}
		if row.ResolutionType != nil {
			byType[*row.ResolutionType]++
		}
	}

	var avgResolution float64
	if timedCount > 0 {
		avgResolution = round2(resolutionDays / float64(timedCount))
	}

	resolvedCount := int64(len(resolved))
	return Analytics{
		TotalDisputes:     total,
		OpenDisputes:      open,
		ResolvedDisputes:  resolvedCount,
		AvgResolutionDays: avgResolution,
		DisputeRate:       percent(total, fulfilled),
		RefundRate:        percent(byType[enums.DisputeResolutionRefundBuyer], resolvedCount),
		ReleaseRate:       percent(byType[enums.DisputeResolutionReleaseToSeller], resolvedCount),
		PartialRefundRate: percent(byType[enums.DisputeResolutionPartialRefund], resolvedCount),
	}
}

// BySeller ranks sellers by dispute load. Sellers without disputes are
// excluded; a seller with disputes but no fulfilled orders shows a zero
// rate.
func (s *service) BySeller(ctx context.Context, limit int) []SellerDisputes {
	var (
		wg          sync.WaitGroup
		rows        []SellerRow
		orderCounts map[uuid.UUID]int64
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		rows = s.sellerDisputeRows(ctx, activityStatuses)
	}()
	go func() {
		defer wg.Done()
		orderCounts = s.sellerOrderCounts(ctx, fulfilledStatuses)
	}()
	wg.Wait()

	type acc struct {
		total    int
		resolved int
	}
	accs := make(map[uuid.UUID]*acc)
	var sellers []uuid.UUID
	for _, row := range rows {
		entry, ok := accs[row.SellerID]
		if !ok {
			entry = &acc{}
			accs[row.SellerID] = entry
			sellers = append(sellers, row.SellerID)
		}
		entry.total++
		if row.Status == enums.DisputeStatusResolved {
			entry.resolved++
		}
	}

	names := s.profileNames(ctx, sellers)

	sort.SliceStable(sellers, func(i, j int) bool {
		return accs[sellers[i]].total > accs[sellers[j]].total
	})
	if limit > 0 && len(sellers) > limit {
		sellers = sellers[:limit]
	}

	out := make([]SellerDisputes, 0, len(sellers))
	for _, id := range sellers {
		entry := accs[id]
		name := names[id]
		if name == "" {
			name = unknownName
		}
		out = append(out, SellerDisputes{
			SellerID:         id,
			SellerName:       name,
			TotalDisputes:    entry.total,
			ResolvedDisputes: entry.resolved,
			DisputeRate:      percent(int64(entry.total), orderCounts[id]),
		})
	}
	return out
}

// Trend folds disputes into the zero-filled bucket scaffold keyed by
// opening date. Resolution counts and times attach to the bucket the
// dispute was opened in.
func (s *service) Trend(ctx context.Context, p enums.Period) []TrendBucket {
	now := s.now()
	rows := s.trendRows(ctx, period.Start(p, now))

	type acc struct {
		opened         int
		resolved       int
		resolutionDays float64
	}

	keys := period.Keys(p, now)
	buckets := make(map[string]*acc, len(keys))
	for _, key := range keys {
		buckets[key] = &acc{}
	}

	for _, row := range rows {
		bucket, ok := buckets[period.Key(p, row.OpenedAt)]
		if !ok {
			continue
		}
		bucket.opened++
		if row.Status == enums.DisputeStatusResolved && row.ResolvedAt != nil {
			bucket.resolved++
			bucket.resolutionDays += row.ResolvedAt.Sub(row.OpenedAt).Hours() / 24
		}
	}

	out := make([]TrendBucket, 0, len(keys))
	for _, key := range keys {
		bucket := buckets[key]
		var avg float64
		if bucket.resolved > 0 {
			avg = round2(bucket.resolutionDays / float64(bucket.resolved))
		}
		out = append(out, TrendBucket{
			Date:              key,
			Opened:            bucket.opened,
			Resolved:          bucket.resolved,
			AvgResolutionDays: avg,
		})
	}
	return out
}

// Resolve settles a dispute. It validates the status transition, writes
// the resolution fields and then moves the escrowed money through the
// matching settlement procedure.
func (s *service) Resolve(ctx context.Context, input ResolveInput) (*Resolution, error) {
	if !input.Resolution.IsValid() {
		return nil, errors.New(errors.CodeValidation, "unknown resolution type").
			WithDetails(map[string]string{"resolution_type": string(input.Resolution)})
	}
	if input.Resolution == enums.DisputeResolutionPartialRefund && input.RefundAmount == nil {
		return nil, errors.New(errors.CodeValidation, "partial refund requires a refund amount")
	}
	if input.RefundAmount != nil && input.RefundAmount.IsNegative() {
		return nil, errors.New(errors.CodeValidation, "refund amount must not be negative")
	}
	if input.ActorID == uuid.Nil {
		return nil, errors.New(errors.CodeValidation, "resolving actor is required")
	}

	ctx = s.logg.WithDisputeID(ctx, input.DisputeID.String())
	ctx = s.logg.WithActorID(ctx, input.ActorID.String())

	dispute, err := s.repo.FindDispute(ctx, input.DisputeID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "dispute lookup failed")
	}
	if dispute == nil {
		return nil, errors.New(errors.CodeNotFound, "dispute not found")
	}
	if !transitionAllowed(dispute.Status, enums.DisputeStatusResolved) {
		return nil, errors.New(errors.CodeStateConflict, "dispute cannot be resolved from its current status").
			WithDetails(map[string]string{"status": dispute.Status.String()})
	}

	resolvedAt := s.now()
	update := ResolutionUpdate{
		DisputeID:       input.DisputeID,
		ResolutionType:  input.Resolution,
		ResolutionNotes: input.Notes,
		ResolvedBy:      input.ActorID,
		ResolvedAt:      resolvedAt,
	}
	if input.Resolution != enums.DisputeResolutionReleaseToSeller {
		update.RefundAmount = input.RefundAmount
	}
	if err := s.repo.MarkResolved(ctx, update); err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "dispute update failed")
	}

	switch input.Resolution {
	case enums.DisputeResolutionRefundBuyer:
		err = s.repo.RefundEscrowToBuyer(ctx, dispute.EscrowAccountID, nil)
	case enums.DisputeResolutionPartialRefund:
		err = s.repo.RefundEscrowToBuyer(ctx, dispute.EscrowAccountID, input.RefundAmount)
	case enums.DisputeResolutionReleaseToSeller:
		err = s.repo.ReleaseEscrowToSeller(ctx, dispute.EscrowAccountID)
	}
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "escrow settlement failed")
	}

	s.logg.Info(ctx, "dispute resolved")
	return &Resolution{
		DisputeID:      input.DisputeID,
		Status:         enums.DisputeStatusResolved,
		ResolutionType: input.Resolution,
		ResolvedAt:     resolvedAt,
	}, nil
}

func (s *service) countDisputes(ctx context.Context, statuses []enums.DisputeStatus) int64 {
	count, err := s.repo.CountDisputes(ctx, statuses)
	if err != nil {
		s.logg.Error(ctx, "disputes: dispute count fetch failed", err)
		return 0
	}
	return count
}

func (s *service) resolvedRows(ctx context.Context) []ResolvedRow {
	rows, err := s.repo.ResolvedRows(ctx)
	if err != nil {
		s.logg.Error(ctx, "disputes: resolved rows fetch failed", err)
		return nil
	}
	return rows
}

func (s *service) countOrders(ctx context.Context, statuses []enums.OrderStatus) int64 {
	count, err := s.repo.CountOrders(ctx, statuses)
	if err != nil {
		s.logg.Error(ctx, "disputes: order count fetch failed", err)
		return 0
	}
	return count
}

func (s *service) sellerDisputeRows(ctx context.Context, statuses []enums.DisputeStatus) []SellerRow {
	rows, err := s.repo.SellerDisputeRows(ctx, statuses)
	if err != nil {
		s.logg.Error(ctx, "disputes: seller dispute rows fetch failed", err)
		return nil
	}
	return rows
}

func (s *service) sellerOrderCounts(ctx context.Context, statuses []enums.OrderStatus) map[uuid.UUID]int64 {
	counts, err := s.repo.SellerOrderCounts(ctx, statuses)
	if err != nil {
		s.logg.Error(ctx, "disputes: seller order counts fetch failed", err)
		return nil
	}
	return counts
}

func (s *service) profileNames(ctx context.Context, ids []uuid.UUID) map[uuid.UUID]string {
	names, err := s.repo.ProfileNames(ctx, ids)
	if err != nil {
		s.logg.Error(ctx, "disputes: profile names fetch failed", err)
		return nil
	}
	return names
}

func (s *service) trendRows(ctx context.Context, since time.Time) []TrendRow {
	rows, err := s.repo.TrendRows(ctx, since)
	if err != nil {
		s.logg.Error(ctx, "disputes: trend rows fetch failed", err)
		return nil
	}
	return rows
}

func percent(num, den int64) float64 {
	if den == 0 {
		return 0
	}
	return round2(float64(num) / float64(den) * 100)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
