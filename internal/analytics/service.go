package analytics

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pedopt/admin-backend/pkg/enums"
	"github.com/pedopt/admin-backend/pkg/logger"
	"github.com/pedopt/admin-backend/pkg/period"
	"github.com/shopspring/decimal"
)

const unknownName = "Unknown"

// sellerCommissionRate is the flat platform take used for the top-seller
// commission estimate.
var sellerCommissionRate = decimal.NewFromFloat(0.06)

var (
	realizedCommissionStatuses = []enums.CommissionStatus{enums.CommissionStatusCalculated, enums.CommissionStatusCollected}
	holdingEscrowStatuses      = []enums.EscrowStatus{enums.EscrowStatusPending, enums.EscrowStatusEscrowed, enums.EscrowStatusDisputed}
	revenueEscrowStatuses      = []enums.EscrowStatus{enums.EscrowStatusEscrowed, enums.EscrowStatusReleased}
	fulfilledOrderStatuses     = []enums.OrderStatus{enums.OrderStatusDelivered, enums.OrderStatusCompleted}
	processedPayoutStatuses    = []enums.PayoutStatus{enums.PayoutStatusCompleted}
	pendingPayoutStatuses      = []enums.PayoutStatus{enums.PayoutStatusPending, enums.PayoutStatusProcessing}
	settledTransactionStatuses = []enums.TransactionStatus{enums.TransactionStatusCompleted}
)

type service struct {
	repo Repository
	logg *logger.Logger
	now  func() time.Time
}

// NewService builds the analytics service with the required dependencies.
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

// Overview combines independent count/sum fetches into the headline
// summary. The fetches run concurrently; none blocks another.
func (s *service) Overview(ctx context.Context) Overview {
	var (
		commissionTotal  decimal.Decimal
		escrowHolding    decimal.Decimal
		payoutsProcessed decimal.Decimal
		payoutsPending   decimal.Decimal
		orderCount       int64
		transactionCount int64
		completedCount   int64
		cancelledCount   int64
		disputeCount     int64
	)

	var wg sync.WaitGroup
	run := func(fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn()
		}()
	}

	run(func() {
		for _, row := range s.commissionRows(ctx, realizedCommissionStatuses, nil) {
			commissionTotal = commissionTotal.Add(row.Fee)
		}
	})
	run(func() {
		for _, row := range s.escrowRows(ctx, holdingEscrowStatuses, nil) {
			escrowHolding = escrowHolding.Add(row.Amount)
		}
	})
	run(func() { payoutsProcessed = s.payoutSum(ctx, processedPayoutStatuses) })
	run(func() { payoutsPending = s.payoutSum(ctx, pendingPayoutStatuses) })
	run(func() { orderCount = s.countOrders(ctx, nil) })
	run(func() { transactionCount = s.countTransactions(ctx, nil) })
	run(func() { completedCount = s.countOrders(ctx, fulfilledOrderStatuses) })
	run(func() { cancelledCount = s.countOrders(ctx, []enums.OrderStatus{enums.OrderStatusCancelled}) })
	run(func() { disputeCount = s.countDisputes(ctx) })
	wg.Wait()

	totalTransactions := orderCount + transactionCount
	totalRevenue := commissionTotal.Add(escrowHolding).Add(payoutsProcessed)

	return Overview{
		TotalRevenue:          roundUnit(totalRevenue),
		TotalCommission:       roundUnit(commissionTotal),
		EscrowHolding:         roundUnit(escrowHolding),
		TotalPayoutsProcessed: roundUnit(payoutsProcessed),
		TotalPayoutsPending:   roundUnit(payoutsPending),
		TotalTransactions:     totalTransactions,
		SuccessRate:           percent(completedCount, completedCount+cancelledCount),
		DisputeRate:           percent(disputeCount, totalTransactions),
	}
}

// RevenueChart folds realized commissions and escrowed amounts into the
// zero-filled bucket scaffold. Commission fees count as both revenue and
// commission; escrow amounts count as revenue only.
func (s *service) RevenueChart(ctx context.Context, p enums.Period) []RevenueBucket {
	now := s.now()
	start := period.Start(p, now)

	var (
		wg          sync.WaitGroup
		commissions []CommissionRow
		escrows     []EscrowRow
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		commissions = s.commissionRows(ctx, realizedCommissionStatuses, &start)
	}()
	go func() {
		defer wg.Done()
		escrows = s.escrowRows(ctx, revenueEscrowStatuses, &start)
	}()
	wg.Wait()

	type acc struct {
		revenue    decimal.Decimal
		commission decimal.Decimal
	}

	keys := period.Keys(p, now)
	buckets := make(map[string]*acc, len(keys))
	for _, key := range keys {
		buckets[key] = &acc{}
	}

	for _, row := range commissions {
		bucket, ok := buckets[period.Key(p, row.CalculatedAt)]
		if !ok {
			continue
		}
		bucket.commission = bucket.commission.Add(row.Fee)
		bucket.revenue = bucket.revenue.Add(row.Fee)
	}
	for _, row := range escrows {
		bucket, ok := buckets[period.Key(p, row.CreatedAt)]
		if !ok {
			continue
		}
		bucket.revenue = bucket.revenue.Add(row.Amount)
	}

	out := make([]RevenueBucket, 0, len(keys))
	for _, key := range keys {
		bucket := buckets[key]
		out = append(out, RevenueBucket{
			Date:       key,
			Revenue:    roundUnit(bucket.revenue),
			Commission: roundUnit(bucket.commission),
		})
	}
	return out
}

// TopSellers ranks sellers by fulfilled order revenue. Ties keep the
// fold order, missing profiles display as "Unknown".
func (s *service) TopSellers(ctx context.Context, limit int) []TopSeller {
	orders := s.orderRows(ctx, fulfilledOrderStatuses)

	type acc struct {
		revenue decimal.Decimal
		orders  int
	}
	accs := make(map[uuid.UUID]*acc)
	var sellers []uuid.UUID
	for _, row := range orders {
		entry, ok := accs[row.SellerID]
		if !ok {
			entry = &acc{}
			accs[row.SellerID] = entry
			sellers = append(sellers, row.SellerID)
		}
		entry.revenue = entry.revenue.Add(row.FinalPrice)
		entry.orders++
	}

	names := s.profileNames(ctx, sellers)

	sort.SliceStable(sellers, func(i, j int) bool {
		return accs[sellers[i]].revenue.GreaterThan(accs[sellers[j]].revenue)
	})
	if limit > 0 && len(sellers) > limit {
		sellers = sellers[:limit]
	}

	out := make([]TopSeller, 0, len(sellers))
	for _, id := range sellers {
		entry := accs[id]
		out = append(out, TopSeller{
			SellerID:       id,
			SellerName:     displayName(names[id]),
			TotalRevenue:   roundUnit(entry.revenue),
			TotalOrders:    entry.orders,
			CommissionPaid: roundUnit(entry.revenue.Mul(sellerCommissionRate)),
		})
	}
	return out
}

// TopProducts ranks products by fulfilled order revenue. A zero quantity
// still counts as one sale.
func (s *service) TopProducts(ctx context.Context, limit int) []TopProduct {
	orders := s.orderRows(ctx, fulfilledOrderStatuses)

	type acc struct {
		revenue decimal.Decimal
		sales   int
	}
	accs := make(map[uuid.UUID]*acc)
	var products []uuid.UUID
	for _, row := range orders {
		entry, ok := accs[row.ProductID]
		if !ok {
			entry = &acc{}
			accs[row.ProductID] = entry
			products = append(products, row.ProductID)
		}
		quantity := row.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		entry.sales += quantity
		entry.revenue = entry.revenue.Add(row.FinalPrice)
	}

	names := s.productNames(ctx, products)

	sort.SliceStable(products, func(i, j int) bool {
		return accs[products[i]].revenue.GreaterThan(accs[products[j]].revenue)
	})
	if limit > 0 && len(products) > limit {
		products = products[:limit]
	}

	out := make([]TopProduct, 0, len(products))
	for _, id := range products {
		entry := accs[id]
		out = append(out, TopProduct{
			ProductID:    id,
			ProductName:  displayName(names[id]),
			TotalSales:   entry.sales,
			TotalRevenue: roundUnit(entry.revenue),
		})
	}
	return out
}

// TopPets returns the most viewed pets with their liked-match counts.
// The view ordering comes from the store; the fold only joins matches.
func (s *service) TopPets(ctx context.Context, limit int) []TopPet {
	pets := s.mostViewedPets(ctx, limit)

	ids := make([]uuid.UUID, 0, len(pets))
	for _, pet := range pets {
		ids = append(ids, pet.ID)
	}
	matches := s.likedMatchCounts(ctx, ids)

	out := make([]TopPet, 0, len(pets))
	for _, pet := range pets {
		name := unknownName
		if pet.Name != nil && *pet.Name != "" {
			name = *pet.Name
		}
		out = append(out, TopPet{
			PetID:        pet.ID,
			PetName:      name,
			TotalViews:   pet.ViewCount,
			TotalMatches: matches[pet.ID],
		})
	}
	return out
}

// UserGrowth folds signups into the zero-filled bucket scaffold. Every
// signup counts as a new user; seller signups also count as new sellers.
func (s *service) UserGrowth(ctx context.Context, p enums.Period) []GrowthBucket {
	now := s.now()
	profiles := s.profilesCreatedSince(ctx, period.Start(p, now))

	type acc struct {
		users   int
		sellers int
	}

	keys := period.Keys(p, now)
	buckets := make(map[string]*acc, len(keys))
	for _, key := range keys {
		buckets[key] = &acc{}
	}

	for _, profile := range profiles {
		bucket, ok := buckets[period.Key(p, profile.CreatedAt)]
		if !ok {
			continue
		}
		bucket.users++
		if profile.Role == enums.ProfileRoleSeller {
			bucket.sellers++
		}
	}

	out := make([]GrowthBucket, 0, len(keys))
	for _, key := range keys {
		bucket := buckets[key]
		out = append(out, GrowthBucket{Date: key, NewUsers: bucket.users, NewSellers: bucket.sellers})
	}
	return out
}

// ActiveUsers counts profiles touched within the rolling activity windows.
func (s *service) ActiveUsers(ctx context.Context) ActiveUsers {
	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var (
		wg  sync.WaitGroup
		out ActiveUsers
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		out.DAU = s.countProfilesUpdatedSince(ctx, dayStart)
	}()
	go func() {
		defer wg.Done()
		out.WAU = s.countProfilesUpdatedSince(ctx, now.AddDate(0, 0, -7))
	}()
	go func() {
		defer wg.Done()
		out.MAU = s.countProfilesUpdatedSince(ctx, now.AddDate(0, -1, 0))
	}()
	wg.Wait()
	return out
}

// TransactionVolume sums settled value per category.
func (s *service) TransactionVolume(ctx context.Context) []VolumeBucket {
	var (
		wg           sync.WaitGroup
		orders       []OrderRow
		transactions []TransactionRow
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		orders = s.orderRows(ctx, fulfilledOrderStatuses)
	}()
	go func() {
		defer wg.Done()
		transactions = s.transactionRows(ctx, settledTransactionStatuses)
	}()
	wg.Wait()

	var orderVolume, transactionVolume decimal.Decimal
	for _, row := range orders {
		orderVolume = orderVolume.Add(row.FinalPrice)
	}
	for _, row := range transactions {
		transactionVolume = transactionVolume.Add(row.Amount)
	}

	return []VolumeBucket{
		{Category: "Orders", Volume: roundUnit(orderVolume), Count: int64(len(orders))},
		{Category: "Pet Transactions", Volume: roundUnit(transactionVolume), Count: int64(len(transactions))},
	}
}

// Snapshot assembles the full dashboard payload, fetching every section
// concurrently.
func (s *service) Snapshot(ctx context.Context) Snapshot {
	var (
		wg   sync.WaitGroup
		snap Snapshot
	)
	run := func(fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn()
		}()
	}

	run(func() { snap.Overview = s.Overview(ctx) })
	run(func() { snap.RevenueChart.Daily = s.RevenueChart(ctx, enums.PeriodDaily) })
	run(func() { snap.RevenueChart.Weekly = s.RevenueChart(ctx, enums.PeriodWeekly) })
	run(func() { snap.RevenueChart.Monthly = s.RevenueChart(ctx, enums.PeriodMonthly) })
	run(func() { snap.TopSellers = s.TopSellers(ctx, 10) })
	run(func() { snap.TopProducts = s.TopProducts(ctx, 10) })
	run(func() { snap.TopPets = s.TopPets(ctx, 10) })
	run(func() { snap.UserGrowth.Daily = s.UserGrowth(ctx, enums.PeriodDaily) })
	run(func() { snap.UserGrowth.Weekly = s.UserGrowth(ctx, enums.PeriodWeekly) })
	run(func() { snap.UserGrowth.Monthly = s.UserGrowth(ctx, enums.PeriodMonthly) })
	run(func() { snap.ActiveUsers = s.ActiveUsers(ctx) })
	run(func() { snap.TransactionVolume = s.TransactionVolume(ctx) })
	wg.Wait()

	return snap
}

// Fetch helpers below degrade to zero values on failure. A broken
// query is logged and the aggregation continues with what it has.

func (s *service) commissionRows(ctx context.Context, statuses []enums.CommissionStatus, since *time.Time) []CommissionRow {
	rows, err := s.repo.CommissionRows(ctx, statuses, since)
	if err != nil {
		s.logg.Error(ctx, "analytics: commission rows fetch failed", err)
		return nil
	}
	return rows
}

func (s *service) escrowRows(ctx context.Context, statuses []enums.EscrowStatus, since *time.Time) []EscrowRow {
	rows, err := s.repo.EscrowRows(ctx, statuses, since)
	if err != nil {
		s.logg.Error(ctx, "analytics: escrow rows fetch failed", err)
		return nil
	}
	return rows
}

func (s *service) payoutSum(ctx context.Context, statuses []enums.PayoutStatus) decimal.Decimal {
	sum, err := s.repo.PayoutSum(ctx, statuses)
	if err != nil {
		s.logg.Error(ctx, "analytics: payout sum fetch failed", err)
		return decimal.Zero
	}
	return sum
}

func (s *service) orderRows(ctx context.Context, statuses []enums.OrderStatus) []OrderRow {
	rows, err := s.repo.OrderRows(ctx, statuses)
	if err != nil {
		s.logg.Error(ctx, "analytics: order rows fetch failed", err)
		return nil
	}
	return rows
}

func (s *service) transactionRows(ctx context.Context, statuses []enums.TransactionStatus) []TransactionRow {
	rows, err := s.repo.TransactionRows(ctx, statuses)
	if err != nil {
		s.logg.Error(ctx, "analytics: transaction rows fetch failed", err)
		return nil
	}
	return rows
}

func (s *service) countOrders(ctx context.Context, statuses []enums.OrderStatus) int64 {
	count, err := s.repo.CountOrders(ctx, statuses)
	if err != nil {
		s.logg.Error(ctx, "analytics: order count fetch failed", err)
		return 0
	}
	return count
}

func (s *service) countTransactions(ctx context.Context, statuses []enums.TransactionStatus) int64 {
	count, err := s.repo.CountTransactions(ctx, statuses)
	if err != nil {
		s.logg.Error(ctx, "analytics: transaction count fetch failed", err)
		return 0
	}
	return count
}

func (s *service) countDisputes(ctx context.Context) int64 {
	count, err := s.repo.CountDisputes(ctx)
	if err != nil {
		s.logg.Error(ctx, "analytics: dispute count fetch failed", err)
		return 0
	}
	return count
}

func (s *service) profilesCreatedSince(ctx context.Context, since time.Time) []ProfileRow {
	rows, err := s.repo.ProfilesCreatedSince(ctx, since)
	if err != nil {
		s.logg.Error(ctx, "analytics: profile rows fetch failed", err)
		return nil
	}
	return rows
}

func (s *service) countProfilesUpdatedSince(ctx context.Context, since time.Time) int64 {
	count, err := s.repo.CountProfilesUpdatedSince(ctx, since)
	if err != nil {
		s.logg.Error(ctx, "analytics: active profile count fetch failed", err)
		return 0
	}
	return count
}

func (s *service) profileNames(ctx context.Context, ids []uuid.UUID) map[uuid.UUID]string {
	names, err := s.repo.ProfileNames(ctx, ids)
	if err != nil {
		s.logg.Error(ctx, "analytics: profile names fetch failed", err)
		return nil
	}
	return names
}

func (s *service) productNames(ctx context.Context, ids []uuid.UUID) map[uuid.UUID]string {
	names, err := s.repo.ProductNames(ctx, ids)
	if err != nil {
		s.logg.Error(ctx, "analytics: product names fetch failed", err)
		return nil
	}
	return names
}

func (s *service) mostViewedPets(ctx context.Context, limit int) []PetRow {
	rows, err := s.repo.MostViewedPets(ctx, limit)
	if err != nil {
		s.logg.Error(ctx, "analytics: pet rows fetch failed", err)
		return nil
	}
	return rows
}

func (s *service) likedMatchCounts(ctx context.Context, petIDs []uuid.UUID) map[uuid.UUID]int64 {
	counts, err := s.repo.LikedMatchCounts(ctx, petIDs)
	if err != nil {
		s.logg.Error(ctx, "analytics: match counts fetch failed", err)
		return nil
	}
	return counts
}

func displayName(name string) string {
	if name == "" {
		return unknownName
	}
	return name
}

// roundUnit collapses a currency amount to whole units at the output
// boundary; accumulation stays exact.
func roundUnit(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}

// percent returns num/den as a percentage rounded to two decimals, 0
// when the denominator is zero.
func percent(num, den int64) float64 {
	if den == 0 {
		return 0
	}
	return round2(float64(num) / float64(den) * 100)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
