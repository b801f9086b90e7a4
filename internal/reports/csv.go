// Package reports renders analytics snapshots into the CSV export the
// admin dashboard serves for download.
package reports

import (
	"fmt"
	"strings"
	"time"

	"github.com/pedopt/admin-backend/internal/analytics"
	"github.com/pedopt/admin-backend/pkg/enums"
)

const currencySuffix = " VND"

// Generate renders the snapshot as a sectioned CSV document. The
// revenue and growth sections follow the requested period; ranking rows
// keep the order the snapshot carries.
func Generate(snap analytics.Snapshot, p enums.Period, generatedAt time.Time) string {
	var lines []string

	lines = append(lines,
		"ANALYTICS REPORT - PEDOPT",
		fmt.Sprintf("Report Period: %s", p),
		fmt.Sprintf("Generated Date: %s", generatedAt.Format(time.RFC3339)),
		"",
	)

	lines = append(lines, "=== OVERVIEW ===")
	lines = append(lines,
		fmt.Sprintf("Total Revenue,%d%s", snap.Overview.TotalRevenue, currencySuffix),
		fmt.Sprintf("Total Commission,%d%s", snap.Overview.TotalCommission, currencySuffix),
		fmt.Sprintf("Escrow Holding,%d%s", snap.Overview.EscrowHolding, currencySuffix),
		fmt.Sprintf("Processed Payouts,%d%s", snap.Overview.TotalPayoutsProcessed, currencySuffix),
		fmt.Sprintf("Pending Payouts,%d%s", snap.Overview.TotalPayoutsPending, currencySuffix),
		fmt.Sprintf("Total Transactions,%d", snap.Overview.TotalTransactions),
		fmt.Sprintf("Success Rate,%.2f%%", snap.Overview.SuccessRate),
		fmt.Sprintf("Dispute Rate,%.2f%%", snap.Overview.DisputeRate),
		"",
	)

	lines = append(lines, "=== TOP SELLERS ===", "Rank,Seller ID,Seller Name,Revenue,Orders,Commission")
	for i, seller := range snap.TopSellers {
		lines = append(lines, fmt.Sprintf("%d,%s,%q,%d,%d,%d",
			i+1, seller.SellerID, seller.SellerName, seller.TotalRevenue, seller.TotalOrders, seller.CommissionPaid))
	}
	lines = append(lines, "")

	lines = append(lines, "=== TOP PRODUCTS ===", "Rank,Product ID,Product Name,Total Sales,Total Revenue")
	for i, product := range snap.TopProducts {
		lines = append(lines, fmt.Sprintf("%d,%s,%q,%d,%d",
			i+1, product.ProductID, product.ProductName, product.TotalSales, product.TotalRevenue))
	}
	lines = append(lines, "")

	lines = append(lines, "=== TOP PETS ===", "Rank,Pet ID,Pet Name,Total Views,Total Matches")
	for i, pet := range snap.TopPets {
		lines = append(lines, fmt.Sprintf("%d,%s,%q,%d,%d",
			i+1, pet.PetID, pet.PetName, pet.TotalViews, pet.TotalMatches))
	}
	lines = append(lines, "")

	lines = append(lines, "=== ACTIVE USERS ===")
	lines = append(lines,
		fmt.Sprintf("DAU (Daily Active Users),%d", snap.ActiveUsers.DAU),
		fmt.Sprintf("WAU (Weekly Active Users),%d", snap.ActiveUsers.WAU),
		fmt.Sprintf("MAU (Monthly Active Users),%d", snap.ActiveUsers.MAU),
		"",
	)

	lines = append(lines, "=== TRANSACTION VOLUME ===", "Category,Volume,Count")
	for _, bucket := range snap.TransactionVolume {
		lines = append(lines, fmt.Sprintf("%q,%d,%d", bucket.Category, bucket.Volume, bucket.Count))
	}
	lines = append(lines, "")

	periodLabel := strings.ToUpper(p.String())
	lines = append(lines, fmt.Sprintf("=== REVENUE BY %s ===", periodLabel), "Date,Revenue,Commission")
	for _, bucket := range revenueSeries(snap.RevenueChart, p) {
		lines = append(lines, fmt.Sprintf("%s,%d,%d", bucket.Date, bucket.Revenue, bucket.Commission))
	}
	lines = append(lines, "")

	lines = append(lines, fmt.Sprintf("=== USER GROWTH BY %s ===", periodLabel), "Date,New Users,New Sellers")
	for _, bucket := range growthSeries(snap.UserGrowth, p) {
		lines = append(lines, fmt.Sprintf("%s,%d,%d", bucket.Date, bucket.NewUsers, bucket.NewSellers))
	}

	return strings.Join(lines, "\n")
}

func revenueSeries(series analytics.RevenueSeries, p enums.Period) []analytics.RevenueBucket {
	switch p {
	case enums.PeriodWeekly:
		return series.Weekly
	case enums.PeriodMonthly:
		return series.Monthly
	default:
		return series.Daily
	}
}

func growthSeries(series analytics.GrowthSeries, p enums.Period) []analytics.GrowthBucket {
	switch p {
	case enums.PeriodWeekly:
		return series.Weekly
	case enums.PeriodMonthly:
		return series.Monthly
	default:
		return series.Daily
	}
}
