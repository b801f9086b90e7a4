package reports

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pedopt/admin-backend/internal/analytics"
	"github.com/pedopt/admin-backend/pkg/enums"
)

func sampleSnapshot() analytics.Snapshot {
	return analytics.Snapshot{
		Overview: analytics.Overview{
			TotalRevenue:          650,
			TotalCommission:       150,
			EscrowHolding:         200,
			TotalPayoutsProcessed: 300,
			TotalPayoutsPending:   40,
			TotalTransactions:     15,
			SuccessRate:           66.67,
			DisputeRate:           20,
		},
		RevenueChart: analytics.RevenueSeries{
			Daily:  []analytics.RevenueBucket{{Date: "2025-06-18", Revenue: 100, Commission: 100}},
			Weekly: []analytics.RevenueBucket{{Date: "2025-06-16", Revenue: 150, Commission: 100}},
		},
		TopSellers: []analytics.TopSeller{
			{SellerID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), SellerName: "Alice, Inc", TotalRevenue: 150, TotalOrders: 2, CommissionPaid: 9},
		},
		TopProducts: []analytics.TopProduct{
			{ProductID: uuid.MustParse("22222222-2222-2222-2222-222222222222"), ProductName: "Dog Bed", TotalSales: 4, TotalRevenue: 200},
		},
		TopPets: []analytics.TopPet{
			{PetID: uuid.MustParse("33333333-3333-3333-3333-333333333333"), PetName: "Rex", TotalViews: 900, TotalMatches: 7},
		},
		UserGrowth: analytics.GrowthSeries{
			Daily: []analytics.GrowthBucket{{Date: "2025-06-18", NewUsers: 2, NewSellers: 1}},
		},
		ActiveUsers:       analytics.ActiveUsers{DAU: 3, WAU: 10, MAU: 25},
		TransactionVolume: []analytics.VolumeBucket{{Category: "Orders", Volume: 150, Count: 2}},
	}
}

func TestGenerateSectionsInOrder(t *testing.T) {
	got := Generate(sampleSnapshot(), enums.PeriodDaily, time.Date(2025, 6, 18, 15, 0, 0, 0, time.UTC))

	sections := []string{
		"ANALYTICS REPORT - PEDOPT",
		"=== OVERVIEW ===",
		"=== TOP SELLERS ===",
		"=== TOP PRODUCTS ===",
		"=== TOP PETS ===",
		"=== ACTIVE USERS ===",
		"=== TRANSACTION VOLUME ===",
		"=== REVENUE BY DAILY ===",
		"=== USER GROWTH BY DAILY ===",
	}
	pos := -1
	for _, section := range sections {
		idx := strings.Index(got, section)
		if idx < 0 {
			t.Fatalf("missing section %q", section)
		}
		if idx < pos {
			t.Fatalf("section %q out of order", section)
		}
		pos = idx
	}
}

func TestGenerateHeaderAndValues(t *testing.T) {
	got := Generate(sampleSnapshot(), enums.PeriodDaily, time.Date(2025, 6, 18, 15, 0, 0, 0, time.UTC))
	lines := strings.Split(got, "\n")

	if lines[0] != "ANALYTICS REPORT - PEDOPT" {
		t.Fatalf("unexpected title line: %q", lines[0])
	}
	if lines[1] != "Report Period: daily" {
		t.Fatalf("unexpected period line: %q", lines[1])
	}
	if lines[2] != "Generated Date: 2025-06-18T15:00:00Z" {
		t.Fatalf("unexpected generated line: %q", lines[2])
	}
	if lines[3] != "" {
		t.Fatalf("expected blank line after header, got %q", lines[3])
	}

	checks := []string{
		"Total Revenue,650 VND",
		"Processed Payouts,300 VND",
		"Pending Payouts,40 VND",
		"Success Rate,66.67%",
		"Dispute Rate,20.00%",
		"Rank,Product ID,Product Name,Total Sales,Total Revenue",
		"Rank,Pet ID,Pet Name,Total Views,Total Matches",
		`1,11111111-1111-1111-1111-111111111111,"Alice, Inc",150,2,9`,
		`1,22222222-2222-2222-2222-222222222222,"Dog Bed",4,200`,
		`1,33333333-3333-3333-3333-333333333333,"Rex",900,7`,
		"DAU (Daily Active Users),3",
		"WAU (Weekly Active Users),10",
		"MAU (Monthly Active Users),25",
		`"Orders",150,2`,
		"2025-06-18,100,100",
		"2025-06-18,2,1",
	}
	for _, want := range checks {
		if !strings.Contains(got, want) {
			t.Fatalf("report missing line %q\n%s", want, got)
		}
	}
}

func TestGenerateWeeklySelectsWeeklySeries(t *testing.T) {
	got := Generate(sampleSnapshot(), enums.PeriodWeekly, time.Now())

	if !strings.Contains(got, "=== REVENUE BY WEEKLY ===") {
		t.Fatalf("expected weekly revenue section\n%s", got)
	}
	if !strings.Contains(got, "2025-06-16,150,100") {
		t.Fatalf("expected weekly bucket row\n%s", got)
	}
}
