package analytics

import "github.com/google/uuid"

// Overview is the headline financial summary. Currency fields are whole
// units, rates are percentages rounded to two decimals.
type Overview struct {
	TotalRevenue          int64   `json:"total_revenue"`
	TotalCommission       int64   `json:"total_commission"`
	EscrowHolding         int64   `json:"escrow_holding"`
	TotalPayoutsProcessed int64   `json:"total_payouts_processed"`
	TotalPayoutsPending   int64   `json:"total_payouts_pending"`
	TotalTransactions     int64   `json:"total_transactions"`
	SuccessRate           float64 `json:"success_rate"`
	DisputeRate           float64 `json:"dispute_rate"`
}

// RevenueBucket is one time bucket of the revenue chart.
type RevenueBucket struct {
	Date       string `json:"date"`
	Revenue    int64  `json:"revenue"`
	Commission int64  `json:"commission"`
}

// GrowthBucket is one time bucket of the user growth chart. Sellers are
// a subset of users.
type GrowthBucket struct {
	Date       string `json:"date"`
	NewUsers   int    `json:"new_users"`
	NewSellers int    `json:"new_sellers"`
}

// TopSeller ranks a seller by fulfilled order revenue.
type TopSeller struct {
	SellerID       uuid.UUID `json:"seller_id"`
	SellerName     string    `json:"seller_name"`
	TotalRevenue   int64     `json:"total_revenue"`
	TotalOrders    int       `json:"total_orders"`
	CommissionPaid int64     `json:"commission_paid"`
}

// TopProduct ranks a product by fulfilled order revenue.
type TopProduct struct {
	ProductID    uuid.UUID `json:"product_id"`
	ProductName  string    `json:"product_name"`
	TotalSales   int       `json:"total_sales"`
	TotalRevenue int64     `json:"total_revenue"`
}

// TopPet ranks a pet by profile views.
type TopPet struct {
	PetID        uuid.UUID `json:"pet_id"`
	PetName      string    `json:"pet_name"`
	TotalViews   int       `json:"total_views"`
	TotalMatches int64     `json:"total_matches"`
}

// ActiveUsers holds the rolling activity counts.
type ActiveUsers struct {
	DAU int64 `json:"dau"`
	WAU int64 `json:"wau"`
	MAU int64 `json:"mau"`
}

// VolumeBucket is settled volume for one transaction category.
type VolumeBucket struct {
	Category string `json:"category"`
	Volume   int64  `json:"volume"`
	Count    int64  `json:"count"`
}

// RevenueSeries carries the revenue chart at every granularity.
type RevenueSeries struct {
	Daily   []RevenueBucket `json:"daily"`
	Weekly  []RevenueBucket `json:"weekly"`
	Monthly []RevenueBucket `json:"monthly"`
}

// GrowthSeries carries the user growth chart at every granularity.
type GrowthSeries struct {
	Daily   []GrowthBucket `json:"daily"`
	Weekly  []GrowthBucket `json:"weekly"`
	Monthly []GrowthBucket `json:"monthly"`
}

// Snapshot is the full analytics payload behind the dashboard page and
// the report export.
type Snapshot struct {
	Overview          Overview       `json:"overview"`
	RevenueChart      RevenueSeries  `json:"revenue_chart"`
	TopSellers        []TopSeller    `json:"top_sellers"`
	TopProducts       []TopProduct   `json:"top_products"`
	TopPets           []TopPet       `json:"top_pets"`
	UserGrowth        GrowthSeries   `json:"user_growth"`
	ActiveUsers       ActiveUsers    `json:"active_users"`
	TransactionVolume []VolumeBucket `json:"transaction_volume"`
}
