package commissions

import "github.com/google/uuid"

// Stats is the commission headline summary. Realized commission covers
// the calculated and collected statuses.
type Stats struct {
	TotalCommission       int64   `json:"total_commission"`
	TotalCollected        int64   `json:"total_collected"`
	TotalPending          int64   `json:"total_pending"`
	TotalRefunded         int64   `json:"total_refunded"`
	AverageCommissionRate float64 `json:"average_commission_rate"`
	TotalTransactions     int64   `json:"total_transactions"`
}

// SellerCommission is the realized commission attributed to one seller.
type SellerCommission struct {
	SellerID          uuid.UUID `json:"seller_id"`
	SellerName        string    `json:"seller_name"`
	ReputationTier    string    `json:"reputation_tier"`
	TotalCommission   int64     `json:"total_commission"`
	TotalTransactions int       `json:"total_transactions"`
	AverageRate       float64   `json:"average_rate"`
}

// PeriodBucket is realized commission for one time bucket.
type PeriodBucket struct {
	Date         string  `json:"date"`
	Commission   int64   `json:"commission"`
	Transactions int     `json:"transactions"`
	AverageRate  float64 `json:"average_rate"`
}
