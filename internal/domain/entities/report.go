package entities

import (
	"time"

	"github.com/google/uuid"
)

// VendorSummary rolls up a vendor's financial activity for a period
type VendorSummary struct {
	VendorID         uuid.UUID           `json:"vendorId"`
	From             time.Time           `json:"from"`
	To               time.Time           `json:"to"`
	OrderCount       int64               `json:"orderCount"`
	GrossSales       float64             `json:"grossSales"`
	CommissionTotal  float64             `json:"commissionTotal"`
	NetEarnings      float64             `json:"netEarnings"`
	PayoutsByStatus  map[PayoutStatus]float64 `json:"payoutsByStatus"`
	AvailableBalance float64             `json:"availableBalance"`
}

// PlatformSummary rolls up activity across all vendors for a period
type PlatformSummary struct {
	From            time.Time `json:"from"`
	To              time.Time `json:"to"`
	OrderCount      int64     `json:"orderCount"`
	GrossSales      float64   `json:"grossSales"`
	CommissionTotal float64   `json:"commissionTotal"`
	PayoutTotal     float64   `json:"payoutTotal"`
	ActiveVendors   int64     `json:"activeVendors"`
	TrialsFlagged   int64     `json:"trialsFlagged"`
}
