package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TopItemResult represents a menu item's sales performance
type TopItemResult struct {
	MenuItemID   uuid.UUID
	Name         string
	QuantitySold int
	Revenue      int64 // cents
}

// CategorySalesResult represents sales aggregated by menu category
type CategorySalesResult struct {
	CategoryID   uuid.UUID
	CategoryName string
	TotalSales   int64 // cents
	OrderCount   int
}

// DailySalesResult represents sales data for a single day
type DailySalesResult struct {
	Date       time.Time
	Revenue    int64 // cents
	IVA        int64 // cents
	OrderCount int
}

// MethodTotalResult represents takings aggregated by payment method
type MethodTotalResult struct {
	Method string
	Total  int64 // cents
	Count  int
}

// ReportRepository defines the interface for sales aggregation queries
type ReportRepository interface {
	// GetTopItems returns top selling menu items by revenue in a period
	GetTopItems(ctx context.Context, start, end time.Time, limit int) ([]TopItemResult, error)

	// GetSalesByCategory returns sales aggregated by category in a period
	GetSalesByCategory(ctx context.Context, start, end time.Time) ([]CategorySalesResult, error)

	// GetDailySales returns per-day revenue and IVA in a period
	GetDailySales(ctx context.Context, start, end time.Time) ([]DailySalesResult, error)

	// GetTotalsByMethod returns takings grouped by payment method in a period
	GetTotalsByMethod(ctx context.Context, start, end time.Time) ([]MethodTotalResult, error)

	// GetTotalRevenue returns total completed-payment revenue in a period
	GetTotalRevenue(ctx context.Context, start, end time.Time) (int64, error)
}
