package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dcruzdev/restopos/internal/config"
	"github.com/dcruzdev/restopos/internal/domain/enum"
	"github.com/dcruzdev/restopos/internal/domain/repository"
	"github.com/dcruzdev/restopos/pkg/apperror"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// ReportService produces sales aggregates and Excel exports.
type ReportService struct {
	reportRepo repository.ReportRepository
	storage    config.StorageConfig
	audit      *AuditService
}

// NewReportService creates a new report service
func NewReportService(reportRepo repository.ReportRepository, storage config.StorageConfig, audit *AuditService) *ReportService {
	return &ReportService{reportRepo: reportRepo, storage: storage, audit: audit}
}

// SalesSummary aggregates a period's takings for the dashboard.
type SalesSummary struct {
	Start        time.Time                        `json:"start"`
	End          time.Time                        `json:"end"`
	TotalRevenue float64                          `json:"total_revenue"`
	Daily        []repository.DailySalesResult    `json:"daily"`
	TopItems     []repository.TopItemResult       `json:"top_items"`
	Categories   []repository.CategorySalesResult `json:"categories"`
	Methods      []repository.MethodTotalResult   `json:"methods"`
}

// GetSalesSummary aggregates revenue, daily series, top items, category
// and method breakdowns for a period.
func (s *ReportService) GetSalesSummary(ctx context.Context, start, end time.Time) (*SalesSummary, error) {
	if !end.After(start) {
		return nil, apperror.NewBadRequestError("Report period end must be after its start")
	}

	total, err := s.reportRepo.GetTotalRevenue(ctx, start, end)
	if err != nil {
		return nil, err
	}
	daily, err := s.reportRepo.GetDailySales(ctx, start, end)
	if err != nil {
		return nil, err
	}
	topItems, err := s.reportRepo.GetTopItems(ctx, start, end, 10)
	if err != nil {
		return nil, err
	}
	categories, err := s.reportRepo.GetSalesByCategory(ctx, start, end)
	if err != nil {
		return nil, err
	}
	methods, err := s.reportRepo.GetTotalsByMethod(ctx, start, end)
	if err != nil {
		return nil, err
	}

	return &SalesSummary{
		Start:        start,
		End:          end,
		TotalRevenue: float64(total) / 100,
		Daily:        daily,
		TopItems:     topItems,
		Categories:   categories,
		Methods:      methods,
	}, nil
}

// ExportSalesReport writes the period's sales report as an Excel workbook
// and returns its path.
func (s *ReportService) ExportSalesReport(ctx context.Context, userID uuid.UUID, start, end time.Time) (string, error) {
	summary, err := s.GetSalesSummary(ctx, start, end)
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const summarySheet = "Summary"
	f.SetSheetName("Sheet1", summarySheet)
	f.SetCellValue(summarySheet, "A1", "Sales Report")
	f.SetCellValue(summarySheet, "A2", "Period")
	f.SetCellValue(summarySheet, "B2", fmt.Sprintf("%s to %s",
		start.Format("2006-01-02"), end.Format("2006-01-02")))
	f.SetCellValue(summarySheet, "A3", "Total Revenue")
	f.SetCellValue(summarySheet, "B3", summary.TotalRevenue)

	daily := "Daily Sales"
	f.NewSheet(daily)
	f.SetCellValue(daily, "A1", "Date")
	f.SetCellValue(daily, "B1", "Revenue")
	f.SetCellValue(daily, "C1", "IVA")
	f.SetCellValue(daily, "D1", "Orders")
	for i, row := range summary.Daily {
		r := i + 2
		f.SetCellValue(daily, fmt.Sprintf("A%d", r), row.Date.Format("2006-01-02"))
		f.SetCellValue(daily, fmt.Sprintf("B%d", r), float64(row.Revenue)/100)
		f.SetCellValue(daily, fmt.Sprintf("C%d", r), float64(row.IVA)/100)
		f.SetCellValue(daily, fmt.Sprintf("D%d", r), row.OrderCount)
	}

	items := "Top Items"
	f.NewSheet(items)
	f.SetCellValue(items, "A1", "Item")
	f.SetCellValue(items, "B1", "Quantity Sold")
	f.SetCellValue(items, "C1", "Revenue")
	for i, row := range summary.TopItems {
		r := i + 2
		f.SetCellValue(items, fmt.Sprintf("A%d", r), row.Name)
		f.SetCellValue(items, fmt.Sprintf("B%d", r), row.QuantitySold)
		f.SetCellValue(items, fmt.Sprintf("C%d", r), float64(row.Revenue)/100)
	}

	categories := "Categories"
	f.NewSheet(categories)
	f.SetCellValue(categories, "A1", "Category")
	f.SetCellValue(categories, "B1", "Sales")
	f.SetCellValue(categories, "C1", "Orders")
	for i, row := range summary.Categories {
		r := i + 2
		f.SetCellValue(categories, fmt.Sprintf("A%d", r), row.CategoryName)
		f.SetCellValue(categories, fmt.Sprintf("B%d", r), float64(row.TotalSales)/100)
		f.SetCellValue(categories, fmt.Sprintf("C%d", r), row.OrderCount)
	}

	methods := "Payment Methods"
	f.NewSheet(methods)
	f.SetCellValue(methods, "A1", "Method")
	f.SetCellValue(methods, "B1", "Total")
	f.SetCellValue(methods, "C1", "Payments")
	for i, row := range summary.Methods {
		r := i + 2
		f.SetCellValue(methods, fmt.Sprintf("A%d", r), row.Method)
		f.SetCellValue(methods, fmt.Sprintf("B%d", r), float64(row.Total)/100)
		f.SetCellValue(methods, fmt.Sprintf("C%d", r), row.Count)
	}

	dir := filepath.Join(s.storage.Path, s.storage.ExportDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("sales_%s_%s.xlsx",
		start.Format("20060102"), end.Format("20060102")))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("write sales report: %w", err)
	}

	s.audit.Record(ctx, userID, enum.AuditActionCreate, "SalesReport", path,
		filepath.Base(path), "excel export")
	return path, nil
}
