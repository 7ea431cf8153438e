package repository

import (
	"context"
	"time"

	"github.com/dcruzdev/restopos/internal/domain/entity"
	"github.com/dcruzdev/restopos/internal/domain/enum"
	domainRepo "github.com/dcruzdev/restopos/internal/domain/repository"
	"gorm.io/gorm"
)

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) domainRepo.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) GetTopItems(ctx context.Context, start, end time.Time, limit int) ([]domainRepo.TopItemResult, error) {
	var results []domainRepo.TopItemResult
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Model(&entity.PaymentItem{}).
		Select("payment_items.menu_item_id, menu_items.name, SUM(payment_items.quantity) as quantity_sold, SUM(payment_items.quantity * payment_items.unit_price) as revenue").
		Joins("JOIN menu_items ON menu_items.id = payment_items.menu_item_id").
		Joins("JOIN payments ON payments.id = payment_items.payment_id").
		Where("payments.state = ? AND payments.created_at BETWEEN ? AND ?", enum.PaymentStateCompleted, start, end).
		Group("payment_items.menu_item_id, menu_items.name").
		Order("revenue DESC").
		Limit(limit).
		Scan(&results).Error
	return results, err
}

func (r *reportRepository) GetSalesByCategory(ctx context.Context, start, end time.Time) ([]domainRepo.CategorySalesResult, error) {
	var results []domainRepo.CategorySalesResult
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Model(&entity.PaymentItem{}).
		Select("menu_categories.id as category_id, menu_categories.name as category_name, SUM(payment_items.quantity * payment_items.unit_price) as total_sales, COUNT(DISTINCT payments.order_id) as order_count").
		Joins("JOIN menu_items ON menu_items.id = payment_items.menu_item_id").
		Joins("JOIN menu_categories ON menu_categories.id = menu_items.category_id").
		Joins("JOIN payments ON payments.id = payment_items.payment_id").
		Where("payments.state = ? AND payments.created_at BETWEEN ? AND ?", enum.PaymentStateCompleted, start, end).
		Group("menu_categories.id, menu_categories.name").
		Order("total_sales DESC").
		Scan(&results).Error
	return results, err
}

func (r *reportRepository) GetDailySales(ctx context.Context, start, end time.Time) ([]domainRepo.DailySalesResult, error) {
	var results []domainRepo.DailySalesResult
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Model(&entity.Payment{}).
		Select("DATE(payments.created_at) as date, SUM(payments.amount) as revenue, SUM(payments.amount) - SUM(payments.amount * 100 / ?) as iva, COUNT(DISTINCT payments.order_id) as order_count", 100+entity.IVARate).
		Where("payments.state = ? AND payments.created_at BETWEEN ? AND ?", enum.PaymentStateCompleted, start, end).
		Group("DATE(payments.created_at)").
		Order("date").
		Scan(&results).Error
	return results, err
}

func (r *reportRepository) GetTotalsByMethod(ctx context.Context, start, end time.Time) ([]domainRepo.MethodTotalResult, error) {
	var results []domainRepo.MethodTotalResult
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Model(&entity.Payment{}).
		Select("payments.method as method, SUM(payments.amount) as total, COUNT(*) as count").
		Where("payments.state = ? AND payments.created_at BETWEEN ? AND ?", enum.PaymentStateCompleted, start, end).
		Group("payments.method").
		Order("total DESC").
		Scan(&results).Error
	return results, err
}

func (r *reportRepository) GetTotalRevenue(ctx context.Context, start, end time.Time) (int64, error) {
	var total *int64
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Model(&entity.Payment{}).
		Select("SUM(amount)").
		Where("state = ? AND created_at BETWEEN ? AND ?", enum.PaymentStateCompleted, start, end).
		Scan(&total).Error
	if total == nil {
		return 0, err
	}
	return *total, err
}
