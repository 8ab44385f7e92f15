package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/sales"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormCustomerRepository implements partner.CustomerRepository using GORM.
// The receivable queries aggregate over committed credit sales; they carry no
// denormalized balance column to drift.
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer by ID, or nil when absent
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	var customer partner.Customer
	if err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

// OutstandingBalance returns the sum of unpaid credit-sale balances
func (r *GormCustomerRepository) OutstandingBalance(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&sales.Sale{}).
		Select("COALESCE(SUM(outstanding_balance), 0) AS total").
		Where("customer_id = ? AND is_credit = ? AND outstanding_balance > 0", customerID, true).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

// HasOverdueInvoices reports whether any unpaid credit sale is past due
func (r *GormCustomerRepository) HasOverdueInvoices(ctx context.Context, customerID uuid.UUID, now time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&sales.Sale{}).
		Where("customer_id = ? AND is_credit = ? AND outstanding_balance > 0 AND due_date < ?",
			customerID, true, now).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a customer
func (r *GormCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

var _ partner.CustomerRepository = (*GormCustomerRepository)(nil)
