package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/sales"
	"gorm.io/gorm"
)

// GormCommissionAccrualRepository implements sales.CommissionAccrualRepository
// using GORM. Accruals are append-only snapshots.
type GormCommissionAccrualRepository struct {
	db *gorm.DB
}

// NewGormCommissionAccrualRepository creates a new GormCommissionAccrualRepository
func NewGormCommissionAccrualRepository(db *gorm.DB) *GormCommissionAccrualRepository {
	return &GormCommissionAccrualRepository{db: db}
}

// Append persists a new accrual
func (r *GormCommissionAccrualRepository) Append(ctx context.Context, accrual *sales.CommissionAccrual) error {
	return r.db.WithContext(ctx).Create(accrual).Error
}

// FindBySale returns all accruals written for a sale
func (r *GormCommissionAccrualRepository) FindBySale(ctx context.Context, saleID uuid.UUID) ([]sales.CommissionAccrual, error) {
	var accruals []sales.CommissionAccrual
	if err := r.db.WithContext(ctx).
		Where("sale_id = ?", saleID).
		Find(&accruals).Error; err != nil {
		return nil, err
	}
	return accruals, nil
}

var _ sales.CommissionAccrualRepository = (*GormCommissionAccrualRepository)(nil)
