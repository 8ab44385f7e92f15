package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/sales"
	"github.com/retailpos/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormSaleRepository implements sales.SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByID finds a sale with lines and payments, or nil when absent
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	var sale sales.Sale
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Preload("Payments").
		First(&sale, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sale, nil
}

// FindByIdempotencyKey finds a sale by its basket key, or nil when no sale
// was committed under that key
func (r *GormSaleRepository) FindByIdempotencyKey(ctx context.Context, key string) (*sales.Sale, error) {
	var sale sales.Sale
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Preload("Payments").
		First(&sale, "idempotency_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sale, nil
}

// Save creates the sale aggregate with its lines and payments. A unique
// violation on the idempotency key means a concurrent basket with the same
// key committed first; the caller resolves it to that sale.
func (r *GormSaleRepository) Save(ctx context.Context, sale *sales.Sale) error {
	err := r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(sale).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		if sale.IdempotencyKey != "" {
			return shared.NewDomainError(shared.ErrDuplicateBasket.Code,
				fmt.Sprintf("a sale with idempotency key %s already exists", sale.IdempotencyKey))
		}
		return shared.NewDomainError(shared.ErrAlreadyExists.Code,
			fmt.Sprintf("sale %s already exists", sale.Number))
	}
	return err
}

// saleNumberLockID identifies the advisory lock serializing number
// generation. The lock is transaction scoped and releases at commit.
const saleNumberLockID = 874523001

// GenerateNumber produces the next sequential sale number for the current
// year, e.g. V-2026-00042. Callers run inside the sale transaction; the
// advisory lock serializes concurrent transactions so each one reads the
// previous committed maximum.
func (r *GormSaleRepository) GenerateNumber(ctx context.Context) (string, error) {
	if r.db.Dialector.Name() == "postgres" {
		if err := r.db.WithContext(ctx).
			Exec("SELECT pg_advisory_xact_lock(?)", saleNumberLockID).Error; err != nil {
			return "", err
		}
	}

	prefix := fmt.Sprintf("V-%d-", time.Now().Year())

	var last sales.Sale
	err := r.db.WithContext(ctx).
		Model(&sales.Sale{}).
		Where("number LIKE ?", prefix+"%").
		Order("number DESC").
		First(&last).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var next int64 = 1
	if err == nil && last.Number != "" {
		parts := strings.Split(last.Number, "-")
		if len(parts) == 3 {
			var n int64
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &n); parseErr == nil {
				next = n + 1
			}
		}
	}

	return fmt.Sprintf("%s%05d", prefix, next), nil
}

var _ sales.SaleRepository = (*GormSaleRepository)(nil)
