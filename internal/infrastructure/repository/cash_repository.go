package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pymeflow/gestion-api/internal/domain/entity"
	domainRepo "github.com/pymeflow/gestion-api/internal/domain/repository"
	"gorm.io/gorm"
)

type cashRepository struct {
	db *gorm.DB
}

// NewCashRepository creates a new cash book repository
func NewCashRepository(db *gorm.DB) domainRepo.CashRepository {
	return &cashRepository{db: db}
}

func (r *cashRepository) Create(ctx context.Context, entry *entity.CashEntry) error {
	return conn(ctx, r.db).Create(entry).Error
}

func (r *cashRepository) CreateBatch(ctx context.Context, entries []entity.CashEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return conn(ctx, r.db).Create(&entries).Error
}

func (r *cashRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.CashEntry, error) {
	var entry entity.CashEntry
	err := conn(ctx, r.db).First(&entry, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &entry, err
}

func (r *cashRepository) Update(ctx context.Context, entry *entity.CashEntry) error {
	return conn(ctx, r.db).Save(entry).Error
}

func (r *cashRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.CashEntry{}, "id = ?", id).Error
}

func (r *cashRepository) MarkVoidedByReceipt(ctx context.Context, receiptID uuid.UUID) error {
	return conn(ctx, r.db).Model(&entity.CashEntry{}).
		Where("receipt_id = ?", receiptID).
		Update("voided", true).Error
}

func (r *cashRepository) List(ctx context.Context, params *domainRepo.CashFilterParams) ([]entity.CashEntry, int64, error) {
	var entries []entity.CashEntry
	var total int64

	query := conn(ctx, r.db).Model(&entity.CashEntry{})

	if params.Account != "" {
		query = query.Where("account = ?", params.Account)
	}

	if params.Direction != nil {
		query = query.Where("direction = ?", *params.Direction)
	}

	if params.StartDate != nil {
		query = query.Where("date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("created_at DESC").
		Find(&entries).Error

	return entries, total, err
}
