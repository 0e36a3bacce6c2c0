package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pymeflow/gestion-api/internal/domain/entity"
	"github.com/pymeflow/gestion-api/internal/domain/enum"
	domainRepo "github.com/pymeflow/gestion-api/internal/domain/repository"
	"gorm.io/gorm"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	return conn(ctx, r.db).Create(invoice).Error
}

func (r *invoiceRepository) GetBySaleID(ctx context.Context, saleID uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := conn(ctx, r.db).First(&invoice, "sale_id = ?", saleID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

type invoiceJobRepository struct {
	db *gorm.DB
}

// NewInvoiceJobRepository creates a new invoice job repository
func NewInvoiceJobRepository(db *gorm.DB) domainRepo.InvoiceJobRepository {
	return &invoiceJobRepository{db: db}
}

func (r *invoiceJobRepository) Create(ctx context.Context, job *entity.InvoiceJob) error {
	return conn(ctx, r.db).Create(job).Error
}

func (r *invoiceJobRepository) GetPending(ctx context.Context, limit int) ([]entity.InvoiceJob, error) {
	var jobs []entity.InvoiceJob
	err := conn(ctx, r.db).
		Where("status = ?", enum.InvoiceJobStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&jobs).Error
	return jobs, err
}

func (r *invoiceJobRepository) Update(ctx context.Context, job *entity.InvoiceJob) error {
	return conn(ctx, r.db).Save(job).Error
}
