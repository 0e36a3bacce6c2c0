package service

import (
	"context"
	"log"
	"time"

	"github.com/pymeflow/gestion-api/internal/domain/entity"
	"github.com/pymeflow/gestion-api/internal/domain/enum"
	"github.com/pymeflow/gestion-api/internal/domain/repository"
	"github.com/pymeflow/gestion-api/pkg/apperror"
	"github.com/pymeflow/gestion-api/pkg/utils"
)

// InvoicingService drains the invoice job outbox and creates draft
// invoices for collected sales. It runs outside the settlement
// transaction: a failing job is recorded on the job row and never
// touches the receipt that queued it.
type InvoicingService struct {
	atomic      repository.Atomic
	jobRepo     repository.InvoiceJobRepository
	invoiceRepo repository.InvoiceRepository
	saleRepo    repository.SaleRepository
	batchSize   int
}

// NewInvoicingService creates a new invoicing service
func NewInvoicingService(
	atomic repository.Atomic,
	jobRepo repository.InvoiceJobRepository,
	invoiceRepo repository.InvoiceRepository,
	saleRepo repository.SaleRepository,
	batchSize int,
) *InvoicingService {
	if batchSize <= 0 {
		batchSize = 25
	}
	return &InvoicingService{
		atomic:      atomic,
		jobRepo:     jobRepo,
		invoiceRepo: invoiceRepo,
		saleRepo:    saleRepo,
		batchSize:   batchSize,
	}
}

// Start polls the outbox until ctx is cancelled.
func (s *InvoicingService) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("Invoicing worker started (every %s)", interval)
	for {
		select {
		case <-ctx.Done():
			log.Println("Invoicing worker stopped")
			return
		case <-ticker.C:
			if _, err := s.ProcessPending(ctx); err != nil {
				log.Printf("Invoicing worker: %v", err)
			}
		}
	}
}

// ProcessPending drains one batch of pending jobs and returns how many
// produced an invoice. Job failures are recorded per job and do not
// stop the batch.
func (s *InvoicingService) ProcessPending(ctx context.Context) (int, error) {
	jobs, err := s.jobRepo.GetPending(ctx, s.batchSize)
	if err != nil {
		return 0, err
	}

	done := 0
	for i := range jobs {
		job := &jobs[i]
		job.Attempts++
		if err := s.processJob(ctx, job); err != nil {
			msg := err.Error()
			job.Status = enum.InvoiceJobStatusFailed
			job.LastError = &msg
			log.Printf("Invoice job %s failed: %v", job.ID, err)
		} else {
			job.Status = enum.InvoiceJobStatusDone
			job.LastError = nil
			done++
		}
		if err := s.jobRepo.Update(ctx, job); err != nil {
			return done, err
		}
	}
	return done, nil
}

func (s *InvoicingService) processJob(ctx context.Context, job *entity.InvoiceJob) error {
	return s.atomic.Transaction(ctx, func(ctx context.Context) error {
		sale, err := s.saleRepo.GetByID(ctx, job.SaleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return apperror.NewNotFoundError("Sale")
		}
		// A concurrent job or an earlier retry may have invoiced the
		// sale already; that counts as success.
		if sale.InvoiceID != nil {
			return nil
		}

		// A retried job whose sale lost its link reuses the existing
		// invoice instead of drafting a second one.
		invoice, err := s.invoiceRepo.GetBySaleID(ctx, sale.ID)
		if err != nil {
			return err
		}
		if invoice == nil {
			invoice = &entity.Invoice{
				Number:     utils.GenerateDocumentNumber("FC"),
				SaleID:     sale.ID,
				CustomerID: sale.CustomerID,
				Amount:     sale.Total,
				Draft:      true,
			}
			if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
				return err
			}
		}

		sale.InvoiceID = &invoice.ID
		if sale.Status == enum.SaleStatusCollected {
			sale.Status = enum.SaleStatusInvoiced
		}
		return s.saleRepo.Update(ctx, sale)
	})
}
