package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pymeflow/gestion-api/internal/domain/entity"
	"github.com/pymeflow/gestion-api/internal/domain/repository"
	"github.com/pymeflow/gestion-api/pkg/apperror"
	"github.com/pymeflow/gestion-api/pkg/pagination"
)

// CreateCustomerInput carries a new customer request.
type CreateCustomerInput struct {
	Name               string  `json:"name"`
	CUIT               *string `json:"cuit,omitempty"`
	Email              *string `json:"email,omitempty"`
	Phone              *string `json:"phone,omitempty"`
	Address            *string `json:"address,omitempty"`
	AutoInvoicing      bool    `json:"auto_invoicing"`
	RequiresTaxInvoice bool    `json:"requires_tax_invoice"`
}

// UpdateCustomerInput carries partial customer updates. Nil fields are
// left untouched.
type UpdateCustomerInput struct {
	Name               *string `json:"name,omitempty"`
	CUIT               *string `json:"cuit,omitempty"`
	Email              *string `json:"email,omitempty"`
	Phone              *string `json:"phone,omitempty"`
	Address            *string `json:"address,omitempty"`
	AutoInvoicing      *bool   `json:"auto_invoicing,omitempty"`
	RequiresTaxInvoice *bool   `json:"requires_tax_invoice,omitempty"`
}

// CustomerService manages customer accounts and exposes their ledger.
type CustomerService struct {
	customerRepo repository.CustomerRepository
	ledgerRepo   repository.LedgerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository, ledgerRepo repository.LedgerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo, ledgerRepo: ledgerRepo}
}

// CreateCustomer creates a new customer account.
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	if input.Name == "" {
		return nil, apperror.NewValidationError("name is required")
	}
	if input.Email != nil && *input.Email != "" {
		existing, err := s.customerRepo.GetByEmail(ctx, *input.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("a customer with this email already exists")
		}
	}

	customer := &entity.Customer{
		Name:               input.Name,
		CUIT:               input.CUIT,
		Email:              input.Email,
		Phone:              input.Phone,
		Address:            input.Address,
		AutoInvoicing:      input.AutoInvoicing,
		RequiresTaxInvoice: input.RequiresTaxInvoice,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomer retrieves a customer by ID.
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// UpdateCustomer applies the non-nil fields of input to the customer.
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperror.NewValidationError("name cannot be empty")
		}
		customer.Name = *input.Name
	}
	if input.CUIT != nil {
		customer.CUIT = input.CUIT
	}
	if input.Email != nil {
		customer.Email = input.Email
	}
	if input.Phone != nil {
		customer.Phone = input.Phone
	}
	if input.Address != nil {
		customer.Address = input.Address
	}
	if input.AutoInvoicing != nil {
		customer.AutoInvoicing = *input.AutoInvoicing
	}
	if input.RequiresTaxInvoice != nil {
		customer.RequiresTaxInvoice = *input.RequiresTaxInvoice
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer removes a customer. Accounts that still owe or hold
// money cannot be removed.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return err
	}
	if !customer.RunningBalance.IsZero() {
		return apperror.NewValidationError("customer has a non-zero account balance")
	}
	return s.customerRepo.Delete(ctx, id)
}

// ListCustomers returns a paginated, optionally searched customer page.
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	if params == nil {
		params = pagination.DefaultPagination()
	}
	customers, total, err := s.customerRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}
	p := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, p), nil
}

// GetLedger returns the customer's account movements, newest first.
func (s *CustomerService) GetLedger(ctx context.Context, id uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.LedgerEntry], error) {
	if _, err := s.GetCustomer(ctx, id); err != nil {
		return nil, err
	}
	if params == nil {
		params = pagination.DefaultPagination()
	}
	entries, total, err := s.ledgerRepo.ListForCustomer(ctx, id, params)
	if err != nil {
		return nil, err
	}
	p := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(entries, p), nil
}
