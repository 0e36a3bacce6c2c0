package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pymeflow/gestion-api/internal/application/service"
	"github.com/pymeflow/gestion-api/internal/domain/enum"
	"github.com/pymeflow/gestion-api/internal/domain/repository"
	"github.com/pymeflow/gestion-api/internal/presentation/http/dto/response"
)

// ReceiptHandler handles receipt-related HTTP requests
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// Create handles settling a collection
func (h *ReceiptHandler) Create(c *gin.Context) {
	userEmail := GetUserEmail(c)
	if userEmail == "" {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		CustomerID uuid.UUID   `json:"customer_id" binding:"required"`
		SaleIDs    []uuid.UUID `json:"sale_ids"`
		Tenders    []struct {
			Method       enum.PaymentMethod `json:"method"`
			Amount       decimal.Decimal    `json:"amount"`
			Bank         *string            `json:"bank"`
			CheckNumber  *string            `json:"check_number"`
			CheckDueDate *time.Time         `json:"check_due_date"`
		} `json:"tenders" binding:"required"`
		CollectionTiming string  `json:"collection_timing"`
		Observations     *string `json:"observations"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.CreateReceiptInput{
		CustomerID:       req.CustomerID,
		SaleIDs:          req.SaleIDs,
		CollectionTiming: req.CollectionTiming,
		Observations:     req.Observations,
		CreatedBy:        userEmail,
	}
	for _, t := range req.Tenders {
		input.Tenders = append(input.Tenders, service.TenderInput{
			Method:       t.Method,
			Amount:       t.Amount,
			Bank:         t.Bank,
			CheckNumber:  t.CheckNumber,
			CheckDueDate: t.CheckDueDate,
		})
	}

	receipt, err := h.receiptService.CreateReceipt(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Receipt created successfully", receipt)
}

// Void handles voiding an active receipt
func (h *ReceiptHandler) Void(c *gin.Context) {
	userEmail := GetUserEmail(c)
	if userEmail == "" {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	receipt, err := h.receiptService.VoidReceipt(c.Request.Context(), id, &service.VoidReceiptInput{
		Reason:     req.Reason,
		ModifiedBy: userEmail,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt voided successfully", receipt)
}

// Get handles getting a single receipt with its allocations and tenders
func (h *ReceiptHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	receipt, err := h.receiptService.GetReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt retrieved successfully", receipt)
}

// List handles listing receipts
func (h *ReceiptHandler) List(c *gin.Context) {
	params := &repository.ReceiptFilterParams{
		Pagination: getPagination(c),
	}

	if customerIDStr := c.Query("customer_id"); customerIDStr != "" {
		customerID, err := uuid.Parse(customerIDStr)
		if err != nil {
			response.BadRequest(c, "Invalid customer ID")
			return
		}
		params.CustomerID = &customerID
	}
	if statusStr := c.Query("status"); statusStr != "" {
		var status enum.ReceiptStatus
		switch statusStr {
		case "active":
			status = enum.ReceiptStatusActive
		case "void":
			status = enum.ReceiptStatusVoid
		default:
			response.BadRequest(c, "Invalid status filter")
			return
		}
		params.Status = &status
	}
	if startStr := c.Query("start_date"); startStr != "" {
		start, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			response.BadRequest(c, "Invalid start date")
			return
		}
		params.StartDate = &start
	}
	if endStr := c.Query("end_date"); endStr != "" {
		end, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			response.BadRequest(c, "Invalid end date")
			return
		}
		params.EndDate = &end
	}

	result, err := h.receiptService.ListReceipts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Receipts retrieved successfully", result)
}
