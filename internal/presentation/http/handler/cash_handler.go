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

// CashHandler handles treasury cash book HTTP requests
type CashHandler struct {
	cashService *service.CashService
}

// NewCashHandler creates a new cash handler
func NewCashHandler(cashService *service.CashService) *CashHandler {
	return &CashHandler{cashService: cashService}
}

type cashEntryRequest struct {
	Date        *time.Time         `json:"date"`
	Account     string             `json:"account" binding:"required"`
	Category    string             `json:"category"`
	Method      enum.PaymentMethod `json:"method"`
	Direction   enum.CashDirection `json:"direction"`
	Amount      decimal.Decimal    `json:"amount"`
	Description string             `json:"description"`
}

func (r *cashEntryRequest) toInput() *service.CashEntryInput {
	return &service.CashEntryInput{
		Date:        r.Date,
		Account:     r.Account,
		Category:    r.Category,
		Method:      r.Method,
		Direction:   r.Direction,
		Amount:      r.Amount,
		Description: r.Description,
	}
}

// Create handles recording a manual cash movement
func (h *CashHandler) Create(c *gin.Context) {
	var req cashEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	entry, err := h.cashService.CreateEntry(c.Request.Context(), req.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Cash entry created successfully", entry)
}

// Get handles getting a single cash entry
func (h *CashHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid cash entry ID")
		return
	}

	entry, err := h.cashService.GetEntry(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cash entry retrieved successfully", entry)
}

// Update handles rewriting a manual cash movement
func (h *CashHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid cash entry ID")
		return
	}

	var req cashEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	entry, err := h.cashService.UpdateEntry(c.Request.Context(), id, req.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cash entry updated successfully", entry)
}

// Delete handles deleting a manual cash movement
func (h *CashHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid cash entry ID")
		return
	}

	if err := h.cashService.DeleteEntry(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// List handles listing the cash book
func (h *CashHandler) List(c *gin.Context) {
	params := &repository.CashFilterParams{
		Pagination: getPagination(c),
		Account:    c.Query("account"),
	}

	if directionStr := c.Query("direction"); directionStr != "" {
		var direction enum.CashDirection
		switch directionStr {
		case "inflow":
			direction = enum.CashDirectionInflow
		case "outflow":
			direction = enum.CashDirectionOutflow
		default:
			response.BadRequest(c, "Invalid direction filter")
			return
		}
		params.Direction = &direction
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

	result, err := h.cashService.ListEntries(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Cash entries retrieved successfully", result)
}
