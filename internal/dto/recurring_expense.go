package dto

import (
	"time"

	"github.com/ldmoraes/contas_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateRecurringExpenseRequest defines the data needed to create a template.
type CreateRecurringExpenseRequest struct {
	Description  string          `json:"description" binding:"required,max=200"`
	SupplierName string          `json:"supplierName" binding:"required,max=200"`
	Category     string          `json:"category" binding:"required,max=100"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	DueDay       int             `json:"dueDay" binding:"required,min=1,max=31"`
	Periodicity  string          `json:"periodicity" binding:"required,oneof=MONTHLY QUARTERLY YEARLY"`
	NextDueDate  string          `json:"nextDueDate" binding:"required,datetime=2006-01-02"`
}

// UpdateRecurringExpenseRequest defines the partial change set for a template.
type UpdateRecurringExpenseRequest struct {
	Description  *string          `json:"description" binding:"omitempty,max=200"`
	SupplierName *string          `json:"supplierName" binding:"omitempty,max=200"`
	Category     *string          `json:"category" binding:"omitempty,max=100"`
	Amount       *decimal.Decimal `json:"amount"`
	DueDay       *int             `json:"dueDay" binding:"omitempty,min=1,max=31"`
	Periodicity  *string          `json:"periodicity" binding:"omitempty,oneof=MONTHLY QUARTERLY YEARLY"`
	IsActive     *bool            `json:"isActive"`
	NextDueDate  *string          `json:"nextDueDate" binding:"omitempty,datetime=2006-01-02"`
}

// RecurringExpenseResponse defines the data returned for a template.
type RecurringExpenseResponse struct {
	RecurringExpenseID string          `json:"recurringExpenseID"`
	Description        string          `json:"description"`
	SupplierName       string          `json:"supplierName"`
	Category           string          `json:"category"`
	Amount             decimal.Decimal `json:"amount"`
	DueDay             int             `json:"dueDay"`
	Periodicity        string          `json:"periodicity"`
	IsActive           bool            `json:"isActive"`
	NextDueDate        string          `json:"nextDueDate"`
	CreatedAt          time.Time       `json:"createdAt"`
}

// GeneratePayablesResponse reports the payables materialized by a generation run.
type GeneratePayablesResponse struct {
	Generated []PayableResponse `json:"generated"`
}

// ToRecurringExpenseResponse converts a domain.RecurringExpense to its response DTO.
func ToRecurringExpenseResponse(e *domain.RecurringExpense) RecurringExpenseResponse {
	return RecurringExpenseResponse{
		RecurringExpenseID: e.RecurringExpenseID,
		Description:        e.Description,
		SupplierName:       e.SupplierName,
		Category:           e.Category,
		Amount:             e.Amount,
		DueDay:             e.DueDay,
		Periodicity:        string(e.Periodicity),
		IsActive:           e.IsActive,
		NextDueDate:        FormatDate(e.NextDueDate),
		CreatedAt:          e.CreatedAt,
	}
}

// ToListRecurringExpensesResponse converts templates to response DTOs.
func ToListRecurringExpensesResponse(expenses []domain.RecurringExpense) []RecurringExpenseResponse {
	res := make([]RecurringExpenseResponse, len(expenses))
	for i := range expenses {
		res[i] = ToRecurringExpenseResponse(&expenses[i])
	}
	return res
}
