package dto

import (
	"time"

	"github.com/ldmoraes/contas_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInstallmentRequest defines one scheduled sub-payment on payable creation.
type CreateInstallmentRequest struct {
	Number  int             `json:"number" binding:"required,min=1"`
	DueDate string          `json:"dueDate" binding:"required,datetime=2006-01-02"`
	Amount  decimal.Decimal `json:"amount" binding:"required"`
	Notes   string          `json:"notes"`
}

// CreatePayableRequest defines the data needed to create a new payable.
// Either explicit Installments or an InstallmentCount to split the total
// evenly may be given, not both.
type CreatePayableRequest struct {
	Description      string                     `json:"description" binding:"required,max=200"`
	SupplierName     string                     `json:"supplierName" binding:"required,max=200"`
	SupplierTaxID    string                     `json:"supplierTaxID" binding:"omitempty,cnpj"`
	ExpenseType      string                     `json:"expenseType" binding:"required,oneof=OPERATIONAL ADMINISTRATIVE FINANCIAL"`
	Category         string                     `json:"category" binding:"required,max=100"`
	TotalAmount      decimal.Decimal            `json:"totalAmount" binding:"required"`
	IssueDate        string                     `json:"issueDate" binding:"required,datetime=2006-01-02"`
	DueDate          string                     `json:"dueDate" binding:"required,datetime=2006-01-02"`
	IsRecurring      bool                       `json:"isRecurring"`
	Periodicity      string                     `json:"periodicity" binding:"omitempty,oneof=MONTHLY QUARTERLY YEARLY"`
	Notes            string                     `json:"notes"`
	InvoiceID        string                     `json:"invoiceID" binding:"omitempty,uuid"`
	InstallmentCount int                        `json:"installmentCount" binding:"omitempty,min=1,max=120"`
	Installments     []CreateInstallmentRequest `json:"installments" binding:"omitempty,dive"`
}

// CreatePayableFromInvoiceRequest defines the extra data needed when creating
// a payable from an existing invoice; the monetary fields come from the invoice.
type CreatePayableFromInvoiceRequest struct {
	ExpenseType      string `json:"expenseType" binding:"required,oneof=OPERATIONAL ADMINISTRATIVE FINANCIAL"`
	Category         string `json:"category" binding:"required,max=100"`
	Notes            string `json:"notes"`
	InstallmentCount int    `json:"installmentCount" binding:"omitempty,min=1,max=120"`
}

// UpdatePayableRequest defines the partial change set for a payable.
// Pointers distinguish zero-value updates from fields not provided.
type UpdatePayableRequest struct {
	Description   *string          `json:"description" binding:"omitempty,max=200"`
	SupplierName  *string          `json:"supplierName" binding:"omitempty,max=200"`
	SupplierTaxID *string          `json:"supplierTaxID" binding:"omitempty,cnpj"`
	ExpenseType   *string          `json:"expenseType" binding:"omitempty,oneof=OPERATIONAL ADMINISTRATIVE FINANCIAL"`
	Category      *string          `json:"category" binding:"omitempty,max=100"`
	TotalAmount   *decimal.Decimal `json:"totalAmount"`
	IssueDate     *string          `json:"issueDate" binding:"omitempty,datetime=2006-01-02"`
	DueDate       *string          `json:"dueDate" binding:"omitempty,datetime=2006-01-02"`
	Status        *string          `json:"status" binding:"omitempty,oneof=PENDING PAID OVERDUE CANCELLED"`
	IsRecurring   *bool            `json:"isRecurring"`
	Periodicity   *string          `json:"periodicity" binding:"omitempty,oneof=MONTHLY QUARTERLY YEARLY"`
	Notes         *string          `json:"notes"`
}

// RecordPaymentRequest defines a disbursement against a payable, optionally
// settling one specific installment.
type RecordPaymentRequest struct {
	InstallmentID string          `json:"installmentID" binding:"omitempty,uuid"`
	PaymentDate   string          `json:"paymentDate" binding:"required,datetime=2006-01-02"`
	AmountPaid    decimal.Decimal `json:"amountPaid" binding:"required"`
	Method        string          `json:"method" binding:"required,oneof=CASH PIX BANK_TRANSFER BOLETO CARD"`
	ReceiptPath   string          `json:"receiptPath" binding:"omitempty,max=500"`
	Notes         string          `json:"notes"`
	Interest      decimal.Decimal `json:"interest"`
	Penalty       decimal.Decimal `json:"penalty"`
	Discount      decimal.Decimal `json:"discount"`
}

// ListPayablesParams defines query parameters for listing payables.
type ListPayablesParams struct {
	Status       string `form:"status" binding:"omitempty,oneof=PENDING PAID OVERDUE CANCELLED"`
	ExpenseType  string `form:"expenseType" binding:"omitempty,oneof=OPERATIONAL ADMINISTRATIVE FINANCIAL"`
	Category     string `form:"category"`
	SupplierName string `form:"supplier"`
	DueAfter     string `form:"dueAfter" binding:"omitempty,datetime=2006-01-02"`
	DueBefore    string `form:"dueBefore" binding:"omitempty,datetime=2006-01-02"`
	Limit        int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken    string `form:"nextToken"`
}

// InstallmentResponse defines the data returned for an installment.
type InstallmentResponse struct {
	InstallmentID string          `json:"installmentID"`
	PayableID     string          `json:"payableID"`
	Number        int             `json:"number"`
	DueDate       string          `json:"dueDate"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	PaymentDate   string          `json:"paymentDate,omitempty"`
	PaidAmount    decimal.Decimal `json:"paidAmount"`
	Interest      decimal.Decimal `json:"interest"`
	Penalty       decimal.Decimal `json:"penalty"`
	Discount      decimal.Decimal `json:"discount"`
	Notes         string          `json:"notes,omitempty"`
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID     string          `json:"paymentID"`
	PayableID     string          `json:"payableID"`
	InstallmentID string          `json:"installmentID,omitempty"`
	PaymentDate   string          `json:"paymentDate"`
	AmountPaid    decimal.Decimal `json:"amountPaid"`
	Method        string          `json:"method"`
	ReceiptPath   string          `json:"receiptPath,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// PayableResponse defines the data returned for a payable.
type PayableResponse struct {
	PayableID     string                `json:"payableID"`
	Description   string                `json:"description"`
	SupplierName  string                `json:"supplierName"`
	SupplierTaxID string                `json:"supplierTaxID,omitempty"`
	ExpenseType   string                `json:"expenseType"`
	Category      string                `json:"category"`
	TotalAmount   decimal.Decimal       `json:"totalAmount"`
	IssueDate     string                `json:"issueDate"`
	DueDate       string                `json:"dueDate"`
	Status        string                `json:"status"`
	IsRecurring   bool                  `json:"isRecurring"`
	Periodicity   string                `json:"periodicity,omitempty"`
	Notes         string                `json:"notes,omitempty"`
	InvoiceID     string                `json:"invoiceID,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
	LastUpdatedAt time.Time             `json:"lastUpdatedAt"`
	Installments  []InstallmentResponse `json:"installments,omitempty"`
	Payments      []PaymentResponse     `json:"payments,omitempty"`
}

// ListPayablesResponse wraps a page of payables with the next-page token.
type ListPayablesResponse struct {
	Payables  []PayableResponse `json:"payables"`
	NextToken string            `json:"nextToken,omitempty"`
}

// SweepResponse reports how many records an overdue sweep transitioned.
type SweepResponse struct {
	Affected int64 `json:"affected"`
}

// ToInstallmentResponse converts a domain.Installment to its response DTO.
func ToInstallmentResponse(inst domain.Installment) InstallmentResponse {
	return InstallmentResponse{
		InstallmentID: inst.InstallmentID,
		PayableID:     inst.PayableID,
		Number:        inst.Number,
		DueDate:       FormatDate(inst.DueDate),
		Amount:        inst.Amount,
		Status:        string(inst.Status),
		PaymentDate:   FormatDatePtr(inst.PaymentDate),
		PaidAmount:    inst.PaidAmount,
		Interest:      inst.Interest,
		Penalty:       inst.Penalty,
		Discount:      inst.Discount,
		Notes:         inst.Notes,
	}
}

// ToPaymentResponse converts a domain.Payment to its response DTO.
func ToPaymentResponse(p domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:     p.PaymentID,
		PayableID:     p.PayableID,
		InstallmentID: p.InstallmentID,
		PaymentDate:   FormatDate(p.PaymentDate),
		AmountPaid:    p.AmountPaid,
		Method:        string(p.Method),
		ReceiptPath:   p.ReceiptPath,
		Notes:         p.Notes,
		CreatedAt:     p.CreatedAt,
	}
}

// ToPayableResponse converts a domain.Payable to its response DTO.
func ToPayableResponse(p *domain.Payable) PayableResponse {
	resp := PayableResponse{
		PayableID:     p.PayableID,
		Description:   p.Description,
		SupplierName:  p.SupplierName,
		SupplierTaxID: p.SupplierTaxID,
		ExpenseType:   string(p.ExpenseType),
		Category:      p.Category,
		TotalAmount:   p.TotalAmount,
		IssueDate:     FormatDate(p.IssueDate),
		DueDate:       FormatDate(p.DueDate),
		Status:        string(p.Status),
		IsRecurring:   p.IsRecurring,
		Periodicity:   string(p.Periodicity),
		Notes:         p.Notes,
		InvoiceID:     p.InvoiceID,
		CreatedAt:     p.CreatedAt,
		LastUpdatedAt: p.LastUpdatedAt,
	}
	for _, inst := range p.Installments {
		resp.Installments = append(resp.Installments, ToInstallmentResponse(inst))
	}
	for _, pay := range p.Payments {
		resp.Payments = append(resp.Payments, ToPaymentResponse(pay))
	}
	return resp
}

// ToListPayablesResponse converts a page of payables to the list DTO.
func ToListPayablesResponse(payables []domain.Payable, nextToken string) ListPayablesResponse {
	res := ListPayablesResponse{
		Payables:  make([]PayableResponse, len(payables)),
		NextToken: nextToken,
	}
	for i := range payables {
		res.Payables[i] = ToPayableResponse(&payables[i])
	}
	return res
}
