package dto

import (
	"time"

	"github.com/ldmoraes/contas_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInvoiceLineItemRequest defines one product/service line on invoice creation.
type CreateInvoiceLineItemRequest struct {
	ProductCode string          `json:"productCode" binding:"omitempty,max=50"`
	Description string          `json:"description" binding:"required,max=500"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	Unit        string          `json:"unit" binding:"required,max=10"`
	UnitPrice   decimal.Decimal `json:"unitPrice" binding:"required"`
	LineTotal   decimal.Decimal `json:"lineTotal" binding:"required"`
	NCMCode     string          `json:"ncmCode" binding:"omitempty,max=10"`
	CFOPCode    string          `json:"cfopCode" binding:"omitempty,max=10"`
}

// CreateInvoiceInstallmentRequest defines one scheduled sub-payment on invoice creation.
type CreateInvoiceInstallmentRequest struct {
	Number  int             `json:"number" binding:"required,min=1"`
	DueDate string          `json:"dueDate" binding:"required,datetime=2006-01-02"`
	Amount  decimal.Decimal `json:"amount" binding:"required"`
	Notes   string          `json:"notes"`
}

// CreateInvoiceRequest defines the data needed to register a fiscal document.
type CreateInvoiceRequest struct {
	Number         string                            `json:"number" binding:"required,max=50"`
	Series         string                            `json:"series" binding:"required,max=10"`
	SupplierTaxID  string                            `json:"supplierTaxID" binding:"required,cnpj"`
	SupplierName   string                            `json:"supplierName" binding:"required,max=200"`
	IssueDate      string                            `json:"issueDate" binding:"required,datetime=2006-01-02"`
	DueDate        string                            `json:"dueDate" binding:"omitempty,datetime=2006-01-02"`
	TotalAmount    decimal.Decimal                   `json:"totalAmount" binding:"required"`
	DiscountAmount decimal.Decimal                   `json:"discountAmount"`
	AccessKey      string                            `json:"accessKey" binding:"omitempty,len=44"`
	RawContent     string                            `json:"rawContent"`
	Notes          string                            `json:"notes"`
	LineItems      []CreateInvoiceLineItemRequest    `json:"lineItems" binding:"omitempty,dive"`
	Installments   []CreateInvoiceInstallmentRequest `json:"installments" binding:"omitempty,dive"`
}

// UpdateInvoiceRequest defines the partial change set for an invoice.
type UpdateInvoiceRequest struct {
	Series         *string          `json:"series" binding:"omitempty,max=10"`
	SupplierName   *string          `json:"supplierName" binding:"omitempty,max=200"`
	DueDate        *string          `json:"dueDate" binding:"omitempty,datetime=2006-01-02"`
	TotalAmount    *decimal.Decimal `json:"totalAmount"`
	DiscountAmount *decimal.Decimal `json:"discountAmount"`
	Status         *string          `json:"status" binding:"omitempty,oneof=PENDING PAID OVERDUE"`
	Notes          *string          `json:"notes"`
}

// ListInvoicesParams defines query parameters for listing invoices.
type ListInvoicesParams struct {
	Status        string `form:"status" binding:"omitempty,oneof=PENDING PAID OVERDUE"`
	SupplierTaxID string `form:"supplierTaxID" binding:"omitempty,cnpj"`
	IssuedAfter   string `form:"issuedAfter" binding:"omitempty,datetime=2006-01-02"`
	IssuedBefore  string `form:"issuedBefore" binding:"omitempty,datetime=2006-01-02"`
	Limit         int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken     string `form:"nextToken"`
}

// InvoiceLineItemResponse defines the data returned for a line item.
type InvoiceLineItemResponse struct {
	LineItemID  string          `json:"lineItemID"`
	InvoiceID   string          `json:"invoiceID"`
	ProductCode string          `json:"productCode,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
	NCMCode     string          `json:"ncmCode,omitempty"`
	CFOPCode    string          `json:"cfopCode,omitempty"`
}

// InvoiceInstallmentResponse defines the data returned for an invoice installment.
type InvoiceInstallmentResponse struct {
	InstallmentID string          `json:"installmentID"`
	InvoiceID     string          `json:"invoiceID"`
	Number        int             `json:"number"`
	DueDate       string          `json:"dueDate"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	PaymentDate   string          `json:"paymentDate,omitempty"`
	PaidAmount    decimal.Decimal `json:"paidAmount"`
	Notes         string          `json:"notes,omitempty"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID      string                       `json:"invoiceID"`
	Number         string                       `json:"number"`
	Series         string                       `json:"series"`
	SupplierTaxID  string                       `json:"supplierTaxID"`
	SupplierName   string                       `json:"supplierName"`
	IssueDate      string                       `json:"issueDate"`
	DueDate        string                       `json:"dueDate,omitempty"`
	TotalAmount    decimal.Decimal              `json:"totalAmount"`
	DiscountAmount decimal.Decimal              `json:"discountAmount"`
	NetAmount      decimal.Decimal              `json:"netAmount"`
	AccessKey      string                       `json:"accessKey,omitempty"`
	Status         string                       `json:"status"`
	Notes          string                       `json:"notes,omitempty"`
	CreatedAt      time.Time                    `json:"createdAt"`
	LastUpdatedAt  time.Time                    `json:"lastUpdatedAt"`
	LineItems      []InvoiceLineItemResponse    `json:"lineItems,omitempty"`
	Installments   []InvoiceInstallmentResponse `json:"installments,omitempty"`
}

// ListInvoicesResponse wraps a page of invoices with the next-page token.
type ListInvoicesResponse struct {
	Invoices  []InvoiceResponse `json:"invoices"`
	NextToken string            `json:"nextToken,omitempty"`
}

// ToInvoiceLineItemResponse converts a domain line item to its response DTO.
func ToInvoiceLineItemResponse(li domain.InvoiceLineItem) InvoiceLineItemResponse {
	return InvoiceLineItemResponse{
		LineItemID:  li.LineItemID,
		InvoiceID:   li.InvoiceID,
		ProductCode: li.ProductCode,
		Description: li.Description,
		Quantity:    li.Quantity,
		Unit:        li.Unit,
		UnitPrice:   li.UnitPrice,
		LineTotal:   li.LineTotal,
		NCMCode:     li.NCMCode,
		CFOPCode:    li.CFOPCode,
	}
}

// ToInvoiceInstallmentResponse converts a domain invoice installment to its response DTO.
func ToInvoiceInstallmentResponse(inst domain.InvoiceInstallment) InvoiceInstallmentResponse {
	return InvoiceInstallmentResponse{
		InstallmentID: inst.InstallmentID,
		InvoiceID:     inst.InvoiceID,
		Number:        inst.Number,
		DueDate:       FormatDate(inst.DueDate),
		Amount:        inst.Amount,
		Status:        string(inst.Status),
		PaymentDate:   FormatDatePtr(inst.PaymentDate),
		PaidAmount:    inst.PaidAmount,
		Notes:         inst.Notes,
	}
}

// ToInvoiceResponse converts a domain.Invoice to its response DTO.
// RawContent is deliberately omitted from responses; it can be large.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	resp := InvoiceResponse{
		InvoiceID:      inv.InvoiceID,
		Number:         inv.Number,
		Series:         inv.Series,
		SupplierTaxID:  inv.SupplierTaxID,
		SupplierName:   inv.SupplierName,
		IssueDate:      FormatDate(inv.IssueDate),
		DueDate:        FormatDatePtr(inv.DueDate),
		TotalAmount:    inv.TotalAmount,
		DiscountAmount: inv.DiscountAmount,
		NetAmount:      inv.NetAmount,
		AccessKey:      inv.AccessKey,
		Status:         string(inv.Status),
		Notes:          inv.Notes,
		CreatedAt:      inv.CreatedAt,
		LastUpdatedAt:  inv.LastUpdatedAt,
	}
	for _, li := range inv.LineItems {
		resp.LineItems = append(resp.LineItems, ToInvoiceLineItemResponse(li))
	}
	for _, inst := range inv.Installments {
		resp.Installments = append(resp.Installments, ToInvoiceInstallmentResponse(inst))
	}
	return resp
}

// ToListInvoicesResponse converts a page of invoices to the list DTO.
func ToListInvoicesResponse(invoices []domain.Invoice, nextToken string) ListInvoicesResponse {
	res := ListInvoicesResponse{
		Invoices:  make([]InvoiceResponse, len(invoices)),
		NextToken: nextToken,
	}
	for i := range invoices {
		res.Invoices[i] = ToInvoiceResponse(&invoices[i])
	}
	return res
}
