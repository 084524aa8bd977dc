package mapping

import (
	"github.com/ldmoraes/contas_app/internal/core/domain"
	"github.com/ldmoraes/contas_app/internal/models"
)

// ToModelInvoice converts a domain.Invoice to its DB row representation.
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:      d.InvoiceID,
		Number:         d.Number,
		Series:         d.Series,
		SupplierTaxID:  d.SupplierTaxID,
		SupplierName:   d.SupplierName,
		IssueDate:      d.IssueDate,
		DueDate:        d.DueDate,
		TotalAmount:    d.TotalAmount,
		DiscountAmount: d.DiscountAmount,
		NetAmount:      d.NetAmount,
		AccessKey:      d.AccessKey,
		RawContent:     d.RawContent,
		Status:         models.InvoiceStatus(d.Status),
		Notes:          d.Notes,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts an invoices row back to the domain representation.
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:      m.InvoiceID,
		Number:         m.Number,
		Series:         m.Series,
		SupplierTaxID:  m.SupplierTaxID,
		SupplierName:   m.SupplierName,
		IssueDate:      m.IssueDate,
		DueDate:        m.DueDate,
		TotalAmount:    m.TotalAmount,
		DiscountAmount: m.DiscountAmount,
		NetAmount:      m.NetAmount,
		AccessKey:      m.AccessKey,
		RawContent:     m.RawContent,
		Status:         domain.InvoiceStatus(m.Status),
		Notes:          m.Notes,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelInvoiceLineItem converts a domain line item to its DB row representation.
func ToModelInvoiceLineItem(d domain.InvoiceLineItem) models.InvoiceLineItem {
	return models.InvoiceLineItem{
		LineItemID:  d.LineItemID,
		InvoiceID:   d.InvoiceID,
		ProductCode: d.ProductCode,
		Description: d.Description,
		Quantity:    d.Quantity,
		Unit:        d.Unit,
		UnitPrice:   d.UnitPrice,
		LineTotal:   d.LineTotal,
		NCMCode:     d.NCMCode,
		CFOPCode:    d.CFOPCode,
	}
}

// ToDomainInvoiceLineItem converts an invoice_line_items row back to the domain representation.
func ToDomainInvoiceLineItem(m models.InvoiceLineItem) domain.InvoiceLineItem {
	return domain.InvoiceLineItem{
		LineItemID:  m.LineItemID,
		InvoiceID:   m.InvoiceID,
		ProductCode: m.ProductCode,
		Description: m.Description,
		Quantity:    m.Quantity,
		Unit:        m.Unit,
		UnitPrice:   m.UnitPrice,
		LineTotal:   m.LineTotal,
		NCMCode:     m.NCMCode,
		CFOPCode:    m.CFOPCode,
	}
}

// ToModelInvoiceInstallment converts a domain invoice installment to its DB row representation.
func ToModelInvoiceInstallment(d domain.InvoiceInstallment) models.InvoiceInstallment {
	return models.InvoiceInstallment{
		InstallmentID: d.InstallmentID,
		InvoiceID:     d.InvoiceID,
		Number:        d.Number,
		DueDate:       d.DueDate,
		Amount:        d.Amount,
		Status:        models.InstallmentStatus(d.Status),
		PaymentDate:   d.PaymentDate,
		PaidAmount:    d.PaidAmount,
		Notes:         d.Notes,
	}
}

// ToDomainInvoiceInstallment converts an invoice_installments row back to the domain representation.
func ToDomainInvoiceInstallment(m models.InvoiceInstallment) domain.InvoiceInstallment {
	return domain.InvoiceInstallment{
		InstallmentID: m.InstallmentID,
		InvoiceID:     m.InvoiceID,
		Number:        m.Number,
		DueDate:       m.DueDate,
		Amount:        m.Amount,
		Status:        domain.InstallmentStatus(m.Status),
		PaymentDate:   m.PaymentDate,
		PaidAmount:    m.PaidAmount,
		Notes:         m.Notes,
	}
}
