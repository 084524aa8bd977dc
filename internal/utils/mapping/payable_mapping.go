package mapping

import (
	"github.com/ldmoraes/contas_app/internal/core/domain"
	"github.com/ldmoraes/contas_app/internal/models"
)

// ToModelPayable converts a domain.Payable to its DB row representation.
// Owned collections are persisted separately and not carried here.
func ToModelPayable(d domain.Payable) models.Payable {
	m := models.Payable{
		PayableID:     d.PayableID,
		Description:   d.Description,
		SupplierName:  d.SupplierName,
		SupplierTaxID: d.SupplierTaxID,
		ExpenseType:   models.ExpenseType(d.ExpenseType),
		Category:      d.Category,
		TotalAmount:   d.TotalAmount,
		IssueDate:     d.IssueDate,
		DueDate:       d.DueDate,
		Status:        models.PayableStatus(d.Status),
		IsRecurring:   d.IsRecurring,
		Notes:         d.Notes,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
	if d.Periodicity != "" {
		p := string(d.Periodicity)
		m.Periodicity = &p
	}
	if d.InvoiceID != "" {
		id := d.InvoiceID
		m.InvoiceID = &id
	}
	return m
}

// ToDomainPayable converts a payables row back to the domain representation.
func ToDomainPayable(m models.Payable) domain.Payable {
	d := domain.Payable{
		PayableID:     m.PayableID,
		Description:   m.Description,
		SupplierName:  m.SupplierName,
		SupplierTaxID: m.SupplierTaxID,
		ExpenseType:   domain.ExpenseType(m.ExpenseType),
		Category:      m.Category,
		TotalAmount:   m.TotalAmount,
		IssueDate:     m.IssueDate,
		DueDate:       m.DueDate,
		Status:        domain.PayableStatus(m.Status),
		IsRecurring:   m.IsRecurring,
		Notes:         m.Notes,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
	if m.Periodicity != nil {
		d.Periodicity = domain.Periodicity(*m.Periodicity)
	}
	if m.InvoiceID != nil {
		d.InvoiceID = *m.InvoiceID
	}
	return d
}

// ToModelInstallment converts a domain.Installment to its DB row representation.
func ToModelInstallment(d domain.Installment) models.Installment {
	return models.Installment{
		InstallmentID: d.InstallmentID,
		PayableID:     d.PayableID,
		Number:        d.Number,
		DueDate:       d.DueDate,
		Amount:        d.Amount,
		Status:        models.InstallmentStatus(d.Status),
		PaymentDate:   d.PaymentDate,
		PaidAmount:    d.PaidAmount,
		Interest:      d.Interest,
		Penalty:       d.Penalty,
		Discount:      d.Discount,
		Notes:         d.Notes,
	}
}

// ToDomainInstallment converts an installments row back to the domain representation.
func ToDomainInstallment(m models.Installment) domain.Installment {
	return domain.Installment{
		InstallmentID: m.InstallmentID,
		PayableID:     m.PayableID,
		Number:        m.Number,
		DueDate:       m.DueDate,
		Amount:        m.Amount,
		Status:        domain.InstallmentStatus(m.Status),
		PaymentDate:   m.PaymentDate,
		PaidAmount:    m.PaidAmount,
		Interest:      m.Interest,
		Penalty:       m.Penalty,
		Discount:      m.Discount,
		Notes:         m.Notes,
	}
}

// ToModelPayment converts a domain.Payment to its DB row representation.
func ToModelPayment(d domain.Payment) models.Payment {
	m := models.Payment{
		PaymentID:   d.PaymentID,
		PayableID:   d.PayableID,
		PaymentDate: d.PaymentDate,
		AmountPaid:  d.AmountPaid,
		Method:      models.PaymentMethod(d.Method),
		ReceiptPath: d.ReceiptPath,
		Notes:       d.Notes,
		CreatedAt:   d.CreatedAt,
	}
	if d.InstallmentID != "" {
		id := d.InstallmentID
		m.InstallmentID = &id
	}
	return m
}

// ToDomainPayment converts a payments row back to the domain representation.
func ToDomainPayment(m models.Payment) domain.Payment {
	d := domain.Payment{
		PaymentID:   m.PaymentID,
		PayableID:   m.PayableID,
		PaymentDate: m.PaymentDate,
		AmountPaid:  m.AmountPaid,
		Method:      domain.PaymentMethod(m.Method),
		ReceiptPath: m.ReceiptPath,
		Notes:       m.Notes,
		CreatedAt:   m.CreatedAt,
	}
	if m.InstallmentID != nil {
		d.InstallmentID = *m.InstallmentID
	}
	return d
}
