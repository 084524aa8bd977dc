package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ldmoraes/contas_app/internal/apperrors"
	"github.com/ldmoraes/contas_app/internal/core/domain"
	portsrepo "github.com/ldmoraes/contas_app/internal/core/ports/repositories"
	portssvc "github.com/ldmoraes/contas_app/internal/core/ports/services"
	"github.com/ldmoraes/contas_app/internal/dto"
	"github.com/ldmoraes/contas_app/internal/utils/accounting"
)

// invoiceService manages supplier fiscal documents.
type invoiceService struct {
	BaseService
	invoiceRepo portsrepo.InvoiceRepositoryFacade
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(invoiceRepo portsrepo.InvoiceRepositoryFacade) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
	}
}

// Ensure invoiceService implements the portssvc.InvoiceSvcFacade interface
var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// CreateInvoice validates and persists a new fiscal document with its line
// items and installment schedule. The net amount is total minus discount;
// line totals and installment sums are checked against it.
func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*domain.Invoice, error) {
	if !req.TotalAmount.IsPositive() {
		return nil, fmt.Errorf("%w: total amount must be positive", apperrors.ErrValidation)
	}
	if req.DiscountAmount.IsNegative() {
		return nil, fmt.Errorf("%w: discount amount cannot be negative", apperrors.ErrValidation)
	}
	if req.DiscountAmount.GreaterThan(req.TotalAmount) {
		return nil, fmt.Errorf("%w: discount exceeds total amount", apperrors.ErrValidation)
	}
	issueDate, err := dto.ParseDate(req.IssueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid issue date", apperrors.ErrValidation)
	}
	var dueDate *time.Time
	if req.DueDate != "" {
		d, err := dto.ParseDate(req.DueDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid due date", apperrors.ErrValidation)
		}
		if d.Before(issueDate) {
			return nil, fmt.Errorf("%w: due date precedes issue date", apperrors.ErrValidation)
		}
		dueDate = &d
	}

	netAmount := req.TotalAmount.Sub(req.DiscountAmount)
	now := time.Now().UTC()
	invoice := domain.Invoice{
		InvoiceID:      uuid.NewString(),
		Number:         req.Number,
		Series:         req.Series,
		SupplierTaxID:  req.SupplierTaxID,
		SupplierName:   req.SupplierName,
		IssueDate:      issueDate,
		DueDate:        dueDate,
		TotalAmount:    req.TotalAmount,
		DiscountAmount: req.DiscountAmount,
		NetAmount:      netAmount,
		AccessKey:      req.AccessKey,
		RawContent:     req.RawContent,
		Status:         domain.InvoicePending,
		Notes:          req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	lineItems, err := s.buildLineItems(invoice, req.LineItems)
	if err != nil {
		return nil, err
	}
	installments, err := s.buildInvoiceInstallments(invoice, req.Installments)
	if err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.SaveInvoice(ctx, invoice, lineItems, installments); err != nil {
		s.LogError(ctx, err, "failed to save invoice", slog.String("invoice_number", invoice.Number))
		return nil, err
	}
	invoice.LineItems = lineItems
	invoice.Installments = installments

	s.LogInfo(ctx, "invoice registered",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("invoice_number", invoice.Number),
		slog.String("net", invoice.NetAmount.String()))
	return &invoice, nil
}

func (s *invoiceService) buildLineItems(invoice domain.Invoice, reqs []dto.CreateInvoiceLineItemRequest) ([]domain.InvoiceLineItem, error) {
	if len(reqs) == 0 {
		return nil, nil
	}
	lineItems := make([]domain.InvoiceLineItem, len(reqs))
	sum := decimal.Zero
	for i, li := range reqs {
		if !li.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: line %d quantity must be positive", apperrors.ErrValidation, i+1)
		}
		if li.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: line %d unit price cannot be negative", apperrors.ErrValidation, i+1)
		}
		if err := accounting.ValidateLineTotal(li.Quantity, li.UnitPrice, li.LineTotal); err != nil {
			return nil, fmt.Errorf("%w: line %d: %s", apperrors.ErrValidation, i+1, err.Error())
		}
		lineItems[i] = domain.InvoiceLineItem{
			LineItemID:  uuid.NewString(),
			InvoiceID:   invoice.InvoiceID,
			ProductCode: li.ProductCode,
			Description: li.Description,
			Quantity:    li.Quantity,
			Unit:        li.Unit,
			UnitPrice:   li.UnitPrice,
			LineTotal:   li.LineTotal,
			NCMCode:     li.NCMCode,
			CFOPCode:    li.CFOPCode,
		}
		sum = sum.Add(li.LineTotal)
	}
	if sum.Sub(invoice.TotalAmount).Abs().GreaterThan(accounting.RoundingTolerance) {
		return nil, fmt.Errorf("%w: line totals sum to %s but invoice total is %s",
			apperrors.ErrValidation, sum.String(), invoice.TotalAmount.String())
	}
	return lineItems, nil
}

func (s *invoiceService) buildInvoiceInstallments(invoice domain.Invoice, reqs []dto.CreateInvoiceInstallmentRequest) ([]domain.InvoiceInstallment, error) {
	if len(reqs) == 0 {
		return nil, nil
	}
	installments := make([]domain.InvoiceInstallment, len(reqs))
	seen := make(map[int]bool, len(reqs))
	sum := decimal.Zero
	for i, in := range reqs {
		if seen[in.Number] {
			return nil, fmt.Errorf("%w: duplicate installment number %d", apperrors.ErrValidation, in.Number)
		}
		seen[in.Number] = true
		if !in.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: installment %d amount must be positive", apperrors.ErrValidation, in.Number)
		}
		instDueDate, err := dto.ParseDate(in.DueDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid due date on installment %d", apperrors.ErrValidation, in.Number)
		}
		installments[i] = domain.InvoiceInstallment{
			InstallmentID: uuid.NewString(),
			InvoiceID:     invoice.InvoiceID,
			Number:        in.Number,
			DueDate:       instDueDate,
			Amount:        in.Amount,
			Status:        domain.InstallmentPending,
			Notes:         in.Notes,
		}
		sum = sum.Add(in.Amount)
	}
	if sum.Sub(invoice.NetAmount).Abs().GreaterThan(accounting.RoundingTolerance) {
		return nil, fmt.Errorf("%w: installment amounts sum to %s but invoice net amount is %s",
			apperrors.ErrValidation, sum.String(), invoice.NetAmount.String())
	}
	return installments, nil
}

// GetInvoiceByID retrieves an invoice with its line items and installments.
func (s *invoiceService) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
}

// ListInvoices retrieves a page of invoices matching the filter.
func (s *invoiceService) ListInvoices(ctx context.Context, filter portsrepo.InvoiceFilter) ([]domain.Invoice, string, error) {
	return s.invoiceRepo.ListInvoices(ctx, filter)
}

// UpdateInvoice applies a partial change set to an existing invoice,
// recomputing the net amount when the monetary fields change.
func (s *invoiceService) UpdateInvoice(ctx context.Context, invoiceID string, req dto.UpdateInvoiceRequest) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if req.Series != nil {
		invoice.Series = *req.Series
	}
	if req.SupplierName != nil {
		invoice.SupplierName = *req.SupplierName
	}
	if req.DueDate != nil {
		d, err := dto.ParseDate(*req.DueDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid due date", apperrors.ErrValidation)
		}
		invoice.DueDate = &d
	}
	if req.TotalAmount != nil {
		if !req.TotalAmount.IsPositive() {
			return nil, fmt.Errorf("%w: total amount must be positive", apperrors.ErrValidation)
		}
		invoice.TotalAmount = *req.TotalAmount
	}
	if req.DiscountAmount != nil {
		if req.DiscountAmount.IsNegative() {
			return nil, fmt.Errorf("%w: discount amount cannot be negative", apperrors.ErrValidation)
		}
		invoice.DiscountAmount = *req.DiscountAmount
	}
	if invoice.DiscountAmount.GreaterThan(invoice.TotalAmount) {
		return nil, fmt.Errorf("%w: discount exceeds total amount", apperrors.ErrValidation)
	}
	invoice.NetAmount = invoice.TotalAmount.Sub(invoice.DiscountAmount)
	if req.Status != nil {
		status := domain.InvoiceStatus(*req.Status)
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: invalid status %q", apperrors.ErrValidation, *req.Status)
		}
		invoice.Status = status
	}
	if req.Notes != nil {
		invoice.Notes = *req.Notes
	}

	invoice.LastUpdatedAt = time.Now().UTC()
	if err := s.invoiceRepo.UpdateInvoice(ctx, *invoice); err != nil {
		s.LogError(ctx, err, "failed to update invoice", slog.String("invoice_id", invoiceID))
		return nil, err
	}
	return invoice, nil
}

// DeleteInvoice removes an invoice with its line items and installments.
// Payables referencing the invoice block the deletion.
func (s *invoiceService) DeleteInvoice(ctx context.Context, invoiceID string) error {
	if err := s.invoiceRepo.DeleteInvoice(ctx, invoiceID); err != nil {
		return err
	}
	s.LogInfo(ctx, "invoice deleted", slog.String("invoice_id", invoiceID))
	return nil
}

// SweepOverdueInvoices transitions pending invoices and invoice installments
// whose due date has passed into overdue.
func (s *invoiceService) SweepOverdueInvoices(ctx context.Context, asOf time.Time) (int64, error) {
	affected, err := s.invoiceRepo.MarkOverdueInvoices(ctx, asOf, time.Now().UTC())
	if err != nil {
		s.LogError(ctx, err, "failed to sweep overdue invoices")
		return 0, err
	}
	if affected > 0 {
		s.LogInfo(ctx, "overdue invoice sweep finished", slog.Int64("invoices_affected", affected))
	}
	return affected, nil
}
