package mapping

import (
	"github.com/ldmoraes/contas_app/internal/core/domain"
	"github.com/ldmoraes/contas_app/internal/models"
)

// ToModelLedgerEntry converts a domain.LedgerEntry to its DB row representation.
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	m := models.LedgerEntry{
		EntryID:     d.EntryID,
		AccountID:   d.AccountID,
		EntryDate:   d.EntryDate,
		Amount:      d.Amount,
		Description: d.Description,
		DocumentRef: d.DocumentRef,
		CreatedAt:   d.CreatedAt,
	}
	if d.PayableID != "" {
		id := d.PayableID
		m.PayableID = &id
	}
	if d.InvoiceID != "" {
		id := d.InvoiceID
		m.InvoiceID = &id
	}
	return m
}

// ToDomainLedgerEntry converts a ledger_entries row back to the domain representation.
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	d := domain.LedgerEntry{
		EntryID:     m.EntryID,
		AccountID:   m.AccountID,
		EntryDate:   m.EntryDate,
		Amount:      m.Amount,
		Description: m.Description,
		DocumentRef: m.DocumentRef,
		CreatedAt:   m.CreatedAt,
	}
	if m.PayableID != nil {
		d.PayableID = *m.PayableID
	}
	if m.InvoiceID != nil {
		d.InvoiceID = *m.InvoiceID
	}
	return d
}

// ToModelMonthlySnapshot converts a domain.MonthlySnapshot to its DB row representation.
func ToModelMonthlySnapshot(d domain.MonthlySnapshot) models.MonthlySnapshot {
	return models.MonthlySnapshot{
		SnapshotID:             d.SnapshotID,
		Year:                   d.Year,
		Month:                  d.Month,
		GrossRevenue:           d.GrossRevenue,
		RevenueDeductions:      d.RevenueDeductions,
		NetRevenue:             d.NetRevenue,
		CostOfSales:            d.CostOfSales,
		GrossProfit:            d.GrossProfit,
		OperatingExpenses:      d.OperatingExpenses,
		AdministrativeExpenses: d.AdministrativeExpenses,
		SellingExpenses:        d.SellingExpenses,
		OtherRevenue:           d.OtherRevenue,
		OtherExpenses:          d.OtherExpenses,
		FinancialResult:        d.FinancialResult,
		PreTaxProfit:           d.PreTaxProfit,
		TaxProvision:           d.TaxProvision,
		NetProfit:              d.NetProfit,
		AuditFields:            ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainMonthlySnapshot converts a monthly_snapshots row back to the domain representation.
func ToDomainMonthlySnapshot(m models.MonthlySnapshot) domain.MonthlySnapshot {
	return domain.MonthlySnapshot{
		SnapshotID:             m.SnapshotID,
		Year:                   m.Year,
		Month:                  m.Month,
		GrossRevenue:           m.GrossRevenue,
		RevenueDeductions:      m.RevenueDeductions,
		NetRevenue:             m.NetRevenue,
		CostOfSales:            m.CostOfSales,
		GrossProfit:            m.GrossProfit,
		OperatingExpenses:      m.OperatingExpenses,
		AdministrativeExpenses: m.AdministrativeExpenses,
		SellingExpenses:        m.SellingExpenses,
		OtherRevenue:           m.OtherRevenue,
		OtherExpenses:          m.OtherExpenses,
		FinancialResult:        m.FinancialResult,
		PreTaxProfit:           m.PreTaxProfit,
		TaxProvision:           m.TaxProvision,
		NetProfit:              m.NetProfit,
		AuditFields:            ToDomainAuditFields(m.AuditFields),
	}
}
