package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is the row shape of the ledger_entries table.
type LedgerEntry struct {
	EntryID     string          `db:"entry_id"`
	AccountID   string          `db:"account_id"`
	EntryDate   time.Time       `db:"entry_date"`
	Amount      decimal.Decimal `db:"amount"`
	Description string          `db:"description"`
	DocumentRef string          `db:"document_ref"`
	PayableID   *string         `db:"payable_id"` // Nullable FK
	InvoiceID   *string         `db:"invoice_id"` // Nullable FK
	CreatedAt   time.Time       `db:"created_at"`
}

// MonthlySnapshot is the row shape of the monthly_snapshots table.
// (year, month) is unique.
type MonthlySnapshot struct {
	SnapshotID             string          `db:"snapshot_id"`
	Year                   int             `db:"year"`
	Month                  int             `db:"month"`
	GrossRevenue           decimal.Decimal `db:"gross_revenue"`
	RevenueDeductions      decimal.Decimal `db:"revenue_deductions"`
	NetRevenue             decimal.Decimal `db:"net_revenue"`
	CostOfSales            decimal.Decimal `db:"cost_of_sales"`
	GrossProfit            decimal.Decimal `db:"gross_profit"`
	OperatingExpenses      decimal.Decimal `db:"operating_expenses"`
	AdministrativeExpenses decimal.Decimal `db:"administrative_expenses"`
	SellingExpenses        decimal.Decimal `db:"selling_expenses"`
	OtherRevenue           decimal.Decimal `db:"other_revenue"`
	OtherExpenses          decimal.Decimal `db:"other_expenses"`
	FinancialResult        decimal.Decimal `db:"financial_result"`
	PreTaxProfit           decimal.Decimal `db:"pre_tax_profit"`
	TaxProvision           decimal.Decimal `db:"tax_provision"`
	NetProfit              decimal.Decimal `db:"net_profit"`
	AuditFields
}
