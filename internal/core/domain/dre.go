package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is a posted amount against a chart account for a given date.
// Optional links point back to the payable or invoice that originated it.
type LedgerEntry struct {
	EntryID     string          `json:"entryID"`   // Primary Key (UUID)
	AccountID   string          `json:"accountID"` // FK -> chart_accounts (Not Null)
	EntryDate   time.Time       `json:"entryDate"` // Calendar date
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	DocumentRef string          `json:"documentRef,omitempty"` // Invoice number, receipt, ...
	PayableID   string          `json:"payableID,omitempty"`   // Nullable FK -> payables
	InvoiceID   string          `json:"invoiceID,omitempty"`   // Nullable FK -> invoices
	CreatedAt   time.Time       `json:"createdAt"`
}

// MonthlySnapshot is one computed income-statement row per (year, month).
// The pair is unique; recomputation upserts in place.
type MonthlySnapshot struct {
	SnapshotID             string          `json:"snapshotID"` // Primary Key (UUID)
	Year                   int             `json:"year"`
	Month                  int             `json:"month"` // 1-12
	GrossRevenue           decimal.Decimal `json:"grossRevenue"`
	RevenueDeductions      decimal.Decimal `json:"revenueDeductions"`
	NetRevenue             decimal.Decimal `json:"netRevenue"` // Gross - deductions
	CostOfSales            decimal.Decimal `json:"costOfSales"`
	GrossProfit            decimal.Decimal `json:"grossProfit"` // Net revenue - cost of sales
	OperatingExpenses      decimal.Decimal `json:"operatingExpenses"`
	AdministrativeExpenses decimal.Decimal `json:"administrativeExpenses"`
	SellingExpenses        decimal.Decimal `json:"sellingExpenses"`
	OtherRevenue           decimal.Decimal `json:"otherRevenue"`
	OtherExpenses          decimal.Decimal `json:"otherExpenses"`
	FinancialResult        decimal.Decimal `json:"financialResult"`
	PreTaxProfit           decimal.Decimal `json:"preTaxProfit"`
	TaxProvision           decimal.Decimal `json:"taxProvision"`
	NetProfit              decimal.Decimal `json:"netProfit"`
	AuditFields
}

// GroupTotals maps each chart-account group to the summed ledger amounts for a
// period. Missing groups mean zero postings.
type GroupTotals map[AccountGroup]decimal.Decimal

// Get returns the total for a group, zero when absent.
func (t GroupTotals) Get(g AccountGroup) decimal.Decimal {
	if v, ok := t[g]; ok {
		return v
	}
	return decimal.Zero
}
