package dto

import (
	"time"

	"github.com/ldmoraes/contas_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLedgerEntryRequest defines a DRE posting against a chart account.
type CreateLedgerEntryRequest struct {
	AccountID   string          `json:"accountID" binding:"required,uuid"`
	EntryDate   string          `json:"entryDate" binding:"required,datetime=2006-01-02"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"required,max=500"`
	DocumentRef string          `json:"documentRef" binding:"omitempty,max=100"`
	PayableID   string          `json:"payableID" binding:"omitempty,uuid"`
	InvoiceID   string          `json:"invoiceID" binding:"omitempty,uuid"`
}

// ListLedgerEntriesParams defines query parameters for listing postings.
type ListLedgerEntriesParams struct {
	AccountID string `form:"accountID" binding:"omitempty,uuid"`
	From      string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To        string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Limit     int    `form:"limit,default=50" binding:"omitempty,min=1,max=200"`
	NextToken string `form:"nextToken"`
}

// LedgerEntryResponse defines the data returned for a posting.
type LedgerEntryResponse struct {
	EntryID     string          `json:"entryID"`
	AccountID   string          `json:"accountID"`
	EntryDate   string          `json:"entryDate"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	DocumentRef string          `json:"documentRef,omitempty"`
	PayableID   string          `json:"payableID,omitempty"`
	InvoiceID   string          `json:"invoiceID,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ListLedgerEntriesResponse wraps a page of postings with the next-page token.
type ListLedgerEntriesResponse struct {
	Entries   []LedgerEntryResponse `json:"entries"`
	NextToken string                `json:"nextToken,omitempty"`
}

// MonthlySnapshotResponse defines the data returned for a computed
// income-statement month.
type MonthlySnapshotResponse struct {
	SnapshotID             string          `json:"snapshotID"`
	Year                   int             `json:"year"`
	Month                  int             `json:"month"`
	GrossRevenue           decimal.Decimal `json:"grossRevenue"`
	RevenueDeductions      decimal.Decimal `json:"revenueDeductions"`
	NetRevenue             decimal.Decimal `json:"netRevenue"`
	CostOfSales            decimal.Decimal `json:"costOfSales"`
	GrossProfit            decimal.Decimal `json:"grossProfit"`
	OperatingExpenses      decimal.Decimal `json:"operatingExpenses"`
	AdministrativeExpenses decimal.Decimal `json:"administrativeExpenses"`
	SellingExpenses        decimal.Decimal `json:"sellingExpenses"`
	OtherRevenue           decimal.Decimal `json:"otherRevenue"`
	OtherExpenses          decimal.Decimal `json:"otherExpenses"`
	FinancialResult        decimal.Decimal `json:"financialResult"`
	PreTaxProfit           decimal.Decimal `json:"preTaxProfit"`
	TaxProvision           decimal.Decimal `json:"taxProvision"`
	NetProfit              decimal.Decimal `json:"netProfit"`
	CreatedAt              time.Time       `json:"createdAt"`
	LastUpdatedAt          time.Time       `json:"lastUpdatedAt"`
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to its response DTO.
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		EntryID:     e.EntryID,
		AccountID:   e.AccountID,
		EntryDate:   FormatDate(e.EntryDate),
		Amount:      e.Amount,
		Description: e.Description,
		DocumentRef: e.DocumentRef,
		PayableID:   e.PayableID,
		InvoiceID:   e.InvoiceID,
		CreatedAt:   e.CreatedAt,
	}
}

// ToListLedgerEntriesResponse converts a page of postings to the list DTO.
func ToListLedgerEntriesResponse(entries []domain.LedgerEntry, nextToken string) ListLedgerEntriesResponse {
	res := ListLedgerEntriesResponse{
		Entries:   make([]LedgerEntryResponse, len(entries)),
		NextToken: nextToken,
	}
	for i := range entries {
		res.Entries[i] = ToLedgerEntryResponse(&entries[i])
	}
	return res
}

// ToMonthlySnapshotResponse converts a domain.MonthlySnapshot to its response DTO.
func ToMonthlySnapshotResponse(s *domain.MonthlySnapshot) MonthlySnapshotResponse {
	return MonthlySnapshotResponse{
		SnapshotID:             s.SnapshotID,
		Year:                   s.Year,
		Month:                  s.Month,
		GrossRevenue:           s.GrossRevenue,
		RevenueDeductions:      s.RevenueDeductions,
		NetRevenue:             s.NetRevenue,
		CostOfSales:            s.CostOfSales,
		GrossProfit:            s.GrossProfit,
		OperatingExpenses:      s.OperatingExpenses,
		AdministrativeExpenses: s.AdministrativeExpenses,
		SellingExpenses:        s.SellingExpenses,
		OtherRevenue:           s.OtherRevenue,
		OtherExpenses:          s.OtherExpenses,
		FinancialResult:        s.FinancialResult,
		PreTaxProfit:           s.PreTaxProfit,
		TaxProvision:           s.TaxProvision,
		NetProfit:              s.NetProfit,
		CreatedAt:              s.CreatedAt,
		LastUpdatedAt:          s.LastUpdatedAt,
	}
}

// ToListMonthlySnapshotsResponse converts snapshots to response DTOs.
func ToListMonthlySnapshotsResponse(snapshots []domain.MonthlySnapshot) []MonthlySnapshotResponse {
	res := make([]MonthlySnapshotResponse, len(snapshots))
	for i := range snapshots {
		res[i] = ToMonthlySnapshotResponse(&snapshots[i])
	}
	return res
}
