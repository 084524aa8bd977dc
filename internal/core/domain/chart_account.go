package domain

import "time"

// AccountType defines the income-statement nature of a chart account.
type AccountType string

const (
	Revenue AccountType = "REVENUE"
	Cost    AccountType = "COST"
	Expense AccountType = "EXPENSE"
)

// IsValid reports whether the type belongs to the fixed vocabulary.
func (t AccountType) IsValid() bool {
	switch t {
	case Revenue, Cost, Expense:
		return true
	}
	return false
}

// AccountGroup places a chart account on a specific income-statement line.
type AccountGroup string

const (
	GroupGrossRevenue           AccountGroup = "GROSS_REVENUE"
	GroupRevenueDeductions      AccountGroup = "REVENUE_DEDUCTIONS"
	GroupCostOfSales            AccountGroup = "COST_OF_SALES"
	GroupOperatingExpenses      AccountGroup = "OPERATING_EXPENSES"
	GroupAdministrativeExpenses AccountGroup = "ADMINISTRATIVE_EXPENSES"
	GroupSellingExpenses        AccountGroup = "SELLING_EXPENSES"
	GroupOtherRevenue           AccountGroup = "OTHER_REVENUE"
	GroupOtherExpenses          AccountGroup = "OTHER_EXPENSES"
	GroupFinancialResult        AccountGroup = "FINANCIAL_RESULT"
	GroupTaxProvision           AccountGroup = "TAX_PROVISION"
)

// IsValid reports whether the group belongs to the fixed vocabulary.
func (g AccountGroup) IsValid() bool {
	switch g {
	case GroupGrossRevenue, GroupRevenueDeductions, GroupCostOfSales,
		GroupOperatingExpenses, GroupAdministrativeExpenses, GroupSellingExpenses,
		GroupOtherRevenue, GroupOtherExpenses, GroupFinancialResult, GroupTaxProvision:
		return true
	}
	return false
}

// ChartAccount is a named line in the chart of accounts used for DRE postings.
// Code is unique across the store.
type ChartAccount struct {
	AccountID string       `json:"accountID"` // Primary Key (UUID)
	Code      string       `json:"code"`      // Unique
	Name      string       `json:"name"`
	Type      AccountType  `json:"type"`
	Group     AccountGroup `json:"group"`
	Subgroup  string       `json:"subgroup,omitempty"`
	IsActive  bool         `json:"isActive"`
	CreatedAt time.Time    `json:"createdAt"`
}
