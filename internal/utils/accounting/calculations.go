package accounting

import (
	"fmt"

	"github.com/ldmoraes/contas_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RoundingTolerance is the maximum acceptable difference between a declared
// total and the sum of its parts (one cent).
var RoundingTolerance = decimal.NewFromFloat(0.01)

// SumInstallments returns the sum of all installment amounts.
func SumInstallments(installments []domain.Installment) decimal.Decimal {
	sum := decimal.Zero
	for _, inst := range installments {
		sum = sum.Add(inst.Amount)
	}
	return sum
}

// ValidateInstallmentSum checks that the installment amounts add up to the
// payable total within the rounding tolerance.
func ValidateInstallmentSum(total decimal.Decimal, installments []domain.Installment) error {
	if len(installments) == 0 {
		return nil
	}
	sum := SumInstallments(installments)
	if sum.Sub(total).Abs().GreaterThan(RoundingTolerance) {
		return fmt.Errorf("installment amounts sum to %s but payable total is %s", sum.String(), total.String())
	}
	return nil
}

// ValidateLineTotal checks that a line total equals quantity * unit price
// within the rounding tolerance.
func ValidateLineTotal(quantity, unitPrice, lineTotal decimal.Decimal) error {
	expected := quantity.Mul(unitPrice).Round(2)
	if lineTotal.Sub(expected).Abs().GreaterThan(RoundingTolerance) {
		return fmt.Errorf("line total %s does not match quantity %s * unit price %s (expected %s)",
			lineTotal.String(), quantity.String(), unitPrice.String(), expected.String())
	}
	return nil
}

// SplitAmount divides a total into n parts of two decimal places, assigning
// any leftover cents to the first part so the parts always sum to the total.
func SplitAmount(total decimal.Decimal, n int) ([]decimal.Decimal, error) {
	if n <= 0 {
		return nil, fmt.Errorf("installment count must be positive, got %d", n)
	}
	base := total.Div(decimal.NewFromInt(int64(n))).RoundDown(2)
	parts := make([]decimal.Decimal, n)
	for i := range parts {
		parts[i] = base
	}
	remainder := total.Sub(base.Mul(decimal.NewFromInt(int64(n))))
	parts[0] = parts[0].Add(remainder)
	return parts, nil
}

// DeriveSnapshot computes the derived income-statement lines from the summed
// ledger totals per chart-account group for one month.
func DeriveSnapshot(totals domain.GroupTotals) domain.MonthlySnapshot {
	s := domain.MonthlySnapshot{
		GrossRevenue:           totals.Get(domain.GroupGrossRevenue),
		RevenueDeductions:      totals.Get(domain.GroupRevenueDeductions),
		CostOfSales:            totals.Get(domain.GroupCostOfSales),
		OperatingExpenses:      totals.Get(domain.GroupOperatingExpenses),
		AdministrativeExpenses: totals.Get(domain.GroupAdministrativeExpenses),
		SellingExpenses:        totals.Get(domain.GroupSellingExpenses),
		OtherRevenue:           totals.Get(domain.GroupOtherRevenue),
		OtherExpenses:          totals.Get(domain.GroupOtherExpenses),
		FinancialResult:        totals.Get(domain.GroupFinancialResult),
		TaxProvision:           totals.Get(domain.GroupTaxProvision),
	}
	s.NetRevenue = s.GrossRevenue.Sub(s.RevenueDeductions)
	s.GrossProfit = s.NetRevenue.Sub(s.CostOfSales)
	s.PreTaxProfit = s.GrossProfit.
		Sub(s.OperatingExpenses).
		Sub(s.AdministrativeExpenses).
		Sub(s.SellingExpenses).
		Add(s.OtherRevenue).
		Sub(s.OtherExpenses).
		Add(s.FinancialResult)
	s.NetProfit = s.PreTaxProfit.Sub(s.TaxProvision)
	return s
}
