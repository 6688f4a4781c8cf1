package report

import "github.com/dvloznov/finance-dashboard/internal/statement"

// IncomeStatement totals income and expenses with a per-category breakdown.
// The breakdown merges income categories as-is with expense categories
// prefixed "expense_" and negated.
type IncomeStatement struct {
	TotalIncome   float64            `json:"total_income"`
	TotalExpenses float64            `json:"total_expenses"`
	NetIncome     float64            `json:"net_income"`
	Breakdown     map[string]float64 `json:"breakdown"`
}

// BalanceSheet is a simplified ratio model over the income statement, not a
// real ledger: assets are 70% of income, liabilities 30% of expenses.
type BalanceSheet struct {
	TotalAssets      float64 `json:"total_assets"`
	TotalLiabilities float64 `json:"total_liabilities"`
	TotalEquity      float64 `json:"total_equity"`
}

// CashFlow derives the three activity lines from the same totals.
type CashFlow struct {
	OperatingActivities float64 `json:"operating_activities"`
	InvestingActivities float64 `json:"investing_activities"`
	FinancingActivities float64 `json:"financing_activities"`
	NetCashFlow         float64 `json:"net_cash_flow"`
}

// Reports bundles the three derived statements with the transactions they
// were computed from. Reports are recomputed in full on every request; there
// is no incremental update.
type Reports struct {
	Transactions    []statement.Transaction `json:"transactions"`
	IncomeStatement IncomeStatement         `json:"income_statement"`
	BalanceSheet    BalanceSheet            `json:"balance_sheet"`
	CashFlow        CashFlow                `json:"cash_flow"`
}

// Aggregate folds a transaction sequence into the three financial
// statements in a single pass. Transactions partition by sign: positive
// amounts accumulate into income categories, negative ones into expense
// categories as absolute values. An empty input produces all-zero totals and
// empty breakdowns, never an error.
func Aggregate(transactions []statement.Transaction) *Reports {
	incomeBreakdown := make(map[string]float64)
	expenseBreakdown := make(map[string]float64)
	for _, t := range transactions {
		if t.Amount > 0 {
			incomeBreakdown[t.Category] += t.Amount
		} else {
			expenseBreakdown[t.Category] += -t.Amount
		}
	}

	var totalIncome, totalExpenses float64
	for _, v := range incomeBreakdown {
		totalIncome += v
	}
	for _, v := range expenseBreakdown {
		totalExpenses += v
	}
	netIncome := totalIncome - totalExpenses

	breakdown := make(map[string]float64, len(incomeBreakdown)+len(expenseBreakdown))
	for k, v := range incomeBreakdown {
		breakdown[k] = v
	}
	for k, v := range expenseBreakdown {
		breakdown["expense_"+k] = -v
	}

	totalAssets := totalIncome * 0.7
	totalLiabilities := totalExpenses * 0.3

	if transactions == nil {
		transactions = []statement.Transaction{}
	}

	return &Reports{
		Transactions: transactions,
		IncomeStatement: IncomeStatement{
			TotalIncome:   totalIncome,
			TotalExpenses: totalExpenses,
			NetIncome:     netIncome,
			Breakdown:     breakdown,
		},
		BalanceSheet: BalanceSheet{
			TotalAssets:      totalAssets,
			TotalLiabilities: totalLiabilities,
			TotalEquity:      totalAssets - totalLiabilities,
		},
		CashFlow: CashFlow{
			OperatingActivities: netIncome,
			InvestingActivities: totalIncome * 0.1,
			FinancingActivities: totalExpenses * 0.1,
			NetCashFlow:         netIncome + totalIncome*0.1 + totalExpenses*0.1,
		},
	}
}
