package report

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// transactionHeader is the column order of the CSV and Excel renderings.
var transactionHeader = []string{"date", "description", "amount", "category", "type"}

// TransactionsCSV renders the transactions as delimited text, one row per
// transaction in report order.
func TransactionsCSV(r *Reports) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	_ = w.Write(transactionHeader)
	for _, t := range r.Transactions {
		_ = w.Write([]string{
			t.Date,
			t.Description,
			strconv.FormatFloat(t.Amount, 'f', -1, 64),
			t.Category,
			t.Type,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("TransactionsCSV: %w", err)
	}
	return buf.Bytes(), nil
}

// ExcelWorkbook renders the reports as a workbook with a Transactions sheet
// and an Income Statement sheet holding the merged category breakdown.
func ExcelWorkbook(r *Reports) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const txSheet = "Transactions"
	if err := f.SetSheetName("Sheet1", txSheet); err != nil {
		return nil, fmt.Errorf("ExcelWorkbook: %w", err)
	}
	for i, h := range transactionHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(txSheet, cell, h)
	}
	for i, t := range r.Transactions {
		row := i + 2
		_ = f.SetCellValue(txSheet, fmt.Sprintf("A%d", row), t.Date)
		_ = f.SetCellValue(txSheet, fmt.Sprintf("B%d", row), t.Description)
		_ = f.SetCellValue(txSheet, fmt.Sprintf("C%d", row), t.Amount)
		_ = f.SetCellValue(txSheet, fmt.Sprintf("D%d", row), t.Category)
		_ = f.SetCellValue(txSheet, fmt.Sprintf("E%d", row), t.Type)
	}

	const incomeSheet = "Income Statement"
	if _, err := f.NewSheet(incomeSheet); err != nil {
		return nil, fmt.Errorf("ExcelWorkbook: %w", err)
	}
	_ = f.SetCellValue(incomeSheet, "A1", "Category")
	_ = f.SetCellValue(incomeSheet, "B1", "Amount")

	// Map iteration order is random; sort so the workbook is reproducible.
	categories := make([]string, 0, len(r.IncomeStatement.Breakdown))
	for k := range r.IncomeStatement.Breakdown {
		categories = append(categories, k)
	}
	sort.Strings(categories)
	for i, cat := range categories {
		row := i + 2
		_ = f.SetCellValue(incomeSheet, fmt.Sprintf("A%d", row), cat)
		_ = f.SetCellValue(incomeSheet, fmt.Sprintf("B%d", row), r.IncomeStatement.Breakdown[cat])
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("ExcelWorkbook: %w", err)
	}
	return buf.Bytes(), nil
}

// SummaryText renders the human-readable summary of the three statements.
func SummaryText(r *Reports, now time.Time) string {
	var b strings.Builder

	b.WriteString("FINANCIAL REPORTS SUMMARY\n")
	fmt.Fprintf(&b, "Generated on: %s\n\n", now.Format("2006-01-02 15:04:05"))

	b.WriteString("INCOME STATEMENT\n================\n")
	fmt.Fprintf(&b, "Total Income: %s\n", formatCurrency(r.IncomeStatement.TotalIncome))
	fmt.Fprintf(&b, "Total Expenses: %s\n", formatCurrency(r.IncomeStatement.TotalExpenses))
	fmt.Fprintf(&b, "Net Income: %s\n\n", formatCurrency(r.IncomeStatement.NetIncome))

	b.WriteString("BALANCE SHEET\n=============\n")
	fmt.Fprintf(&b, "Total Assets: %s\n", formatCurrency(r.BalanceSheet.TotalAssets))
	fmt.Fprintf(&b, "Total Liabilities: %s\n", formatCurrency(r.BalanceSheet.TotalLiabilities))
	fmt.Fprintf(&b, "Total Equity: %s\n\n", formatCurrency(r.BalanceSheet.TotalEquity))

	b.WriteString("CASH FLOW STATEMENT\n===================\n")
	fmt.Fprintf(&b, "Net Cash Flow: %s\n\n", formatCurrency(r.CashFlow.NetCashFlow))

	b.WriteString("TRANSACTION SUMMARY\n===================\n")
	fmt.Fprintf(&b, "Total Transactions: %d\n", len(r.Transactions))

	return b.String()
}

// formatCurrency renders a dollar amount with comma grouping and two
// decimals, e.g. $1,234.50.
func formatCurrency(v float64) string {
	s := strconv.FormatFloat(math.Abs(v), 'f', 2, 64)
	dot := strings.IndexByte(s, '.')
	intPart, frac := s[:dot], s[dot:]

	var grouped []byte
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, intPart[i])
	}

	sign := ""
	if v < 0 {
		sign = "-"
	}
	return "$" + sign + string(grouped) + frac
}

// Bundle packages the pretty-printed JSON, transactions CSV, summary text
// and Excel workbook into a single ZIP archive.
func Bundle(r *Reports, now time.Time) ([]byte, error) {
	jsonData, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("Bundle: %w", err)
	}
	csvData, err := TransactionsCSV(r)
	if err != nil {
		return nil, fmt.Errorf("Bundle: %w", err)
	}
	xlsxData, err := ExcelWorkbook(r)
	if err != nil {
		return nil, fmt.Errorf("Bundle: %w", err)
	}

	entries := []struct {
		name string
		data []byte
	}{
		{"financial_data.json", jsonData},
		{"transactions.csv", csvData},
		{"financial_summary.txt", []byte(SummaryText(r, now))},
		{"financial_reports.xlsx", xlsxData},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		if err != nil {
			return nil, fmt.Errorf("Bundle: %s: %w", e.name, err)
		}
		if _, err := w.Write(e.data); err != nil {
			return nil, fmt.Errorf("Bundle: %s: %w", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("Bundle: %w", err)
	}
	return buf.Bytes(), nil
}

// BundleFilename is the timestamped download name for the report bundle.
func BundleFilename(now time.Time) string {
	return fmt.Sprintf("financial_reports_%s.zip", now.Format("20060102_150405"))
}
