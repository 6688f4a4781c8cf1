package statement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTransaction(t *testing.T) {
	tests := []struct {
		name string
		rec  RawRecord
		want Transaction
		ok   bool
	}{
		{
			name: "debit with narration",
			rec: RawRecord{
				{Name: "Debit", Value: "100.00"},
				{Name: "Narration", Value: "Electricity Bill"},
			},
			want: Transaction{
				Description: "Electricity Bill",
				Amount:      -100.0,
				Category:    "expenses_utilities",
				Type:        TypeExpense,
			},
			ok: true,
		},
		{
			name: "credit is income",
			rec: RawRecord{
				{Name: "Txn Date", Value: "2024-01-31"},
				{Name: "Credit", Value: "50000"},
				{Name: "Description", Value: "Monthly Salary Payment"},
			},
			want: Transaction{
				Date:        "2024-01-31",
				Description: "Monthly Salary Payment",
				Amount:      50000.0,
				Category:    "income_salary",
				Type:        TypeIncome,
			},
			ok: true,
		},
		{
			name: "generic amount keeps its sign",
			rec: RawRecord{
				{Name: "Amount", Value: "-75.25"},
				{Name: "Particulars", Value: "Uber trip"},
			},
			want: Transaction{
				Description: "Uber trip",
				Amount:      -75.25,
				Category:    "expenses_transport",
				Type:        TypeExpense,
			},
			ok: true,
		},
		{
			name: "debit forced negative even when positive in source",
			rec: RawRecord{
				{Name: "Withdrawal", Value: "200"},
				{Name: "Details", Value: "ATM cash"},
			},
			want: Transaction{
				Description: "ATM cash",
				Amount:      -200.0,
				Category:    "uncategorized",
				Type:        TypeExpense,
			},
			ok: true,
		},
		{
			name: "missing description uses placeholder",
			rec: RawRecord{
				{Name: "Credit", Value: "10"},
			},
			want: Transaction{
				Description: "Unknown Transaction",
				Amount:      10.0,
				Category:    "uncategorized",
				Type:        TypeIncome,
			},
			ok: true,
		},
		{
			name: "zero amount rejected",
			rec: RawRecord{
				{Name: "Amount", Value: 0.0},
				{Name: "Description", Value: "Zero value"},
			},
			ok: false,
		},
		{
			name: "unparseable amount rejected",
			rec: RawRecord{
				{Name: "Amount", Value: "n/a"},
				{Name: "Description", Value: "Pending"},
			},
			ok: false,
		},
		{
			name: "no amount-like field",
			rec: RawRecord{
				{Name: "Description", Value: "Just a note"},
				{Name: "Date", Value: "2024-01-01"},
			},
			ok: false,
		},
		{
			name: "nil amount field skipped, later field used",
			rec: RawRecord{
				{Name: "Amount", Value: nil},
				{Name: "Debit", Value: "30"},
				{Name: "Desc", Value: "Bus ticket"},
			},
			want: Transaction{
				Description: "Bus ticket",
				Amount:      -30.0,
				Category:    "expenses_transport",
				Type:        TypeExpense,
			},
			ok: true,
		},
		{
			name: "first amount field wins over later ones",
			rec: RawRecord{
				{Name: "Debit", Value: "40"},
				{Name: "Credit", Value: "999"},
				{Name: "Narration", Value: "Mobile recharge"},
			},
			want: Transaction{
				Description: "Mobile recharge",
				Amount:      -40.0,
				Category:    "expenses_utilities",
				Type:        TypeExpense,
			},
			ok: true,
		},
		{
			name: "numeric json values",
			rec: RawRecord{
				{Name: "amount", Value: 1500.0},
				{Name: "description", Value: "Consulting fee"},
				{Name: "date", Value: "05/01/2024"},
			},
			want: Transaction{
				Date:        "05/01/2024",
				Description: "Consulting fee",
				Amount:      1500.0,
				Category:    "income_business",
				Type:        TypeIncome,
			},
			ok: true,
		},
		{
			name: "empty record",
			rec:  RawRecord{},
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractTransaction(tt.rec)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestExtractTransaction_NullFieldsSkipped(t *testing.T) {
	// A null description must not beat the placeholder.
	got, ok := ExtractTransaction(RawRecord{
		{Name: "Credit", Value: "10"},
		{Name: "Description", Value: nil},
	})
	require.True(t, ok)
	assert.Equal(t, "Unknown Transaction", got.Description)

	// A later non-null field still wins.
	got, ok = ExtractTransaction(RawRecord{
		{Name: "Credit", Value: "10"},
		{Name: "Description", Value: nil},
		{Name: "Narration", Value: "Fuel refill"},
	})
	require.True(t, ok)
	assert.Equal(t, "Fuel refill", got.Description)

	// Same for dates.
	got, ok = ExtractTransaction(RawRecord{
		{Name: "Date", Value: nil},
		{Name: "Posting Date", Value: "2024-04-01"},
		{Name: "Credit", Value: "10"},
	})
	require.True(t, ok)
	assert.Equal(t, "2024-04-01", got.Date)
}

func TestExtractTransaction_CurrencySymbols(t *testing.T) {
	got, ok := ExtractTransaction(RawRecord{
		{Name: "Amount", Value: "₹1,250.00"},
		{Name: "Narration", Value: "Supermarket"},
	})
	require.True(t, ok)
	assert.Equal(t, 1250.0, got.Amount)
	assert.Equal(t, "expenses_food", got.Category)
}
