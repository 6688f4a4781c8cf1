package statement

import (
	"fmt"
	"strconv"
)

// Transaction type labels, derived from the sign of the amount.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Field is one named value from a decoded row or JSON object. Names come
// straight from the source (column header, JSON key) and are not normalized.
type Field struct {
	Name  string
	Value any
}

// RawRecord is one decoded row with its fields in source order. Extraction
// scans fields in this order, so order must survive decoding. No field name
// is guaranteed to be present.
type RawRecord []Field

// Transaction is one extracted transaction in canonical form. The date is
// carried as raw text exactly as it appeared in the source; the amount is
// positive for income and negative for expenses and is never zero.
type Transaction struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Type        string  `json:"type"`
}

// StatementFile is one uploaded file: already-materialized bytes plus the
// client-supplied name used for format dispatch.
type StatementFile struct {
	Name string
	Data []byte
}

// stringify renders a raw field value the way it should appear in a
// transaction's text fields. Floats drop the trailing zeros a decoder may
// have introduced.
func stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
