package statement

import (
	"math"
	"strings"
)

// unknownDescription is the placeholder used when a record carries no
// description-like field.
const unknownDescription = "Unknown Transaction"

// Field-name fragments recognized by the extraction heuristics. Matching is
// case-insensitive substring containment against the raw field name.
var (
	amountTerms      = []string{"amount", "amt", "value"}
	debitTerms       = []string{"debit", "withdrawal", "dr"}
	creditTerms      = []string{"credit", "deposit", "cr"}
	descriptionTerms = []string{"description", "desc", "particulars", "narration", "details"}
)

// ExtractTransaction locates the amount, sign, description and date inside a
// record of arbitrarily named fields and builds a canonical Transaction.
// It returns false when the record carries no usable amount: header rows,
// blank rows and anything else that is not a transaction are rejected
// silently.
//
// The amount scan walks fields in source order and stops at the first one
// whose name looks amount-bearing: a generic amount field keeps its sign, a
// debit-like field is forced negative, a credit-like field forced positive.
// Every scan skips fields holding nil, so a null description falls through
// to the placeholder. A resolved amount of exactly 0 rejects the record,
// which also means a genuine zero-value transaction is dropped.
func ExtractTransaction(rec RawRecord) (Transaction, bool) {
	var amount float64
	for _, f := range rec {
		if f.Name == "" || f.Value == nil {
			continue
		}
		name := strings.ToLower(f.Name)
		if containsAny(name, amountTerms) {
			amount = ParseAmount(f.Value)
			break
		}
		if containsAny(name, debitTerms) {
			amount = -math.Abs(ParseAmount(f.Value))
			break
		}
		if containsAny(name, creditTerms) {
			amount = math.Abs(ParseAmount(f.Value))
			break
		}
	}
	if amount == 0 {
		return Transaction{}, false
	}

	description := unknownDescription
	for _, f := range rec {
		if f.Name == "" || f.Value == nil {
			continue
		}
		if containsAny(strings.ToLower(f.Name), descriptionTerms) {
			description = stringify(f.Value)
			break
		}
	}

	date := ""
	for _, f := range rec {
		if f.Name == "" || f.Value == nil {
			continue
		}
		if strings.Contains(strings.ToLower(f.Name), "date") {
			date = stringify(f.Value)
			break
		}
	}

	t := Transaction{
		Date:        date,
		Description: description,
		Amount:      amount,
		Category:    Categorize(description),
		Type:        TypeIncome,
	}
	if amount < 0 {
		t.Type = TypeExpense
	}
	return t, true
}

func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}
