package statement

import (
	"regexp"
	"strconv"
	"strings"
)

// linePatterns are the positional layouts recognized in text extracted from
// paginated statements, tried in order. Group order is always date,
// description, amount; the first pattern additionally captures a trailing
// running balance that is not used.
var linePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{2,4})\s+(.*?)\s+([\d,]+\.\d{2})\s+([\d,]+\.\d{2})`),
	regexp.MustCompile(`(\d{1,2}-\d{1,2}-\d{2,4})\s+(.*?)\s+(-?[\d,]+\.\d{2})`),
}

// ParseStatementLine parses one line of free-form statement text into a
// Transaction. Such text has no column structure, so positional patterns
// replace the field-name heuristics used for tabular input. Lines that match
// no pattern, or whose captured amount does not parse, yield false.
func ParseStatementLine(line string) (Transaction, bool) {
	for _, pattern := range linePatterns {
		m := pattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		amount, err := strconv.ParseFloat(strings.ReplaceAll(m[3], ",", ""), 64)
		if err != nil {
			continue
		}
		description := strings.TrimSpace(m[2])
		t := Transaction{
			Date:        m[1],
			Description: description,
			Amount:      amount,
			Category:    Categorize(description),
			Type:        TypeExpense,
		}
		if amount > 0 {
			t.Type = TypeIncome
		}
		return t, true
	}
	return Transaction{}, false
}
