package statement

import (
	"strconv"
	"strings"
)

// currencyCleaner strips the decorations that show up in statement amount
// cells: thousands separators and common currency symbols.
var currencyCleaner = strings.NewReplacer(",", "", "₹", "", "$", "", "€", "")

// ParseAmount normalizes a raw cell value into a signed float64. A nil or
// empty value, and any value that cannot be parsed as a number, collapses to
// 0: a malformed cell must never abort processing of a whole file.
func ParseAmount(value any) float64 {
	switch v := value.(type) {
	case nil:
		return 0
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		cleaned := strings.TrimSpace(currencyCleaner.Replace(v))
		if cleaned == "" {
			return 0
		}
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
