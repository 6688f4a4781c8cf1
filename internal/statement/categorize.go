package statement

import "strings"

// Uncategorized is returned when no taxonomy keyword matches a description.
const Uncategorized = "uncategorized"

// Categorize maps a free-text description to a "{main}_{sub}" category
// label. The lowercased description is scanned against the chart of accounts
// in declaration order and the first keyword substring match wins.
func Categorize(description string) string {
	desc := strings.ToLower(description)
	for _, main := range chartOfAccounts {
		for _, sub := range main.Subs {
			for _, keyword := range sub.Keywords {
				if strings.Contains(desc, keyword) {
					return main.Name + "_" + sub.Name
				}
			}
		}
	}
	return Uncategorized
}
