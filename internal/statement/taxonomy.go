package statement

// SubCategory groups the keyword substrings that classify a description into
// one "{main}_{sub}" label.
type SubCategory struct {
	Name     string
	Keywords []string
}

// MainCategory is one top-level branch of the chart of accounts.
type MainCategory struct {
	Name string
	Subs []SubCategory
}

// chartOfAccounts is the fixed classification taxonomy. It is built once and
// never mutated, so it is safe to share across concurrent requests without
// locking. Order matters: categories are scanned top to bottom and the first
// keyword match wins, with income checked before expenses.
var chartOfAccounts = []MainCategory{
	{
		Name: "income",
		Subs: []SubCategory{
			{Name: "salary", Keywords: []string{"salary", "payroll", "wages"}},
			{Name: "business", Keywords: []string{"freelance", "consulting", "client", "project"}},
			{Name: "investment", Keywords: []string{"dividend", "interest", "return", "yield"}},
			{Name: "other_income", Keywords: []string{"refund", "reimbursement", "gift"}},
		},
	},
	{
		Name: "expenses",
		Subs: []SubCategory{
			{Name: "housing", Keywords: []string{"rent", "mortgage", "emi", "house", "apartment"}},
			{Name: "utilities", Keywords: []string{"electric", "water", "bill", "utility", "internet", "mobile"}},
			{Name: "food", Keywords: []string{"grocery", "restaurant", "food", "dining", "supermarket"}},
			{Name: "transport", Keywords: []string{"fuel", "petrol", "uber", "ola", "transport", "bus", "train"}},
			{Name: "healthcare", Keywords: []string{"medical", "hospital", "doctor", "pharmacy", "medicine"}},
			{Name: "entertainment", Keywords: []string{"movie", "netflix", "prime", "entertainment", "game"}},
			{Name: "shopping", Keywords: []string{"shopping", "mall", "amazon", "flipkart", "purchase"}},
		},
	},
}
