package core

import "sort"

// Display fallbacks for dangling references. Deleting a category, account
// or card never touches the transactions pointing at it; reads resolve the
// stale id to one of these placeholders instead of failing.
const (
	UncategorizedName = "Senza categoria"
	UnknownSourceName = "Origine sconosciuta"
)

type (
	// Snapshot is a point-in-time copy of all entity collections. All
	// aggregation below is pure: it never mutates the snapshot and is
	// recomputed on every call.
	Snapshot struct {
		Members      []FamilyMember `json:"members"`
		Categories   []Category     `json:"categories"`
		Accounts     []BankAccount  `json:"accounts"`
		Cards        []CreditCard   `json:"cards"`
		Transactions []Transaction  `json:"transactions"`
		Goals        []Goal         `json:"goals"`
	}

	// CategoryBreakdown is one row of the per-category expense report.
	CategoryBreakdown struct {
		CategoryID string  `json:"categoryId"`
		Name       string  `json:"name"`
		Color      string  `json:"color"`
		Amount     Money   `json:"amount"`
		Percentage float64 `json:"percentage"`
	}

	// Overview bundles the headline numbers of the dashboard for the
	// active filter. TotalBalance ignores the filter entirely: it is the
	// current net worth, not a period figure.
	Overview struct {
		TotalBalance Money               `json:"totalBalance"`
		Income       Money               `json:"income"`
		Expenses     Money               `json:"expenses"`
		SavingsRate  float64             `json:"savingsRate"`
		ByCategory   []CategoryBreakdown `json:"byCategory"`
	}
)

func (s Snapshot) MemberByID(id string) (FamilyMember, bool) {
	for _, m := range s.Members {
		if m.ID == id {
			return m, true
		}
	}
	return FamilyMember{}, false
}

func (s Snapshot) CategoryByID(id string) (Category, bool) {
	for _, c := range s.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

func (s Snapshot) AccountByID(id string) (BankAccount, bool) {
	for _, a := range s.Accounts {
		if a.ID == id {
			return a, true
		}
	}
	return BankAccount{}, false
}

func (s Snapshot) CardByID(id string) (CreditCard, bool) {
	for _, c := range s.Cards {
		if c.ID == id {
			return c, true
		}
	}
	return CreditCard{}, false
}

// CategoryName resolves a category id for display, falling back to the
// uncategorized placeholder when the reference is dangling.
func (s Snapshot) CategoryName(id string) string {
	if c, ok := s.CategoryByID(id); ok {
		return c.Name
	}
	return UncategorizedName
}

// SourceName resolves the funding source of t for display. Transactions
// without a funding source resolve to the empty string; dangling account
// or card references resolve to the unknown-source placeholder.
func (s Snapshot) SourceName(t Transaction) string {
	switch {
	case t.AccountID != "":
		if a, ok := s.AccountByID(t.AccountID); ok {
			return a.Name
		}
		return UnknownSourceName
	case t.CreditCardID != "":
		if c, ok := s.CardByID(t.CreditCardID); ok {
			return c.Name
		}
		return UnknownSourceName
	default:
		return ""
	}
}

// FilteredTransactions returns the transactions passing every condition of
// f. Ordering follows the store ordering; callers sort as a presentation
// concern.
func (s Snapshot) FilteredTransactions(f Filter) []Transaction {
	out := make([]Transaction, 0, len(s.Transactions))
	for _, t := range s.Transactions {
		if f.Matches(t, s) {
			out = append(out, t)
		}
	}
	return out
}

// TotalBalance is the net worth: every bank balance minus every card
// statement balance, over the whole store regardless of the active filter.
func (s Snapshot) TotalBalance() Money {
	var cents int64
	for _, a := range s.Accounts {
		cents += a.Balance.Cents
	}
	for _, c := range s.Cards {
		cents -= c.Balance.Cents
	}
	return Money{Cents: cents}
}

// IncomeForPeriod sums the filtered income transactions.
func (s Snapshot) IncomeForPeriod(f Filter) Money {
	return s.sumByType(f, Income)
}

// ExpensesForPeriod sums the filtered expense transactions.
func (s Snapshot) ExpensesForPeriod(f Filter) Money {
	return s.sumByType(f, Expense)
}

func (s Snapshot) sumByType(f Filter, tt TransactionType) Money {
	var cents int64
	for _, t := range s.FilteredTransactions(f) {
		if t.Type == tt {
			cents += t.Amount.Cents
		}
	}
	return Money{Cents: cents}
}

// SavingsRate is the percentage of filtered income retained after filtered
// expenses. Zero income yields 0, never a division by zero.
func (s Snapshot) SavingsRate(f Filter) float64 {
	income := s.IncomeForPeriod(f)
	if income.Cents == 0 {
		return 0
	}
	expenses := s.ExpensesForPeriod(f)
	return float64(income.Cents-expenses.Cents) / float64(income.Cents) * 100
}

// ExpensesByCategory groups filtered expense transactions by category,
// resolving names and colors and computing each group's share of the total.
// Dangling category ids land in an uncategorized bucket but still count.
// The result is sorted by amount descending, name ascending on ties.
func (s Snapshot) ExpensesByCategory(f Filter) []CategoryBreakdown {
	sums := make(map[string]int64)
	for _, t := range s.FilteredTransactions(f) {
		if t.Type != Expense {
			continue
		}
		sums[t.CategoryID] += t.Amount.Cents
	}
	if len(sums) == 0 {
		return []CategoryBreakdown{}
	}

	var total int64
	for _, cents := range sums {
		total += cents
	}

	rows := make([]CategoryBreakdown, 0, len(sums))
	for id, cents := range sums {
		row := CategoryBreakdown{
			CategoryID: id,
			Name:       UncategorizedName,
			Amount:     Money{Cents: cents},
		}
		if cat, ok := s.CategoryByID(id); ok {
			row.Name = cat.Name
			row.Color = cat.Color
		}
		if total > 0 {
			row.Percentage = float64(cents) / float64(total) * 100
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Amount.Cents != rows[j].Amount.Cents {
			return rows[i].Amount.Cents > rows[j].Amount.Cents
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}

// BuildOverview computes the dashboard headline figures in one pass.
func (s Snapshot) BuildOverview(f Filter) Overview {
	return Overview{
		TotalBalance: s.TotalBalance(),
		Income:       s.IncomeForPeriod(f),
		Expenses:     s.ExpensesForPeriod(f),
		SavingsRate:  s.SavingsRate(f),
		ByCategory:   s.ExpensesByCategory(f),
	}
}
