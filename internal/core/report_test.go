package core

import (
	"math"
	"testing"
)

func reportSnapshot() Snapshot {
	return Snapshot{
		Members: []FamilyMember{
			{ID: "m1", Name: "Marco"},
			{ID: "m2", Name: "Giulia"},
		},
		Categories: []Category{
			{ID: "c-salary", Name: "Stipendio", Type: Income, Color: "#16a34a"},
			{ID: "c-food", Name: "Cibo", Type: Expense, Color: "#f97316"},
			{ID: "c-home", Name: "Casa", Type: Expense, Color: "#2563eb"},
		},
		Accounts: []BankAccount{
			{ID: "a1", Name: "Conto principale", Balance: Money{Cents: 350000}},
			{ID: "a2", Name: "Risparmi", Balance: Money{Cents: 120000}},
		},
		Cards: []CreditCard{
			{ID: "cc1", Name: "Carta famiglia", Limit: Money{Cents: 500000}, Balance: Money{Cents: 70000}, ClosingDay: 28, DueDay: 10},
		},
		Transactions: []Transaction{
			{ID: "t1", MemberID: "m1", Date: NewDate(2026, 3, 1), Description: "Stipendio marzo", Amount: Money{Cents: 100000}, Type: Income, CategoryID: "c-salary", AccountID: "a1", Status: StatusPaid},
			{ID: "t2", MemberID: "m1", Date: NewDate(2026, 3, 10), Description: "Spesa", Amount: Money{Cents: 40000}, Type: Expense, CategoryID: "c-food", AccountID: "a1", Status: StatusPaid},
		},
	}
}

func TestOverviewBaseScenario(t *testing.T) {
	snap := reportSnapshot()
	f := Filter{Range: MonthRange(2026, 3)}

	if got := snap.IncomeForPeriod(f); got.Cents != 100000 {
		t.Fatalf("income = %d, want 100000", got.Cents)
	}
	if got := snap.ExpensesForPeriod(f); got.Cents != 40000 {
		t.Fatalf("expenses = %d, want 40000", got.Cents)
	}
	if got := snap.SavingsRate(f); got != 60 {
		t.Fatalf("savings rate = %v, want 60", got)
	}

	rows := snap.ExpensesByCategory(f)
	if len(rows) != 1 {
		t.Fatalf("breakdown rows = %d, want 1", len(rows))
	}
	if rows[0].Name != "Cibo" || rows[0].Amount.Cents != 40000 || rows[0].Percentage != 100 {
		t.Fatalf("breakdown = %+v", rows[0])
	}
}

func TestFilteredTransactionsMemberWithNoActivity(t *testing.T) {
	snap := reportSnapshot()
	f := Filter{MemberID: "m2", Range: MonthRange(2026, 3)}

	if got := snap.FilteredTransactions(f); len(got) != 0 {
		t.Fatalf("expected no transactions, got %d", len(got))
	}
	if got := snap.IncomeForPeriod(f); got.Cents != 0 {
		t.Fatalf("income = %d, want 0", got.Cents)
	}
	if got := snap.SavingsRate(f); got != 0 {
		t.Fatalf("savings rate with zero income = %v, want 0", got)
	}
	if rows := snap.ExpensesByCategory(f); rows == nil || len(rows) != 0 {
		t.Fatalf("breakdown should be an empty slice, got %v", rows)
	}
}

func TestSavingsRateNegativeWhenOverspending(t *testing.T) {
	snap := reportSnapshot()
	snap.Transactions = append(snap.Transactions, Transaction{
		ID: "t3", MemberID: "m1", Date: NewDate(2026, 3, 20), Description: "Riparazione auto",
		Amount: Money{Cents: 90000}, Type: Expense, CategoryID: "c-home", Status: StatusPaid,
	})
	f := Filter{Range: MonthRange(2026, 3)}
	if got := snap.SavingsRate(f); got != -30 {
		t.Fatalf("savings rate = %v, want -30", got)
	}
}

func TestTotalBalanceIgnoresFilter(t *testing.T) {
	snap := reportSnapshot()
	// accounts 3500 + 1200 minus card statement 700
	want := int64(400000)
	if got := snap.TotalBalance(); got.Cents != want {
		t.Fatalf("total balance = %d, want %d", got.Cents, want)
	}
	// The filter never enters the computation; the overview carries the
	// same figure no matter how narrow the view is.
	ov := snap.BuildOverview(Filter{MemberID: "m2", Range: MonthRange(1999, 1)})
	if ov.TotalBalance.Cents != want {
		t.Fatalf("filtered overview balance = %d, want %d", ov.TotalBalance.Cents, want)
	}
}

func TestExpensesByCategorySortingAndPercentages(t *testing.T) {
	snap := reportSnapshot()
	snap.Transactions = []Transaction{
		{ID: "t1", Date: NewDate(2026, 3, 2), Description: "Affitto", Amount: Money{Cents: 60000}, Type: Expense, CategoryID: "c-home", Status: StatusPaid},
		{ID: "t2", Date: NewDate(2026, 3, 5), Description: "Spesa", Amount: Money{Cents: 25000}, Type: Expense, CategoryID: "c-food", Status: StatusPaid},
		{ID: "t3", Date: NewDate(2026, 3, 9), Description: "Spesa bis", Amount: Money{Cents: 15000}, Type: Expense, CategoryID: "c-food", Status: StatusPaid},
	}
	rows := snap.ExpensesByCategory(Filter{Range: MonthRange(2026, 3)})
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].Name != "Casa" || rows[1].Name != "Cibo" {
		t.Fatalf("order = [%s, %s], want [Casa, Cibo]", rows[0].Name, rows[1].Name)
	}
	if rows[0].Amount.Cents != 60000 || rows[1].Amount.Cents != 40000 {
		t.Fatalf("amounts = [%d, %d]", rows[0].Amount.Cents, rows[1].Amount.Cents)
	}

	var sum float64
	for _, r := range rows {
		sum += r.Percentage
	}
	if math.Abs(sum-100) > 1e-9 {
		t.Fatalf("percentages sum to %v, want 100", sum)
	}
}

func TestExpensesByCategoryTieBreaksByName(t *testing.T) {
	snap := Snapshot{
		Categories: []Category{
			{ID: "cb", Name: "Svago", Type: Expense},
			{ID: "ca", Name: "Cibo", Type: Expense},
		},
		Transactions: []Transaction{
			{ID: "t1", Date: NewDate(2026, 3, 1), Description: "a", Amount: Money{Cents: 1000}, Type: Expense, CategoryID: "cb", Status: StatusPaid},
			{ID: "t2", Date: NewDate(2026, 3, 1), Description: "b", Amount: Money{Cents: 1000}, Type: Expense, CategoryID: "ca", Status: StatusPaid},
		},
	}
	rows := snap.ExpensesByCategory(Filter{})
	if rows[0].Name != "Cibo" || rows[1].Name != "Svago" {
		t.Fatalf("tie order = [%s, %s], want name ascending", rows[0].Name, rows[1].Name)
	}
}

func TestDanglingReferencesResolveToPlaceholders(t *testing.T) {
	snap := reportSnapshot()
	snap.Transactions = append(snap.Transactions, Transaction{
		ID: "t9", MemberID: "m1", Date: NewDate(2026, 3, 12), Description: "Misc",
		Amount: Money{Cents: 10000}, Type: Expense, CategoryID: "c-gone", CreditCardID: "cc-gone", Status: StatusPaid,
	})
	f := Filter{Range: MonthRange(2026, 3)}

	rows := snap.ExpensesByCategory(f)
	var found bool
	for _, r := range rows {
		if r.CategoryID == "c-gone" {
			found = true
			if r.Name != UncategorizedName {
				t.Fatalf("dangling category name = %q", r.Name)
			}
			if r.Amount.Cents != 10000 {
				t.Fatalf("dangling category amount = %d", r.Amount.Cents)
			}
		}
	}
	if !found {
		t.Fatal("dangling category bucket missing from breakdown")
	}

	// The amount still counts toward the expense total.
	if got := snap.ExpensesForPeriod(f); got.Cents != 50000 {
		t.Fatalf("expenses = %d, want 50000", got.Cents)
	}

	if got := snap.CategoryName("c-gone"); got != UncategorizedName {
		t.Fatalf("CategoryName = %q", got)
	}
	if got := snap.SourceName(snap.Transactions[len(snap.Transactions)-1]); got != UnknownSourceName {
		t.Fatalf("SourceName = %q", got)
	}
	if got := snap.SourceName(Transaction{}); got != "" {
		t.Fatalf("SourceName without funding source = %q, want empty", got)
	}
}

func TestBuildOverviewEmptySnapshot(t *testing.T) {
	var snap Snapshot
	ov := snap.BuildOverview(Filter{})
	if ov.TotalBalance.Cents != 0 || ov.Income.Cents != 0 || ov.Expenses.Cents != 0 || ov.SavingsRate != 0 {
		t.Fatalf("empty overview = %+v", ov)
	}
	if ov.ByCategory == nil || len(ov.ByCategory) != 0 {
		t.Fatalf("empty breakdown should be an empty slice, got %v", ov.ByCategory)
	}
}
