package services

import (
	"context"
	"errors"
	"testing"

	"bilancio/internal/core"
	"bilancio/internal/store/memory"
)

// The nil events client exercises the standalone path: mutations succeed
// without any AMQP connection.
func newTestService() *FinanceService {
	return NewFinanceService(memory.New(), nil)
}

func TestMutationsWithoutEventClient(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	memberID, err := svc.AddMember(ctx, core.CreateMemberParams{Name: "Marco"})
	if err != nil {
		t.Fatalf("AddMember: %v", err)
	}

	name := "Marco P."
	if err := svc.UpdateMember(ctx, memberID, core.UpdateMemberParams{Name: &name}); err != nil {
		t.Fatalf("UpdateMember: %v", err)
	}
	if err := svc.DeleteMember(ctx, memberID); err != nil {
		t.Fatalf("DeleteMember: %v", err)
	}

	if err := svc.UpdateMember(ctx, memberID, core.UpdateMemberParams{Name: &name}); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestOverviewUsesActiveFilter(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	catID, _ := svc.AddCategory(ctx, core.CreateCategoryParams{Name: "Cibo", Type: core.Expense})
	accID, _ := svc.AddAccount(ctx, core.CreateAccountParams{Name: "Conto", BalanceCents: 100000})

	if err := svc.Filters().SetDateRange(core.NewDate(2026, 3, 1), core.NewDate(2026, 3, 31)); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.AddTransaction(ctx, core.CreateTransactionParams{
		MemberID: "m1", Date: core.NewDate(2026, 3, 2), Description: "Stipendio",
		AmountCents: 100000, Type: core.Income, CategoryID: catID, AccountID: accID, Status: core.StatusPaid,
	}); err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	if _, err := svc.AddTransaction(ctx, core.CreateTransactionParams{
		MemberID: "m1", Date: core.NewDate(2026, 3, 10), Description: "Spesa",
		AmountCents: 40000, Type: core.Expense, CategoryID: catID, AccountID: accID, Status: core.StatusPaid,
	}); err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	// Outside the active range: must not count.
	if _, err := svc.AddTransaction(ctx, core.CreateTransactionParams{
		MemberID: "m1", Date: core.NewDate(2026, 4, 2), Description: "Spesa aprile",
		AmountCents: 99900, Type: core.Expense, CategoryID: catID, AccountID: accID, Status: core.StatusPaid,
	}); err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}

	ov, err := svc.Overview(ctx)
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if ov.Income.Cents != 100000 || ov.Expenses.Cents != 40000 {
		t.Fatalf("income/expenses = %d/%d", ov.Income.Cents, ov.Expenses.Cents)
	}
	if ov.SavingsRate != 60 {
		t.Fatalf("savings rate = %v, want 60", ov.SavingsRate)
	}
	if ov.TotalBalance.Cents != 100000 {
		t.Fatalf("total balance = %d", ov.TotalBalance.Cents)
	}
	if len(ov.ByCategory) != 1 || ov.ByCategory[0].Name != "Cibo" || ov.ByCategory[0].Percentage != 100 {
		t.Fatalf("breakdown = %+v", ov.ByCategory)
	}

	txs, err := svc.FilteredTransactions(ctx)
	if err != nil {
		t.Fatalf("FilteredTransactions: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("filtered transactions = %d, want 2", len(txs))
	}
}

func TestRevisionTracksStore(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	if svc.Revision() != 0 {
		t.Fatalf("fresh revision = %d", svc.Revision())
	}
	if _, err := svc.AddGoal(ctx, core.CreateGoalParams{Name: "Vacanze", TargetCents: 100}); err != nil {
		t.Fatalf("AddGoal: %v", err)
	}
	if svc.Revision() != 1 {
		t.Fatalf("revision = %d, want 1", svc.Revision())
	}
}

func TestCloseWithoutEventClient(t *testing.T) {
	svc := newTestService()
	if err := svc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
