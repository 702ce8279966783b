package sqlite

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"bilancio/internal/core"
)

// Each test gets its own named in-memory database so parallel test runs
// never share state.
func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	repo, err := NewRepository(dsn)
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestTransactionRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	id, err := repo.AddTransaction(ctx, core.CreateTransactionParams{
		MemberID:    "m1",
		Date:        core.NewDate(2026, 3, 15),
		Description: "Rata lavatrice",
		AmountCents: 30000,
		Type:        core.Expense,
		CategoryID:  "c1",
		AccountID:   "a1",
		Installment: &core.Installment{Current: 2, Total: 10},
		Status:      core.StatusPending,
		Notes:       "seconda rata",
	})
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}

	snap, err := repo.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snap.Transactions) != 1 {
		t.Fatalf("transactions = %d, want 1", len(snap.Transactions))
	}
	got := snap.Transactions[0]
	if got.ID != id || got.Description != "Rata lavatrice" || got.Amount.Cents != 30000 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.Date.String() != "2026-03-15" {
		t.Fatalf("date = %s", got.Date)
	}
	if got.Installment == nil || got.Installment.Current != 2 || got.Installment.Total != 10 {
		t.Fatalf("installment = %+v", got.Installment)
	}
}

func TestTransactionWithoutInstallment(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	_, err := repo.AddTransaction(ctx, core.CreateTransactionParams{
		MemberID: "m1", Date: core.NewDate(2026, 3, 1), Description: "Spesa",
		AmountCents: 5000, Type: core.Expense, CategoryID: "c1", Status: core.StatusPaid,
	})
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}

	snap, _ := repo.Snapshot(ctx)
	if snap.Transactions[0].Installment != nil {
		t.Fatalf("installment should round-trip as nil, got %+v", snap.Transactions[0].Installment)
	}
}

func TestUpdateMergesAndValidates(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	id, _ := repo.AddGoal(ctx, core.CreateGoalParams{
		Name: "Vacanze", TargetCents: 300000, CurrentCents: 120000,
		Deadline: core.NewDate(2027, 7, 1),
	})

	cur := int64(180000)
	if err := repo.UpdateGoal(ctx, id, core.UpdateGoalParams{CurrentCents: &cur}); err != nil {
		t.Fatalf("UpdateGoal: %v", err)
	}

	snap, _ := repo.Snapshot(ctx)
	g := snap.Goals[0]
	if g.Current.Cents != 180000 || g.Name != "Vacanze" || g.Deadline.String() != "2027-07-01" {
		t.Fatalf("merged goal = %+v", g)
	}

	// An invalid merge is rejected and the row untouched.
	badTarget := int64(0)
	if err := repo.UpdateGoal(ctx, id, core.UpdateGoalParams{TargetCents: &badTarget}); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	snap, _ = repo.Snapshot(ctx)
	if snap.Goals[0].Target.Cents != 300000 {
		t.Fatalf("target changed after rejected update: %d", snap.Goals[0].Target.Cents)
	}
}

func TestUpdateAbsentRowNotFound(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	name := "x"
	if err := repo.UpdateMember(ctx, "missing", core.UpdateMemberParams{Name: &name}); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteIdempotentAndRevision(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	id, _ := repo.AddCategory(ctx, core.CreateCategoryParams{Name: "Cibo", Type: core.Expense})
	rev := repo.Revision()

	if err := repo.DeleteCategory(ctx, id); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	if repo.Revision() != rev+1 {
		t.Fatalf("revision = %d, want %d", repo.Revision(), rev+1)
	}

	// Second delete is a silent no-op and does not bump.
	if err := repo.DeleteCategory(ctx, id); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if repo.Revision() != rev+1 {
		t.Fatalf("no-op delete bumped revision to %d", repo.Revision())
	}
}

func TestSnapshotPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	names := []string{"Stipendio", "Casa", "Cibo"}
	for _, n := range names {
		typ := core.Expense
		if n == "Stipendio" {
			typ = core.Income
		}
		if _, err := repo.AddCategory(ctx, core.CreateCategoryParams{Name: n, Type: typ}); err != nil {
			t.Fatalf("AddCategory %s: %v", n, err)
		}
	}

	snap, _ := repo.Snapshot(ctx)
	for i, n := range names {
		if snap.Categories[i].Name != n {
			t.Fatalf("categories[%d] = %s, want %s", i, snap.Categories[i].Name, n)
		}
	}
}
