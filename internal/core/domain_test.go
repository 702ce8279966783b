package core

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func validTransaction() Transaction {
	return Transaction{
		MemberID:    "m1",
		Date:        NewDate(2026, 3, 15),
		Description: "Spesa settimanale",
		Amount:      Money{Cents: 4250},
		Type:        Expense,
		CategoryID:  "c1",
		AccountID:   "a1",
		Status:      StatusPaid,
	}
}

func TestTransactionValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr error
	}{
		{"valid", func(tx *Transaction) {}, nil},
		{"zero date", func(tx *Transaction) { tx.Date = Date{} }, nil}, // generic error, checked below
		{"empty description", func(tx *Transaction) { tx.Description = "   " }, ErrEmptyDescription},
		{"zero amount", func(tx *Transaction) { tx.Amount = Money{} }, ErrInvalidAmount},
		{"negative amount", func(tx *Transaction) { tx.Amount = Money{Cents: -100} }, ErrInvalidAmount},
		{"bad type", func(tx *Transaction) { tx.Type = "transfer" }, ErrInvalidType},
		{"bad status", func(tx *Transaction) { tx.Status = "done" }, ErrInvalidStatus},
		{"two funding sources", func(tx *Transaction) { tx.CreditCardID = "cc1" }, ErrTwoFundingSources},
		{"no funding source ok", func(tx *Transaction) { tx.AccountID = "" }, nil},
		{"installment zero total", func(tx *Transaction) { tx.Installment = &Installment{Current: 1, Total: 0} }, ErrInvalidInstallment},
		{"installment current past total", func(tx *Transaction) { tx.Installment = &Installment{Current: 5, Total: 4} }, ErrInvalidInstallment},
		{"installment valid", func(tx *Transaction) { tx.Installment = &Installment{Current: 2, Total: 12} }, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tx := validTransaction()
			tc.mutate(&tx)
			err := tx.Validate()
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if tc.name == "zero date" {
				if err == nil {
					t.Fatal("expected error for zero date")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestTransactionDescriptionTooLong(t *testing.T) {
	tx := validTransaction()
	tx.Description = strings.Repeat("a", 201)
	if err := tx.Validate(); err == nil {
		t.Fatal("expected error for 201-char description")
	}
	tx.Description = strings.Repeat("a", 200)
	if err := tx.Validate(); err != nil {
		t.Fatalf("200-char description should be valid, got %v", err)
	}
}

func TestCreditCardValidate(t *testing.T) {
	valid := CreditCard{Name: "Carta", Limit: Money{Cents: 500000}, Balance: Money{Cents: 120000}, ClosingDay: 28, DueDay: 10}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*CreditCard)
		want   error
	}{
		{"empty name", func(c *CreditCard) { c.Name = "" }, ErrEmptyName},
		{"zero limit", func(c *CreditCard) { c.Limit = Money{} }, ErrInvalidAmount},
		{"negative balance", func(c *CreditCard) { c.Balance = Money{Cents: -1} }, ErrInvalidAmount},
		{"closing day zero", func(c *CreditCard) { c.ClosingDay = 0 }, ErrInvalidDay},
		{"closing day 32", func(c *CreditCard) { c.ClosingDay = 32 }, ErrInvalidDay},
		{"due day zero", func(c *CreditCard) { c.DueDay = 0 }, ErrInvalidDay},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid
			tc.mutate(&c)
			if err := c.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestCreditCardUsagePercent(t *testing.T) {
	cases := []struct {
		limit, balance int64
		want           float64
	}{
		{500000, 120000, 24},
		{500000, 0, 0},
		{500000, 500000, 100},
		{500000, 600000, 100}, // clamped
		{0, 100, 0},           // degenerate limit
	}
	for _, tc := range cases {
		c := CreditCard{Limit: Money{Cents: tc.limit}, Balance: Money{Cents: tc.balance}}
		if got := c.UsagePercent(); got != tc.want {
			t.Errorf("UsagePercent(limit=%d, balance=%d) = %v, want %v", tc.limit, tc.balance, got, tc.want)
		}
	}
}

func TestGoalProgress(t *testing.T) {
	g := Goal{Name: "Vacanze", Target: Money{Cents: 100000}, Current: Money{Cents: 25000}}
	if got := g.Progress(); got != 25 {
		t.Fatalf("Progress() = %v, want 25", got)
	}
	// Overfunded goals are not clamped.
	g.Current = Money{Cents: 150000}
	if got := g.Progress(); got != 150 {
		t.Fatalf("Progress() = %v, want 150", got)
	}
}

func TestEntityValidateEmptyName(t *testing.T) {
	if err := (FamilyMember{Name: " "}).Validate(); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("member: expected ErrEmptyName, got %v", err)
	}
	if err := (Category{Name: "", Type: Expense}).Validate(); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("category: expected ErrEmptyName, got %v", err)
	}
	if err := (Category{Name: "Cibo", Type: "other"}).Validate(); !errors.Is(err, ErrInvalidType) {
		t.Fatalf("category: expected ErrInvalidType, got %v", err)
	}
	if err := (BankAccount{Name: ""}).Validate(); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("account: expected ErrEmptyName, got %v", err)
	}
	if err := (Goal{Name: "", Target: Money{Cents: 100}}).Validate(); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("goal: expected ErrEmptyName, got %v", err)
	}
}

func TestBankAccountNegativeBalanceAllowed(t *testing.T) {
	a := BankAccount{Name: "Conto", Balance: Money{Cents: -5000}}
	if err := a.Validate(); err != nil {
		t.Fatalf("overdrawn account should be valid, got %v", err)
	}
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2026, 3, 5)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"2026-03-05"` {
		t.Fatalf("marshalled date = %s", b)
	}

	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if !back.Equal(d.Time) {
		t.Fatalf("round trip mismatch: %v != %v", back, d)
	}

	var empty Date
	if err := json.Unmarshal([]byte(`""`), &empty); err != nil {
		t.Fatal(err)
	}
	if !empty.IsZero() {
		t.Fatal("empty string should unmarshal to zero date")
	}
}
