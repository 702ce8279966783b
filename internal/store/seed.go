package store

import (
	"context"
	"fmt"
	"time"

	"bilancio/internal/core"
)

// Seed installs the fixed starter data set into st. The records are
// deterministic; only the generated ids differ between runs. References
// between records are wired through the ids returned by the Add calls, so
// the seeded store never contains a dangling reference.
func Seed(ctx context.Context, st Store) error {
	now := time.Now().UTC()
	year, month := now.Year(), int(now.Month())

	marco, err := st.AddMember(ctx, core.CreateMemberParams{
		Name: "Marco", Email: "marco@example.com", Color: "#2563eb",
	})
	if err != nil {
		return fmt.Errorf("seed member: %w", err)
	}
	giulia, err := st.AddMember(ctx, core.CreateMemberParams{
		Name: "Giulia", Email: "giulia@example.com", Color: "#db2777",
	})
	if err != nil {
		return fmt.Errorf("seed member: %w", err)
	}

	type catSpec struct {
		name  string
		typ   core.TransactionType
		color string
		icon  string
	}
	catSpecs := []catSpec{
		{"Stipendio", core.Income, "#16a34a", "briefcase"},
		{"Casa", core.Expense, "#f59e0b", "home"},
		{"Cibo", core.Expense, "#ef4444", "utensils"},
		{"Trasporti", core.Expense, "#0ea5e9", "car"},
		{"Svago", core.Expense, "#8b5cf6", "gamepad"},
	}
	catIDs := make(map[string]string, len(catSpecs))
	for _, c := range catSpecs {
		id, err := st.AddCategory(ctx, core.CreateCategoryParams{
			Name: c.name, Type: c.typ, Color: c.color, Icon: c.icon,
		})
		if err != nil {
			return fmt.Errorf("seed category %s: %w", c.name, err)
		}
		catIDs[c.name] = id
	}

	checking, err := st.AddAccount(ctx, core.CreateAccountParams{
		Name: "Conto principale", Bank: "Intesa", BalanceCents: 542_000,
		AccountNumber: "IT60X054281110", Color: "#2563eb",
	})
	if err != nil {
		return fmt.Errorf("seed account: %w", err)
	}
	if _, err := st.AddAccount(ctx, core.CreateAccountParams{
		Name: "Risparmi", Bank: "Fineco", BalanceCents: 1_250_000,
		AccountNumber: "IT60X054281111", Color: "#16a34a",
	}); err != nil {
		return fmt.Errorf("seed account: %w", err)
	}

	card, err := st.AddCard(ctx, core.CreateCardParams{
		Name: "Carta famiglia", Bank: "Intesa", LimitCents: 500_000,
		BalanceCents: 86_500, ClosingDay: 28, DueDay: 10,
		LastFour: "4421", Color: "#7c3aed",
	})
	if err != nil {
		return fmt.Errorf("seed card: %w", err)
	}

	type txSpec struct {
		member      string
		day         int
		description string
		cents       int64
		typ         core.TransactionType
		category    string
		accountID   string
		cardID      string
		status      core.TransactionStatus
	}
	txSpecs := []txSpec{
		{marco, 1, "Stipendio mensile", 280_000, core.Income, "Stipendio", checking, "", core.StatusPaid},
		{giulia, 1, "Stipendio mensile", 240_000, core.Income, "Stipendio", checking, "", core.StatusPaid},
		{marco, 3, "Affitto", 95_000, core.Expense, "Casa", checking, "", core.StatusPaid},
		{giulia, 5, "Spesa settimanale", 18_400, core.Expense, "Cibo", "", card, core.StatusPaid},
		{marco, 8, "Abbonamento treno", 5_500, core.Expense, "Trasporti", checking, "", core.StatusPaid},
		{giulia, 12, "Cena fuori", 7_600, core.Expense, "Svago", "", card, core.StatusPending},
	}
	for _, tx := range txSpecs {
		if _, err := st.AddTransaction(ctx, core.CreateTransactionParams{
			MemberID:     tx.member,
			Date:         core.NewDate(year, month, tx.day),
			Description:  tx.description,
			AmountCents:  tx.cents,
			Type:         tx.typ,
			CategoryID:   catIDs[tx.category],
			AccountID:    tx.accountID,
			CreditCardID: tx.cardID,
			Status:       tx.status,
		}); err != nil {
			return fmt.Errorf("seed transaction %q: %w", tx.description, err)
		}
	}

	if _, err := st.AddGoal(ctx, core.CreateGoalParams{
		Name: "Vacanze estive", TargetCents: 300_000, CurrentCents: 120_000,
		Deadline: core.NewDate(year+1, 7, 1), Color: "#0ea5e9", Icon: "plane",
	}); err != nil {
		return fmt.Errorf("seed goal: %w", err)
	}
	if _, err := st.AddGoal(ctx, core.CreateGoalParams{
		Name: "Fondo emergenze", TargetCents: 1_000_000, CurrentCents: 450_000,
		Deadline: core.NewDate(year+2, 1, 1), Color: "#16a34a", Icon: "shield",
	}); err != nil {
		return fmt.Errorf("seed goal: %w", err)
	}

	return nil
}
