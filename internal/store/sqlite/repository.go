// Package sqlite is an alternative store backend on an in-memory SQLite
// database. Like the native memory backend it is volatile and scoped to
// the session; it exists for hosts that prefer SQL reads over slice scans.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"bilancio/internal/core"
)

// DefaultDSN keeps the database in memory and shared across the
// connection pool for the lifetime of the process.
const DefaultDSN = "file:bilancio?mode=memory&cache=shared"

type Repository struct {
	db  *sql.DB
	rev atomic.Int64
}

func NewRepository(dsn string) (*Repository, error) {
	if dsn == "" {
		dsn = DefaultDSN
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// A single pooled connection pins the in-memory database: if every
	// connection closed, the schema and data would vanish mid-session.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *Repository) Revision() int64 {
	return r.rev.Load()
}

func (r *Repository) bump() {
	r.rev.Add(1)
}

func (r *Repository) Snapshot(ctx context.Context) (core.Snapshot, error) {
	var snap core.Snapshot
	var err error

	if snap.Members, err = r.listMembers(ctx); err != nil {
		return core.Snapshot{}, fmt.Errorf("list members: %w", err)
	}
	if snap.Categories, err = r.listCategories(ctx); err != nil {
		return core.Snapshot{}, fmt.Errorf("list categories: %w", err)
	}
	if snap.Accounts, err = r.listAccounts(ctx); err != nil {
		return core.Snapshot{}, fmt.Errorf("list accounts: %w", err)
	}
	if snap.Cards, err = r.listCards(ctx); err != nil {
		return core.Snapshot{}, fmt.Errorf("list cards: %w", err)
	}
	if snap.Transactions, err = r.listTransactions(ctx); err != nil {
		return core.Snapshot{}, fmt.Errorf("list transactions: %w", err)
	}
	if snap.Goals, err = r.listGoals(ctx); err != nil {
		return core.Snapshot{}, fmt.Errorf("list goals: %w", err)
	}
	return snap, nil
}

func (r *Repository) listMembers(ctx context.Context) ([]core.FamilyMember, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, email, avatar, color FROM members ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []core.FamilyMember
	for rows.Next() {
		var m core.FamilyMember
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Avatar, &m.Color); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *Repository) listCategories(ctx context.Context) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, tx_type, color, icon FROM categories ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []core.Category
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Type, &c.Color, &c.Icon); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repository) listAccounts(ctx context.Context) ([]core.BankAccount, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, bank, balance_cents, account_number, color FROM accounts ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []core.BankAccount
	for rows.Next() {
		var a core.BankAccount
		if err := rows.Scan(&a.ID, &a.Name, &a.Bank, &a.Balance.Cents, &a.AccountNumber, &a.Color); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *Repository) listCards(ctx context.Context) ([]core.CreditCard, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, bank, limit_cents, balance_cents, closing_day, due_day, last_four, color
		 FROM cards ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []core.CreditCard
	for rows.Next() {
		var c core.CreditCard
		if err := rows.Scan(&c.ID, &c.Name, &c.Bank, &c.Limit.Cents, &c.Balance.Cents,
			&c.ClosingDay, &c.DueDay, &c.LastFour, &c.Color); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repository) listTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, member_id, tx_date, description, amount_cents, tx_type, category_id,
		        account_id, credit_card_id, installment_current, installment_total, status, notes
		 FROM transactions ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *Repository) listGoals(ctx context.Context) ([]core.Goal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, target_cents, current_cents, deadline, color, icon FROM goals ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []core.Goal
	for rows.Next() {
		var g core.Goal
		var deadline string
		if err := rows.Scan(&g.ID, &g.Name, &g.Target.Cents, &g.Current.Cents, &deadline, &g.Color, &g.Icon); err != nil {
			return nil, err
		}
		d, err := core.ParseDate(deadline)
		if err != nil {
			return nil, fmt.Errorf("parse goal deadline %q: %w", deadline, err)
		}
		g.Deadline = d
		out = append(out, g)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var (
		t           core.Transaction
		txDate      string
		instCurrent sql.NullInt64
		instTotal   sql.NullInt64
	)
	if err := row.Scan(&t.ID, &t.MemberID, &txDate, &t.Description, &t.Amount.Cents, &t.Type,
		&t.CategoryID, &t.AccountID, &t.CreditCardID, &instCurrent, &instTotal, &t.Status, &t.Notes); err != nil {
		return core.Transaction{}, err
	}
	d, err := core.ParseDate(txDate)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse transaction date %q: %w", txDate, err)
	}
	t.Date = d
	if instCurrent.Valid && instTotal.Valid {
		t.Installment = &core.Installment{Current: int(instCurrent.Int64), Total: int(instTotal.Int64)}
	}
	return t, nil
}

func (r *Repository) AddMember(ctx context.Context, p core.CreateMemberParams) (string, error) {
	m := p.Member()
	if err := m.Validate(); err != nil {
		return "", err
	}
	m.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO members (id, name, email, avatar, color) VALUES (?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.Email, m.Avatar, m.Color)
	if err != nil {
		return "", fmt.Errorf("insert member: %w", err)
	}
	r.bump()
	return m.ID, nil
}

func (r *Repository) UpdateMember(ctx context.Context, id string, p core.UpdateMemberParams) error {
	var m core.FamilyMember
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, avatar, color FROM members WHERE id = ?`, id).
		Scan(&m.ID, &m.Name, &m.Email, &m.Avatar, &m.Color)
	if errors.Is(err, sql.ErrNoRows) {
		return core.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("load member: %w", err)
	}
	p.Apply(&m)
	if err := m.Validate(); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx,
		`UPDATE members SET name = ?, email = ?, avatar = ?, color = ? WHERE id = ?`,
		m.Name, m.Email, m.Avatar, m.Color, id); err != nil {
		return fmt.Errorf("update member: %w", err)
	}
	r.bump()
	return nil
}

func (r *Repository) DeleteMember(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "members", id)
}

func (r *Repository) AddCategory(ctx context.Context, p core.CreateCategoryParams) (string, error) {
	c := p.Category()
	if err := c.Validate(); err != nil {
		return "", err
	}
	c.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (id, name, tx_type, color, icon) VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Type, c.Color, c.Icon)
	if err != nil {
		return "", fmt.Errorf("insert category: %w", err)
	}
	r.bump()
	return c.ID, nil
}

func (r *Repository) UpdateCategory(ctx context.Context, id string, p core.UpdateCategoryParams) error {
	var c core.Category
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, tx_type, color, icon FROM categories WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.Type, &c.Color, &c.Icon)
	if errors.Is(err, sql.ErrNoRows) {
		return core.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("load category: %w", err)
	}
	p.Apply(&c)
	if err := c.Validate(); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx,
		`UPDATE categories SET name = ?, tx_type = ?, color = ?, icon = ? WHERE id = ?`,
		c.Name, c.Type, c.Color, c.Icon, id); err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	r.bump()
	return nil
}

func (r *Repository) DeleteCategory(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "categories", id)
}

func (r *Repository) AddAccount(ctx context.Context, p core.CreateAccountParams) (string, error) {
	a := p.Account()
	if err := a.Validate(); err != nil {
		return "", err
	}
	a.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (id, name, bank, balance_cents, account_number, color)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.Name, a.Bank, a.Balance.Cents, a.AccountNumber, a.Color)
	if err != nil {
		return "", fmt.Errorf("insert account: %w", err)
	}
	r.bump()
	return a.ID, nil
}

func (r *Repository) UpdateAccount(ctx context.Context, id string, p core.UpdateAccountParams) error {
	var a core.BankAccount
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, bank, balance_cents, account_number, color FROM accounts WHERE id = ?`, id).
		Scan(&a.ID, &a.Name, &a.Bank, &a.Balance.Cents, &a.AccountNumber, &a.Color)
	if errors.Is(err, sql.ErrNoRows) {
		return core.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("load account: %w", err)
	}
	p.Apply(&a)
	if err := a.Validate(); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET name = ?, bank = ?, balance_cents = ?, account_number = ?, color = ?
		 WHERE id = ?`,
		a.Name, a.Bank, a.Balance.Cents, a.AccountNumber, a.Color, id); err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	r.bump()
	return nil
}

func (r *Repository) DeleteAccount(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "accounts", id)
}

func (r *Repository) AddCard(ctx context.Context, p core.CreateCardParams) (string, error) {
	c := p.Card()
	if err := c.Validate(); err != nil {
		return "", err
	}
	c.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO cards (id, name, bank, limit_cents, balance_cents, closing_day, due_day, last_four, color)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Bank, c.Limit.Cents, c.Balance.Cents, c.ClosingDay, c.DueDay, c.LastFour, c.Color)
	if err != nil {
		return "", fmt.Errorf("insert card: %w", err)
	}
	r.bump()
	return c.ID, nil
}

func (r *Repository) UpdateCard(ctx context.Context, id string, p core.UpdateCardParams) error {
	var c core.CreditCard
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, bank, limit_cents, balance_cents, closing_day, due_day, last_four, color
		 FROM cards WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.Bank, &c.Limit.Cents, &c.Balance.Cents,
			&c.ClosingDay, &c.DueDay, &c.LastFour, &c.Color)
	if errors.Is(err, sql.ErrNoRows) {
		return core.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("load card: %w", err)
	}
	p.Apply(&c)
	if err := c.Validate(); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx,
		`UPDATE cards SET name = ?, bank = ?, limit_cents = ?, balance_cents = ?, closing_day = ?,
		        due_day = ?, last_four = ?, color = ? WHERE id = ?`,
		c.Name, c.Bank, c.Limit.Cents, c.Balance.Cents, c.ClosingDay, c.DueDay, c.LastFour, c.Color, id); err != nil {
		return fmt.Errorf("update card: %w", err)
	}
	r.bump()
	return nil
}

func (r *Repository) DeleteCard(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "cards", id)
}

func (r *Repository) AddTransaction(ctx context.Context, p core.CreateTransactionParams) (string, error) {
	t := p.Transaction()
	if err := t.Validate(); err != nil {
		return "", err
	}
	t.ID = uuid.NewString()
	var instCurrent, instTotal any
	if t.Installment != nil {
		instCurrent, instTotal = t.Installment.Current, t.Installment.Total
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions
		 (id, member_id, tx_date, description, amount_cents, tx_type, category_id,
		  account_id, credit_card_id, installment_current, installment_total, status, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.MemberID, t.Date.String(), t.Description, t.Amount.Cents, t.Type, t.CategoryID,
		t.AccountID, t.CreditCardID, instCurrent, instTotal, t.Status, t.Notes)
	if err != nil {
		return "", fmt.Errorf("insert transaction: %w", err)
	}
	r.bump()
	return t.ID, nil
}

func (r *Repository) UpdateTransaction(ctx context.Context, id string, p core.UpdateTransactionParams) error {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, member_id, tx_date, description, amount_cents, tx_type, category_id,
		        account_id, credit_card_id, installment_current, installment_total, status, notes
		 FROM transactions WHERE id = ?`, id)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("load transaction: %w", err)
	}
	p.Apply(&t)
	if err := t.Validate(); err != nil {
		return err
	}
	var instCurrent, instTotal any
	if t.Installment != nil {
		instCurrent, instTotal = t.Installment.Current, t.Installment.Total
	}
	if _, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET member_id = ?, tx_date = ?, description = ?, amount_cents = ?,
		        tx_type = ?, category_id = ?, account_id = ?, credit_card_id = ?,
		        installment_current = ?, installment_total = ?, status = ?, notes = ?
		 WHERE id = ?`,
		t.MemberID, t.Date.String(), t.Description, t.Amount.Cents, t.Type, t.CategoryID,
		t.AccountID, t.CreditCardID, instCurrent, instTotal, t.Status, t.Notes, id); err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	r.bump()
	return nil
}

func (r *Repository) DeleteTransaction(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "transactions", id)
}

func (r *Repository) AddGoal(ctx context.Context, p core.CreateGoalParams) (string, error) {
	g := p.Goal()
	if err := g.Validate(); err != nil {
		return "", err
	}
	g.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO goals (id, name, target_cents, current_cents, deadline, color, icon)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.Name, g.Target.Cents, g.Current.Cents, g.Deadline.String(), g.Color, g.Icon)
	if err != nil {
		return "", fmt.Errorf("insert goal: %w", err)
	}
	r.bump()
	return g.ID, nil
}

func (r *Repository) UpdateGoal(ctx context.Context, id string, p core.UpdateGoalParams) error {
	var g core.Goal
	var deadline string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, target_cents, current_cents, deadline, color, icon FROM goals WHERE id = ?`, id).
		Scan(&g.ID, &g.Name, &g.Target.Cents, &g.Current.Cents, &deadline, &g.Color, &g.Icon)
	if errors.Is(err, sql.ErrNoRows) {
		return core.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("load goal: %w", err)
	}
	if g.Deadline, err = core.ParseDate(deadline); err != nil {
		return fmt.Errorf("parse goal deadline %q: %w", deadline, err)
	}
	p.Apply(&g)
	if err := g.Validate(); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx,
		`UPDATE goals SET name = ?, target_cents = ?, current_cents = ?, deadline = ?, color = ?, icon = ?
		 WHERE id = ?`,
		g.Name, g.Target.Cents, g.Current.Cents, g.Deadline.String(), g.Color, g.Icon, id); err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	r.bump()
	return nil
}

func (r *Repository) DeleteGoal(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "goals", id)
}

// deleteByID removes a row if present. Deleting an absent id is a no-op,
// never an error.
func (r *Repository) deleteByID(ctx context.Context, table, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		r.bump()
	}
	return nil
}
