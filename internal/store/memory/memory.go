// Package memory is the canonical in-process backend: six slices behind a
// single mutex, copy-on-read snapshots, uuid ids. All data is volatile and
// lives exactly as long as the hosting session.
package memory

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"bilancio/internal/core"
)

type Store struct {
	mu  sync.Mutex
	rev atomic.Int64

	members      []core.FamilyMember
	categories   []core.Category
	accounts     []core.BankAccount
	cards        []core.CreditCard
	transactions []core.Transaction
	goals        []core.Goal
}

func New() *Store {
	return &Store{}
}

func newID() string {
	return uuid.NewString()
}

// Snapshot returns copies of every collection. Nested pointers
// (Transaction.Installment) are copied too, so callers can never reach
// back into store-owned memory.
func (s *Store) Snapshot(_ context.Context) (core.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := core.Snapshot{
		Members:      append([]core.FamilyMember(nil), s.members...),
		Categories:   append([]core.Category(nil), s.categories...),
		Accounts:     append([]core.BankAccount(nil), s.accounts...),
		Cards:        append([]core.CreditCard(nil), s.cards...),
		Transactions: append([]core.Transaction(nil), s.transactions...),
		Goals:        append([]core.Goal(nil), s.goals...),
	}
	for i, t := range snap.Transactions {
		if t.Installment != nil {
			inst := *t.Installment
			snap.Transactions[i].Installment = &inst
		}
	}
	return snap, nil
}

func (s *Store) Revision() int64 {
	return s.rev.Load()
}

func (s *Store) bump() {
	s.rev.Add(1)
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) AddMember(_ context.Context, p core.CreateMemberParams) (string, error) {
	m := p.Member()
	if err := m.Validate(); err != nil {
		return "", err
	}
	m.ID = newID()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members = append(s.members, m)
	s.bump()
	return m.ID, nil
}

func (s *Store) UpdateMember(_ context.Context, id string, p core.UpdateMemberParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.members {
		if s.members[i].ID == id {
			updated := s.members[i]
			p.Apply(&updated)
			if err := updated.Validate(); err != nil {
				return err
			}
			s.members[i] = updated
			s.bump()
			return nil
		}
	}
	return core.ErrNotFound
}

func (s *Store) DeleteMember(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.members {
		if s.members[i].ID == id {
			s.members = append(s.members[:i], s.members[i+1:]...)
			s.bump()
			return nil
		}
	}
	return nil
}

func (s *Store) AddCategory(_ context.Context, p core.CreateCategoryParams) (string, error) {
	c := p.Category()
	if err := c.Validate(); err != nil {
		return "", err
	}
	c.ID = newID()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = append(s.categories, c)
	s.bump()
	return c.ID, nil
}

func (s *Store) UpdateCategory(_ context.Context, id string, p core.UpdateCategoryParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.categories {
		if s.categories[i].ID == id {
			updated := s.categories[i]
			p.Apply(&updated)
			if err := updated.Validate(); err != nil {
				return err
			}
			s.categories[i] = updated
			s.bump()
			return nil
		}
	}
	return core.ErrNotFound
}

func (s *Store) DeleteCategory(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.categories {
		if s.categories[i].ID == id {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			s.bump()
			return nil
		}
	}
	return nil
}

func (s *Store) AddAccount(_ context.Context, p core.CreateAccountParams) (string, error) {
	a := p.Account()
	if err := a.Validate(); err != nil {
		return "", err
	}
	a.ID = newID()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = append(s.accounts, a)
	s.bump()
	return a.ID, nil
}

func (s *Store) UpdateAccount(_ context.Context, id string, p core.UpdateAccountParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.accounts {
		if s.accounts[i].ID == id {
			updated := s.accounts[i]
			p.Apply(&updated)
			if err := updated.Validate(); err != nil {
				return err
			}
			s.accounts[i] = updated
			s.bump()
			return nil
		}
	}
	return core.ErrNotFound
}

func (s *Store) DeleteAccount(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.accounts {
		if s.accounts[i].ID == id {
			s.accounts = append(s.accounts[:i], s.accounts[i+1:]...)
			s.bump()
			return nil
		}
	}
	return nil
}

func (s *Store) AddCard(_ context.Context, p core.CreateCardParams) (string, error) {
	c := p.Card()
	if err := c.Validate(); err != nil {
		return "", err
	}
	c.ID = newID()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cards = append(s.cards, c)
	s.bump()
	return c.ID, nil
}

func (s *Store) UpdateCard(_ context.Context, id string, p core.UpdateCardParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cards {
		if s.cards[i].ID == id {
			updated := s.cards[i]
			p.Apply(&updated)
			if err := updated.Validate(); err != nil {
				return err
			}
			s.cards[i] = updated
			s.bump()
			return nil
		}
	}
	return core.ErrNotFound
}

func (s *Store) DeleteCard(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cards {
		if s.cards[i].ID == id {
			s.cards = append(s.cards[:i], s.cards[i+1:]...)
			s.bump()
			return nil
		}
	}
	return nil
}

func (s *Store) AddTransaction(_ context.Context, p core.CreateTransactionParams) (string, error) {
	t := p.Transaction()
	if err := t.Validate(); err != nil {
		return "", err
	}
	t.ID = newID()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append(s.transactions, t)
	s.bump()
	return t.ID, nil
}

func (s *Store) UpdateTransaction(_ context.Context, id string, p core.UpdateTransactionParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.transactions {
		if s.transactions[i].ID == id {
			updated := s.transactions[i]
			p.Apply(&updated)
			if err := updated.Validate(); err != nil {
				return err
			}
			s.transactions[i] = updated
			s.bump()
			return nil
		}
	}
	return core.ErrNotFound
}

func (s *Store) DeleteTransaction(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.transactions {
		if s.transactions[i].ID == id {
			s.transactions = append(s.transactions[:i], s.transactions[i+1:]...)
			s.bump()
			return nil
		}
	}
	return nil
}

func (s *Store) AddGoal(_ context.Context, p core.CreateGoalParams) (string, error) {
	g := p.Goal()
	if err := g.Validate(); err != nil {
		return "", err
	}
	g.ID = newID()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goals = append(s.goals, g)
	s.bump()
	return g.ID, nil
}

func (s *Store) UpdateGoal(_ context.Context, id string, p core.UpdateGoalParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.goals {
		if s.goals[i].ID == id {
			updated := s.goals[i]
			p.Apply(&updated)
			if err := updated.Validate(); err != nil {
				return err
			}
			s.goals[i] = updated
			s.bump()
			return nil
		}
	}
	return core.ErrNotFound
}

func (s *Store) DeleteGoal(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.goals {
		if s.goals[i].ID == id {
			s.goals = append(s.goals[:i], s.goals[i+1:]...)
			s.bump()
			return nil
		}
	}
	return nil
}
