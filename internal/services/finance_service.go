// Package services orchestrates the entity store, the filter state and
// the optional AMQP change feed behind a single facade consumed by the
// HTTP layer.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"bilancio/internal/amqp"
	"bilancio/internal/core"
	"bilancio/internal/store"
)

// FinanceService wraps a store backend. Every successful mutation
// publishes a best-effort change event; a broken or absent AMQP client
// never fails the mutation itself.
type FinanceService struct {
	store   store.Store
	events  *amqp.Client
	filters *FilterState
}

func NewFinanceService(st store.Store, events *amqp.Client) *FinanceService {
	now := time.Now().UTC()
	return &FinanceService{
		store:   st,
		events:  events,
		filters: NewFilterState(core.Date{Time: now}),
	}
}

// Filters exposes the filter state container.
func (s *FinanceService) Filters() *FilterState {
	return s.filters
}

// Snapshot returns a read-only copy of all collections.
func (s *FinanceService) Snapshot(ctx context.Context) (core.Snapshot, error) {
	return s.store.Snapshot(ctx)
}

// Revision mirrors the store revision for cache keying.
func (s *FinanceService) Revision() int64 {
	return s.store.Revision()
}

// FilteredTransactions applies the active filter to the current snapshot.
// Ordering follows the store; callers sort for presentation.
func (s *FinanceService) FilteredTransactions(ctx context.Context) ([]core.Transaction, error) {
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	return snap.FilteredTransactions(s.filters.Filter()), nil
}

// Overview computes the dashboard headline figures for the active filter.
func (s *FinanceService) Overview(ctx context.Context) (core.Overview, error) {
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return core.Overview{}, fmt.Errorf("snapshot: %w", err)
	}
	return snap.BuildOverview(s.filters.Filter()), nil
}

func (s *FinanceService) AddMember(ctx context.Context, p core.CreateMemberParams) (string, error) {
	id, err := s.store.AddMember(ctx, p)
	if err != nil {
		return "", err
	}
	s.publish(ctx, amqp.EntityMember, id, amqp.OpCreate)
	return id, nil
}

func (s *FinanceService) UpdateMember(ctx context.Context, id string, p core.UpdateMemberParams) error {
	if err := s.store.UpdateMember(ctx, id, p); err != nil {
		return err
	}
	s.publish(ctx, amqp.EntityMember, id, amqp.OpUpdate)
	return nil
}

func (s *FinanceService) DeleteMember(ctx context.Context, id string) error {
	if err := s.store.DeleteMember(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, amqp.EntityMember, id, amqp.OpDelete)
	return nil
}

func (s *FinanceService) AddCategory(ctx context.Context, p core.CreateCategoryParams) (string, error) {
	id, err := s.store.AddCategory(ctx, p)
	if err != nil {
		return "", err
	}
	s.publish(ctx, amqp.EntityCategory, id, amqp.OpCreate)
	return id, nil
}

func (s *FinanceService) UpdateCategory(ctx context.Context, id string, p core.UpdateCategoryParams) error {
	if err := s.store.UpdateCategory(ctx, id, p); err != nil {
		return err
	}
	s.publish(ctx, amqp.EntityCategory, id, amqp.OpUpdate)
	return nil
}

func (s *FinanceService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.store.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, amqp.EntityCategory, id, amqp.OpDelete)
	return nil
}

func (s *FinanceService) AddAccount(ctx context.Context, p core.CreateAccountParams) (string, error) {
	id, err := s.store.AddAccount(ctx, p)
	if err != nil {
		return "", err
	}
	s.publish(ctx, amqp.EntityAccount, id, amqp.OpCreate)
	return id, nil
}

func (s *FinanceService) UpdateAccount(ctx context.Context, id string, p core.UpdateAccountParams) error {
	if err := s.store.UpdateAccount(ctx, id, p); err != nil {
		return err
	}
	s.publish(ctx, amqp.EntityAccount, id, amqp.OpUpdate)
	return nil
}

func (s *FinanceService) DeleteAccount(ctx context.Context, id string) error {
	if err := s.store.DeleteAccount(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, amqp.EntityAccount, id, amqp.OpDelete)
	return nil
}

func (s *FinanceService) AddCard(ctx context.Context, p core.CreateCardParams) (string, error) {
	id, err := s.store.AddCard(ctx, p)
	if err != nil {
		return "", err
	}
	s.publish(ctx, amqp.EntityCard, id, amqp.OpCreate)
	return id, nil
}

func (s *FinanceService) UpdateCard(ctx context.Context, id string, p core.UpdateCardParams) error {
	if err := s.store.UpdateCard(ctx, id, p); err != nil {
		return err
	}
	s.publish(ctx, amqp.EntityCard, id, amqp.OpUpdate)
	return nil
}

func (s *FinanceService) DeleteCard(ctx context.Context, id string) error {
	if err := s.store.DeleteCard(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, amqp.EntityCard, id, amqp.OpDelete)
	return nil
}

func (s *FinanceService) AddTransaction(ctx context.Context, p core.CreateTransactionParams) (string, error) {
	id, err := s.store.AddTransaction(ctx, p)
	if err != nil {
		return "", err
	}
	s.publish(ctx, amqp.EntityTransaction, id, amqp.OpCreate)
	return id, nil
}

func (s *FinanceService) UpdateTransaction(ctx context.Context, id string, p core.UpdateTransactionParams) error {
	if err := s.store.UpdateTransaction(ctx, id, p); err != nil {
		return err
	}
	s.publish(ctx, amqp.EntityTransaction, id, amqp.OpUpdate)
	return nil
}

func (s *FinanceService) DeleteTransaction(ctx context.Context, id string) error {
	if err := s.store.DeleteTransaction(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, amqp.EntityTransaction, id, amqp.OpDelete)
	return nil
}

func (s *FinanceService) AddGoal(ctx context.Context, p core.CreateGoalParams) (string, error) {
	id, err := s.store.AddGoal(ctx, p)
	if err != nil {
		return "", err
	}
	s.publish(ctx, amqp.EntityGoal, id, amqp.OpCreate)
	return id, nil
}

func (s *FinanceService) UpdateGoal(ctx context.Context, id string, p core.UpdateGoalParams) error {
	if err := s.store.UpdateGoal(ctx, id, p); err != nil {
		return err
	}
	s.publish(ctx, amqp.EntityGoal, id, amqp.OpUpdate)
	return nil
}

func (s *FinanceService) DeleteGoal(ctx context.Context, id string) error {
	if err := s.store.DeleteGoal(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, amqp.EntityGoal, id, amqp.OpDelete)
	return nil
}

func (s *FinanceService) publish(ctx context.Context, entity, id, op string) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishEntityChange(ctx, entity, id, op); err != nil {
		// The mutation already succeeded; losing the event is acceptable.
		slog.ErrorContext(ctx, "Failed to publish entity change",
			"entity", entity, "id", id, "op", op, "error", err)
	}
}

// Close closes the store and the AMQP connection.
func (s *FinanceService) Close() error {
	var errs []error

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("store: %w", err))
		}
	}
	if s.events != nil {
		if err := s.events.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close finance service: %v", errs)
	}
	return nil
}
