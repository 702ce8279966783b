// Package store defines the ports of the entity store. Backends (native
// memory, session-scoped SQLite) implement the same contract so the rest
// of the app never knows which one is active.
package store

import (
	"context"

	"bilancio/internal/core"
)

type (
	// SnapshotReader exposes the canonical collections as copies. Callers
	// may hold and iterate a snapshot without any coordination with
	// concurrent writers.
	SnapshotReader interface {
		Snapshot(ctx context.Context) (core.Snapshot, error)

		// Revision increments on every successful mutation. It keys
		// derived-value caches: equal revisions imply an identical store.
		Revision() int64
	}

	MemberWriter interface {
		AddMember(ctx context.Context, p core.CreateMemberParams) (string, error)
		UpdateMember(ctx context.Context, id string, p core.UpdateMemberParams) error
		DeleteMember(ctx context.Context, id string) error
	}

	CategoryWriter interface {
		AddCategory(ctx context.Context, p core.CreateCategoryParams) (string, error)
		UpdateCategory(ctx context.Context, id string, p core.UpdateCategoryParams) error
		DeleteCategory(ctx context.Context, id string) error
	}

	AccountWriter interface {
		AddAccount(ctx context.Context, p core.CreateAccountParams) (string, error)
		UpdateAccount(ctx context.Context, id string, p core.UpdateAccountParams) error
		DeleteAccount(ctx context.Context, id string) error
	}

	CardWriter interface {
		AddCard(ctx context.Context, p core.CreateCardParams) (string, error)
		UpdateCard(ctx context.Context, id string, p core.UpdateCardParams) error
		DeleteCard(ctx context.Context, id string) error
	}

	TransactionWriter interface {
		AddTransaction(ctx context.Context, p core.CreateTransactionParams) (string, error)
		UpdateTransaction(ctx context.Context, id string, p core.UpdateTransactionParams) error
		DeleteTransaction(ctx context.Context, id string) error
	}

	GoalWriter interface {
		AddGoal(ctx context.Context, p core.CreateGoalParams) (string, error)
		UpdateGoal(ctx context.Context, id string, p core.UpdateGoalParams) error
		DeleteGoal(ctx context.Context, id string) error
	}

	// Store is the full mutation and read surface of a backend.
	//
	// Mutation semantics, identical across backends:
	//   - Add validates the payload, assigns a fresh opaque id and returns it.
	//   - Update merges the non-nil fields; an absent id returns
	//     core.ErrNotFound.
	//   - Delete is silently idempotent.
	//   - No operation cascades across collections: deleting a category,
	//     account or card leaves referencing transactions dangling, to be
	//     resolved at read time.
	Store interface {
		SnapshotReader
		MemberWriter
		CategoryWriter
		AccountWriter
		CardWriter
		TransactionWriter
		GoalWriter

		Close() error
	}
)
