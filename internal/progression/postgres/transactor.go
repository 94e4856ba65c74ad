// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Questline Contributors

package postgres

import (
	"context"

	"github.com/samber/oops"

	"github.com/questline/questline/internal/store"
)

// Transactor implements progression.Transactor over a pgx connection pool.
// It stores the active pgx.Tx in context so that repository calls made
// inside the transaction function share one transaction.
type Transactor struct {
	db DB
}

// NewTransactor creates a Transactor backed by the given connection pool.
func NewTransactor(db DB) *Transactor {
	return &Transactor{db: db}
}

// InTransaction begins a transaction, stores it in context, and calls fn.
// If fn returns nil, the transaction is committed. Otherwise it is rolled
// back. Commit-time unique violations are mapped to the conflict sentinel.
func (t *Transactor) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := t.db.Begin(ctx)
	if err != nil {
		return oops.Code("TX_BEGIN_FAILED").Wrap(err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	txCtx := store.WithTx(ctx, tx)
	if err := fn(txCtx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if mapped := mapUniqueViolation(err); mapped != err {
			return mapped
		}
		return oops.Code("TX_COMMIT_FAILED").Wrap(err)
	}
	return nil
}
