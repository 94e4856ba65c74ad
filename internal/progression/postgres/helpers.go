// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Questline Contributors

// Package postgres provides PostgreSQL implementations of the progression
// repositories and transactor.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"github.com/questline/questline/internal/progression"
	"github.com/questline/questline/internal/store"
)

// DB is the pool abstraction shared with the store package.
type DB = store.DB

// engine returns the transaction stored in ctx, falling back to db.
func engine(ctx context.Context, db DB) store.Querier {
	return store.Engine(ctx, db)
}

// mapUniqueViolation converts a unique constraint violation into the
// progression conflict sentinel so the service layer can retry. Other errors
// pass through unchanged.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return oops.Code("UNIQUE_VIOLATION").
			With("constraint", pgErr.ConstraintName).
			Wrap(progression.ErrConflict)
	}
	return err
}
