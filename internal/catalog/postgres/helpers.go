// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Questline Contributors

// Package postgres provides PostgreSQL implementations of the catalog
// repositories.
package postgres

import (
	"github.com/questline/questline/internal/store"
)

// DB abstracts the pgx connection pool so repositories can run against a
// real pool or a mock. Catalog reads are reference data and do not join
// progression transactions.
type DB = store.Querier
