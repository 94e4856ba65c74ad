// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Questline Contributors

package progression

import "errors"

// ErrNotFound is returned when a character, quest, or completion the caller
// referenced does not exist (or is not visible to the caller).
var ErrNotFound = errors.New("not found")

// ErrInvalidInput is returned when caller-supplied identifiers fail
// validation.
var ErrInvalidInput = errors.New("invalid input")

// ErrConflict marks a storage uniqueness conflict from two transactions
// racing to create the same row. It stays internal: the service retries the
// transaction and the loser re-reads the winner's row.
var ErrConflict = errors.New("conflict")
