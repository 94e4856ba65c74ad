// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Questline Contributors

package catalog

import "errors"

// ErrNotFound is returned when a catalog definition does not exist.
var ErrNotFound = errors.New("not found")

// ErrInvalidInput is returned when a definition fails validation.
var ErrInvalidInput = errors.New("invalid input")
