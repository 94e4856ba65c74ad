// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Questline Contributors

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/questline/questline/internal/catalog"
	"github.com/questline/questline/internal/progression"
)

const maxBodyBytes = 1 << 20 // 1 MiB

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON serializes v with the given status. Encoding failures are
// ignored; the status line is already on the wire.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // response is already committed
		json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// respondError maps domain errors onto HTTP statuses. Unrecognized errors
// become an opaque 500 and are logged with their full chain.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, progression.ErrNotFound), errors.Is(err, catalog.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, progression.ErrInvalidInput), errors.Is(err, catalog.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeJSON reads and validates a request body into v. The returned error
// is already mapped to a 400 when written through respondError.
func (h *Handler) decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return oops.Code("BODY_INVALID").Wrapf(progression.ErrInvalidInput, "malformed request body: %v", err)
	}
	if err := h.validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return oops.Code("BODY_INVALID").Wrapf(progression.ErrInvalidInput, "validation failed: %v", verrs)
		}
		return oops.Code("BODY_INVALID").Wrap(err)
	}
	return nil
}

// idParam parses a positive int64 URL parameter.
func idParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, oops.Code("ID_INVALID").
			With("param", name).
			With("value", raw).
			Wrap(progression.ErrInvalidInput)
	}
	return id, nil
}

// ulidParam parses a ULID URL parameter.
func ulidParam(r *http.Request, name string) (ulid.ULID, error) {
	raw := chi.URLParam(r, name)
	id, err := ulid.Parse(raw)
	if err != nil {
		return ulid.ULID{}, oops.Code("ID_INVALID").
			With("param", name).
			With("value", raw).
			Wrap(progression.ErrInvalidInput)
	}
	return id, nil
}
