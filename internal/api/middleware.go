// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Questline Contributors

package api

import (
	"context"
	"net/http"
)

// PlayerIDHeader carries the caller's identity, resolved upstream by the
// platform's auth layer.
const PlayerIDHeader = "X-Player-ID"

type playerIDKey struct{}

// RequirePlayerID rejects requests without a player identity and stores the
// identity in the request context for handlers.
func RequirePlayerID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		playerID := r.Header.Get(PlayerIDHeader)
		if playerID == "" {
			writeError(w, http.StatusUnauthorized, "missing "+PlayerIDHeader+" header")
			return
		}
		ctx := context.WithValue(r.Context(), playerIDKey{}, playerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// playerIDFrom returns the player identity stored by RequirePlayerID.
func playerIDFrom(ctx context.Context) string {
	playerID, _ := ctx.Value(playerIDKey{}).(string)
	return playerID
}
