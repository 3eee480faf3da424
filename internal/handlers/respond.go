// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"kuzenim/internal/apperr"
)

// message is the body of every error response and of confirmations that
// carry no other payload.
type message struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

// writeError maps err to its status code and writes the public message.
// Internal failures are logged with the full cause; verbose exposes it
// to the caller as well.
func writeError(w http.ResponseWriter, r *http.Request, err error, verbose bool) {
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	} else {
		slog.Debug("request rejected",
			"method", r.Method,
			"path", r.URL.Path,
			"kind", apperr.KindOf(err),
			"error", err,
		)
	}
	writeJSON(w, status, message{Message: apperr.PublicMessage(err, verbose)})
}
