package handlers

import (
	"net/http"
	"time"

	"finitefield.org/hanko-docs/internal/httpx"
	mw "finitefield.org/hanko-docs/internal/middleware"
)

var startTime = time.Now()

// health responds with a simple status payload for monitoring and readiness checks.
func health(w http.ResponseWriter, r *http.Request) {
	payload := map[string]any{
		"status":    "ok",
		"uptime":    time.Since(startTime).String(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if resolver, ok := mw.ResolverFromContext(r.Context()); ok {
		payload["locales"] = resolver.Table().Len()
	}
	httpx.WriteJSON(w, http.StatusOK, payload)
}
