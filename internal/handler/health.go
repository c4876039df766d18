package handler

import "net/http"

// Health is a liveness probe endpoint.
// Returns 200 OK if the daemon is running. It deliberately does not check
// the remote store: the feed stays interactive on stale data even when
// every network call is failing.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
