package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/confessd-dev/confessd/shared/utils"
)

// CreateConfession validates and submits a new confession. Validation
// failures come back synchronously with an explicit message; an insert
// failure maps to 502 so the client keeps the composed text for retry.
func (h *Handler) CreateConfession(w http.ResponseWriter, r *http.Request) {
	type bodyJson struct {
		Text string `validate:"required" json:"text"`
		Tag  string `json:"tag"`
	}
	var body bodyJson
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	post, err := h.compose.Submit(r.Context(), body.Text, body.Tag)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, h.toFeedPost(post))
}

// React records one reaction click. Always 202 on a known kind: the local
// increment is immediate and the durable write is fire-and-forget, so there
// is nothing synchronous left to fail. A miss on an unknown post id is a
// logged no-op upstream.
func (h *Handler) React(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	kind := chi.URLParam(r, "kind")

	if err := h.reactions.React(r.Context(), id, kind); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}
