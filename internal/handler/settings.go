package handler

import (
	"errors"
	"net/http"

	"github.com/confessd-dev/confessd/internal/localstate"
	internal_errors "github.com/confessd-dev/confessd/shared/errors"
	"github.com/confessd-dev/confessd/shared/logger"
	"github.com/confessd-dev/confessd/shared/utils"
)

const defaultTheme = "light"

type themeJson struct {
	Theme string `json:"theme"`
}

// GetTheme returns the persisted theme preference, defaulting to light when
// nothing is stored or storage is unavailable. Storage trouble is logged
// only; the request never fails because of it.
func (h *Handler) GetTheme(w http.ResponseWriter, r *http.Request) {
	theme, err := h.state.Get(localstate.KeyTheme)
	if err != nil {
		if !errors.Is(err, localstate.ErrNotFound) {
			logger.Log.Warn("theme read failed, serving default", "error", err)
		}
		theme = defaultTheme
	}
	if theme != "light" && theme != "dark" {
		theme = defaultTheme
	}
	utils.WriteJSON(w, http.StatusOK, themeJson{Theme: theme})
}

// PutTheme persists the theme preference. A write failure degrades silently:
// the preference just will not survive a restart.
func (h *Handler) PutTheme(w http.ResponseWriter, r *http.Request) {
	var body themeJson
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	if body.Theme != "light" && body.Theme != "dark" {
		utils.WriteErrorAndStatusCode(w, &internal_errors.ErrorWithStatusCode{Message: "Theme must be light or dark", StatusCode: 400})
		return
	}

	if err := h.state.Set(localstate.KeyTheme, body.Theme); err != nil {
		logger.Log.Warn("theme write failed, preference will not persist", "error", err)
	}
	utils.WriteJSON(w, http.StatusOK, body)
}

// GetIdentity returns the device's anonymous identity triple.
func (h *Handler) GetIdentity(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.identity.GetOrCreate())
}
