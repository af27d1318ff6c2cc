package handlers

import (
	"net/http"

	apierrors "github.com/pribylovaa/go-profile-app/internal/errors"
	"github.com/pribylovaa/go-profile-app/internal/models"
)

func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, route, err := h.Service.GetProfile(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, h.sessionResponse(profile, route))
}

func (h *Handlers) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var in models.ProfileDraft
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	profile, route, err := h.Service.CreateProfile(r.Context(), in)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, h.sessionResponse(profile, route))
}

func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var in models.ProfileUpdate
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	profile, route, err := h.Service.UpdateProfile(r.Context(), in)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, h.sessionResponse(profile, route))
}
