package handlers

import (
	"net/http"

	apierrors "github.com/pribylovaa/go-profile-app/internal/errors"
	"github.com/pribylovaa/go-profile-app/internal/models"
)

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var in models.LoginRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	profile, route, err := h.Service.Login(r.Context(), in.Username, in.Email, in.Password)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, h.sessionResponse(profile, route))
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var in models.RegisterRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	route, err := h.Service.Register(r.Context(), in.Email, in.Username, in.Password)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, h.sessionResponse(h.Service.CurrentProfile(), route))
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	route, err := h.Service.Logout(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, h.sessionResponse(nil, route))
}
