package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bookhive/domains/internal/api/request"
	"github.com/bookhive/domains/internal/api/response"
	"github.com/bookhive/domains/internal/core"
)

type APIKey struct {
	svc *core.APIKeyService
}

func NewAPIKey(services *core.Services) *APIKey {
	return &APIKey{svc: services.APIKey}
}

func (h *APIKey) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateAPIKey
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	key, rawKey, err := h.svc.Create(r.Context(), req.Name)
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// The raw key is returned exactly once.
	response.WriteJSON(w, http.StatusCreated, map[string]any{
		"api_key": key,
		"key":     rawKey,
	})
}

func (h *APIKey) List(w http.ResponseWriter, r *http.Request) {
	keys, err := h.svc.List(r.Context())
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.WriteJSON(w, http.StatusOK, keys)
}

func (h *APIKey) Revoke(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.Revoke(r.Context(), id); err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
