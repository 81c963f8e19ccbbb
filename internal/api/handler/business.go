package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bookhive/domains/internal/api/request"
	"github.com/bookhive/domains/internal/api/response"
	"github.com/bookhive/domains/internal/core"
	"github.com/bookhive/domains/internal/model"
	"github.com/bookhive/domains/internal/platform"
)

type Business struct {
	svc *core.BusinessService
}

func NewBusiness(services *core.Services) *Business {
	return &Business{svc: services.Business}
}

func (h *Business) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBusiness
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	now := time.Now()
	b := &model.Business{
		ID:        platform.NewID(),
		Name:      req.Name,
		Subdomain: req.Subdomain,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.svc.Create(r.Context(), b); err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusCreated, b)
}

func (h *Business) List(w http.ResponseWriter, r *http.Request) {
	businesses, err := h.svc.List(r.Context())
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.WriteJSON(w, http.StatusOK, businesses)
}

func (h *Business) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	b, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		response.WriteError(w, http.StatusNotFound, err.Error())
		return
	}
	response.WriteJSON(w, http.StatusOK, b)
}

func (h *Business) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
