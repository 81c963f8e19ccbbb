package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"github.com/bookhive/domains/internal/api/request"
	"github.com/bookhive/domains/internal/api/response"
	"github.com/bookhive/domains/internal/core"
	"github.com/bookhive/domains/internal/metrics"
	"github.com/bookhive/domains/internal/model"
	"github.com/bookhive/domains/internal/platform"
)

type Domain struct {
	svc      *core.CustomDomainService
	services *core.Services
}

func NewDomain(services *core.Services) *Domain {
	return &Domain{svc: services.Domain, services: services}
}

// writeServiceError maps service-layer errors onto HTTP statuses: unknown
// IDs are 404, precondition failures are 400, missing registrar credentials
// and everything else are 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		response.WriteError(w, http.StatusNotFound, "domain not found")
	case errors.Is(err, core.ErrDNSNotConfigured), errors.Is(err, core.ErrNotRegistered):
		response.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		response.WriteError(w, http.StatusInternalServerError, err.Error())
	}
}

func (h *Domain) ListByBusiness(w http.ResponseWriter, r *http.Request) {
	businessID, err := request.RequireID(chi.URLParam(r, "businessID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	domains, err := h.svc.ListByBusiness(r.Context(), businessID)
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.WriteJSON(w, http.StatusOK, domains)
}

func (h *Domain) Create(w http.ResponseWriter, r *http.Request) {
	businessID, err := request.RequireID(chi.URLParam(r, "businessID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req request.CreateDomain
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	hostname := platform.NormalizeHostname(req.Domain)
	if !platform.IsValidHostname(hostname) {
		response.WriteError(w, http.StatusBadRequest, "invalid hostname")
		return
	}

	now := time.Now()
	d := &model.CustomDomain{
		ID:                   platform.NewID(),
		Domain:               hostname,
		BusinessID:           businessID,
		Status:               model.DomainStatusPending,
		SSLCertificateStatus: model.SSLStatusPending,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := h.svc.Create(r.Context(), d); err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusCreated, d)
}

func (h *Domain) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	d, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, d)
}

type verifyResponse struct {
	Success bool `json:"success"`
	*core.VerifyResult
}

// Verify runs a DNS check for the domain. A failed check is still a 200: the
// outcome is in the body, with configured=false and an operator-readable
// error message.
func (h *Domain) Verify(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.services.Verification.Verify(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	outcome := "failed"
	if result.Configured {
		outcome = "configured"
	}
	metrics.DomainVerifications.WithLabelValues(outcome).Inc()

	response.WriteJSON(w, http.StatusOK, verifyResponse{Success: true, VerifyResult: result})
}

type registerResponse struct {
	Success         bool            `json:"success"`
	Domain          string          `json:"domain"`
	NetlifyDomainID string          `json:"netlify_domain_id"`
	SSLStatus       model.SSLStatus `json:"ssl_status"`
}

func (h *Domain) Register(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	d, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	result, err := h.services.Registration.Register(r.Context(), id)
	if err != nil {
		metrics.DomainRegistrations.WithLabelValues("failed").Inc()
		writeServiceError(w, err)
		return
	}
	metrics.DomainRegistrations.WithLabelValues("success").Inc()

	response.WriteJSON(w, http.StatusOK, registerResponse{
		Success:         true,
		Domain:          d.Domain,
		NetlifyDomainID: result.NetlifyDomainID,
		SSLStatus:       result.SSLStatus,
	})
}

func (h *Domain) CheckSSL(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.services.SSL.Check(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, result)
}

type sweepResponse struct {
	Success bool `json:"success"`
	*core.SweepResult
}

func (h *Domain) SweepSSL(w http.ResponseWriter, r *http.Request) {
	result, err := h.services.SSL.Sweep(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	metrics.SSLSweepChecked.Add(float64(result.Checked))
	for _, o := range result.Results {
		if o.Error != "" {
			metrics.SSLSweepErrors.Inc()
		}
	}

	response.WriteJSON(w, http.StatusOK, sweepResponse{Success: true, SweepResult: result})
}

func (h *Domain) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.services.Removal.Remove(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, result)
}
