package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	temporalclient "go.temporal.io/sdk/client"

	"github.com/bookhive/domains/internal/api/handler"
	mw "github.com/bookhive/domains/internal/api/middleware"
	"github.com/bookhive/domains/internal/config"
	"github.com/bookhive/domains/internal/core"
	"github.com/bookhive/domains/internal/doh"
	"github.com/bookhive/domains/internal/netlify"
)

type Server struct {
	router         chi.Router
	logger         zerolog.Logger
	services       *core.Services
	pool           *pgxpool.Pool
	temporalClient temporalclient.Client
	cfg            *config.Config
}

func NewServer(logger zerolog.Logger, pool *pgxpool.Pool, temporalClient temporalclient.Client, cfg *config.Config) *Server {
	resolver := doh.NewClient(cfg.DNSResolverURL)

	var registrar core.Registrar
	if cfg.RegistrarConfigured() {
		registrar = netlify.NewClient(cfg.NetlifyAPIBaseURL, cfg.NetlifyAPIToken, cfg.NetlifySiteID)
	} else {
		logger.Warn().Msg("netlify credentials not configured, registrar operations disabled")
	}

	services := core.NewServices(pool, temporalClient, resolver, registrar, cfg.ExpectedCNAMETarget)

	s := &Server{
		router:         chi.NewRouter(),
		logger:         logger,
		services:       services,
		pool:           pool,
		temporalClient: temporalClient,
		cfg:            cfg,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(mw.RequestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(mw.CORS)
	s.router.Use(mw.Metrics)
}

func (s *Server) setupRoutes() {
	s.router.Handle("/metrics", promhttp.Handler())

	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/readyz", s.handleReadyz)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.Auth(s.pool))

		business := handler.NewBusiness(s.services)
		r.Get("/businesses", business.List)
		r.Post("/businesses", business.Create)
		r.Get("/businesses/{id}", business.Get)
		r.Delete("/businesses/{id}", business.Delete)

		domain := handler.NewDomain(s.services)
		r.Get("/businesses/{businessID}/domains", domain.ListByBusiness)
		r.Post("/businesses/{businessID}/domains", domain.Create)
		r.Get("/domains/{id}", domain.Get)
		r.Post("/domains/{id}/verify", domain.Verify)
		r.Post("/domains/{id}/register", domain.Register)
		r.Post("/domains/{id}/ssl-check", domain.CheckSSL)
		r.Post("/domains/ssl-check", domain.SweepSSL)
		r.Delete("/domains/{id}", domain.Remove)

		apiKey := handler.NewAPIKey(s.services)
		r.Get("/api-keys", apiKey.List)
		r.Post("/api-keys", apiKey.Create)
		r.Delete("/api-keys/{id}", apiKey.Revoke)
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	checks := map[string]string{}
	healthy := true

	if err := s.pool.Ping(ctx); err != nil {
		checks["db"] = err.Error()
		healthy = false
	} else {
		checks["db"] = "ok"
	}

	if _, err := s.temporalClient.CheckHealth(ctx, &temporalclient.CheckHealthRequest{}); err != nil {
		checks["temporal"] = err.Error()
		healthy = false
	} else {
		checks["temporal"] = "ok"
	}

	w.Header().Set("Content-Type", "application/json")
	if healthy {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(checks)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
