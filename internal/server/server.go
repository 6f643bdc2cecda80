// Package server exposes the timeline engine over HTTP.
//
// Endpoints:
//
//	GET    /v1/healthz                    liveness probe
//	POST   /v1/layout                     compute a layout from a posted day sheet
//	GET    /v1/daysheets/{date}           fetch a stored day sheet
//	PUT    /v1/daysheets/{date}           store a day sheet
//	DELETE /v1/daysheets/{date}           remove a day sheet
//	GET    /v1/daysheets/{date}/layout    compute the layout for a stored sheet
//
// Layouts are cached under a hash of their inputs; cache failures degrade
// to recomputation, never to request failure.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/KyleKincer/tableyeah/pkg/cache"
	"github.com/KyleKincer/tableyeah/pkg/store"
	"github.com/KyleKincer/tableyeah/pkg/timeline"
)

// Server holds the shared state for all handlers.
type Server struct {
	logger *log.Logger
	cache  cache.Cache
	store  store.Store
	policy timeline.TurnTimePolicy
	window timeline.ServiceWindow
}

// New creates a server. The cache and store may be Null/Memory
// implementations for single-process use.
func New(logger *log.Logger, c cache.Cache, s store.Store, policy timeline.TurnTimePolicy, window timeline.ServiceWindow) *Server {
	return &Server{
		logger: logger,
		cache:  c,
		store:  s,
		policy: policy,
		window: window,
	}
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.logRequests)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/healthz", s.handleHealthz)
		r.Post("/layout", s.handleComputeLayout)
		r.Route("/daysheets/{date}", func(r chi.Router) {
			r.Get("/", s.handleGetDaySheet)
			r.Put("/", s.handlePutDaySheet)
			r.Delete("/", s.handleDeleteDaySheet)
			r.Get("/layout", s.handleDaySheetLayout)
		})
	})
	return r
}

// ListenAndServe runs the server until the context is cancelled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	s.logger.Info("listening", "addr", addr)
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
