package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/dmarkin/scorestream/internal/pkg/bus"
	"github.com/dmarkin/scorestream/internal/pkg/config"
	"github.com/dmarkin/scorestream/internal/pkg/interfaces"
	"github.com/dmarkin/scorestream/internal/pkg/registry"
	"github.com/dmarkin/scorestream/internal/pkg/search"
)

// Server exposes the aggregation core to the presentation layer: synchronous
// snapshot/feed/search reads and the websocket change-event stream. All reads
// are served from memory; no handler performs a network call.
type Server struct {
	cfg      *config.APIConfig
	registry *registry.Registry
	store    interfaces.FirstPartyStore
	search   *search.Service
	events   *bus.Bus

	srv *http.Server
}

func NewServer(cfg *config.APIConfig, reg *registry.Registry, store interfaces.FirstPartyStore, searchSvc *search.Service, events *bus.Bus) *Server {
	return &Server{
		cfg:      cfg,
		registry: reg,
		store:    store,
		search:   searchSvc,
		events:   events,
	}
}

// Run starts the HTTP server and blocks until ctx is cancelled or the
// listener fails.
func (s *Server) Run(ctx context.Context) error {
	router := s.Router()

	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet},
	})

	s.srv = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           c.Handler(router),
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("API server listening", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("api server: %w", err)
	}
}

// Router builds the route table. Split out for handler tests.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/ping", s.handlePing).Methods(http.MethodGet)
	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/matches", s.handleFeed).Methods(http.MethodGet)
	router.HandleFunc("/matches/{source}", s.handleSnapshot).Methods(http.MethodGet)
	router.HandleFunc("/matches/{source}/{id}", s.handleMatch).Methods(http.MethodGet)
	router.HandleFunc("/search", s.handleSearch).Methods(http.MethodGet)
	router.HandleFunc("/ws", s.handleWebSocket)
	return router
}
