package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/VivianChencwy/bikewatching/config"
	"github.com/VivianChencwy/bikewatching/dataset"
	"github.com/VivianChencwy/bikewatching/source"
)

// ErrNoSnapshot is returned while nothing has been loaded yet
var ErrNoSnapshot = errors.New("no snapshot loaded")

// Server serves the current snapshot. The snapshot can be swapped while serving.
type Server struct {
	cfg      config.AppConfig
	system   config.System
	fetcher  source.Fetcher
	snap     atomic.Pointer[dataset.Snapshot]
	cache    *windowCache
	router   *mux.Router
	upgrader websocket.Upgrader
	httpSrv  *http.Server
}

// New builds a server for sys. f is used by Refresh and may be nil when serving a cached snapshot.
func New(cfg config.AppConfig, sys config.System, f source.Fetcher) *Server {
	s := &Server{
		cfg:     cfg,
		system:  sys,
		fetcher: f,
		cache:   newWindowCache(cfg.Traffic.CacheSize, time.Duration(cfg.Traffic.CacheTTLSeconds)*time.Second),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(withCORS, instrument)

	r.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/api/stations", s.handleStations).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/api/stations/{id}", s.handleStation).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/api/lanes", s.handleLanes).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/api/lanes/{name}", s.handleLane).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/ws", s.handleWebsocket).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	return r
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Handler returns the routed handler
func (s *Server) Handler() http.Handler { return s.router }

// Snapshot returns the snapshot being served, or nil
func (s *Server) Snapshot() *dataset.Snapshot { return s.snap.Load() }

// SetSnapshot swaps in snap and drops cached windows of the previous one
func (s *Server) SetSnapshot(snap *dataset.Snapshot) {
	s.snap.Store(snap)
	s.cache.purge()
	if snap != nil {
		snapshotTrips.Set(float64(len(snap.Trips)))
	}
}

// Refresh reloads every feed of the configured system. The current snapshot is kept on failure.
func (s *Server) Refresh(ctx context.Context) error {
	if s.fetcher == nil {
		return fmt.Errorf("refresh %s: no fetcher configured", s.system.Name)
	}
	snap, err := dataset.Load(ctx, s.fetcher, s.system, s.cfg.Traffic.WindowMinutes)
	if err != nil {
		return fmt.Errorf("refresh %s: %w", s.system.Name, err)
	}
	s.SetSnapshot(snap)
	return nil
}

// RunRefreshLoop calls Refresh every interval until ctx is done
func (s *Server) RunRefreshLoop(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil {
				log.Printf("refresh failed, keeping snapshot: %v", err)
				continue
			}
			log.Printf("refreshed %s snapshot %s", s.system.Name, s.Snapshot().ID)
		}
	}
}

// Run listens on the configured port until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.cfg.Server.Port)
	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	if s.cfg.Server.RefreshIntervalMinutes > 0 {
		go s.RunRefreshLoop(ctx, time.Duration(s.cfg.Server.RefreshIntervalMinutes)*time.Minute)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	log.Printf("server listening on %s", addr)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Printf("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	log.Printf("server shut down successfully")
	return nil
}
