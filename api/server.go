// Package api provides the HTTP REST API server for newsvani.
//
// It exposes endpoints for company news analysis, Hindi narration,
// source listing, and WebSocket streaming of run events.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/newsvani/newsvani/internal/config"
	"github.com/newsvani/newsvani/internal/datasource"
	"github.com/newsvani/newsvani/internal/engine"
	"github.com/newsvani/newsvani/internal/narration"
)

// Server is the HTTP API server.
type Server struct {
	router chi.Router
	cfg    *config.Config
	eng    *engine.Engine
	wsHub  *WSHub
}

// NewServer creates a configured API server with all routes and middleware.
func NewServer(cfg *config.Config) (*Server, error) {
	eng := engine.New(
		BuildFetcher(cfg),
		narration.NewClient(narration.Config{
			Endpoint:  cfg.Narration.Endpoint,
			Language:  cfg.Narration.Language,
			ChunkSize: cfg.Narration.ChunkSize,
			Timeout:   time.Duration(cfg.Narration.TimeoutSec) * time.Second,
		}),
		time.Duration(cfg.Analysis.CacheTTL)*time.Second,
	)
	return NewServerWithEngine(cfg, eng), nil
}

// NewServerWithEngine creates a server around an existing engine. Used by
// tests to substitute stub sources.
func NewServerWithEngine(cfg *config.Config, eng *engine.Engine) *Server {
	srv := &Server{
		cfg:   cfg,
		eng:   eng,
		wsHub: NewWSHub(),
	}
	srv.router = srv.buildRouter()
	return srv
}

// BuildFetcher assembles the news sources described by the configuration.
func BuildFetcher(cfg *config.Config) *datasource.Fetcher {
	var sources []datasource.Source

	if len(cfg.Sources.Feeds) > 0 {
		feeds := make([]datasource.Feed, 0, len(cfg.Sources.Feeds))
		for _, f := range cfg.Sources.Feeds {
			feeds = append(feeds, datasource.Feed{Name: f.Name, URL: f.URL})
		}
		sources = append(sources, datasource.NewRSSSourceWithFeeds(feeds))
	} else {
		sources = append(sources, datasource.NewRSSSource())
	}

	if cfg.Sources.Search.Enabled {
		wsCfg := datasource.DefaultWebSearchConfig()
		wsCfg.APIKey = cfg.Sources.Search.APIKey
		wsCfg.EngineID = cfg.Sources.Search.EngineID
		if len(cfg.Sources.Search.FallbackDomains) > 0 {
			wsCfg.FallbackDomains = cfg.Sources.Search.FallbackDomains
		}
		sources = append(sources, datasource.NewWebSearch(wsCfg))
	}

	return datasource.NewFetcher(sources,
		time.Duration(cfg.Fetch.PerSourceTimeoutSec)*time.Second,
		cfg.Fetch.PerSourceLimit)
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe starts the HTTP server with graceful shutdown.
func (s *Server) ListenAndServe(addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start WebSocket hub
	go s.wsHub.Run()

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return httpSrv.Shutdown(ctx)
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	// CORS
	origins := []string{"*"}
	if len(s.cfg.API.CORSOrigins) > 0 {
		origins = s.cfg.API.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", s.handleHealth)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		// Analysis
		r.Get("/news/{company}", s.handleNews)
		r.Post("/analyze", s.handleAnalyze)

		// Narration (audio/mpeg)
		r.Get("/narration/{company}", s.handleNarration)

		// Sources
		r.Get("/sources", s.handleSources)

		// Cache
		r.Delete("/cache/{company}", s.handleInvalidateCache)

		// Configuration
		r.Get("/config/keys", s.handleGetConfigKeys)

		// WebSocket
		r.Get("/ws", s.handleWebSocket)
	})

	return r
}

// ============================================================
// Request / Response types
// ============================================================

// APIResponse is the standard JSON envelope.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// AnalyzeRequest is the body for POST /api/v1/analyze.
type AnalyzeRequest struct {
	Company string `json:"company"`
}

// ============================================================
// Handlers
// ============================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":  "ok",
			"version": "dev",
			"sources": s.eng.Sources(),
		},
	})
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	s.runAnalysis(w, r, chi.URLParam(r, "company"))
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.runAnalysis(w, r, req.Company)
}

// runAnalysis is the shared body of GET /news/{company} and POST /analyze.
func (s *Server) runAnalysis(w http.ResponseWriter, r *http.Request, company string) {
	if company == "" {
		writeError(w, http.StatusBadRequest, "company is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
	defer cancel()

	run, err := s.eng.Analyze(ctx, company)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidCompany) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Broadcast to WebSocket clients
	s.wsHub.Broadcast(WSMessage{
		Type: "analysis_complete",
		Data: map[string]interface{}{
			"company":  run.Company,
			"articles": len(run.Articles),
			"verdict":  run.Report.Verdict,
		},
	})

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    run,
	})
}

func (s *Server) handleNarration(w http.ResponseWriter, r *http.Request) {
	company := chi.URLParam(r, "company")
	if company == "" {
		writeError(w, http.StatusBadRequest, "company is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
	defer cancel()

	audio, err := s.eng.Narrate(ctx, company)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrInvalidCompany):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, narration.ErrNarration):
			writeError(w, http.StatusBadGateway, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	// Insufficient data: narration was skipped, report the condition as JSON.
	if len(audio) == 0 {
		writeJSON(w, http.StatusOK, APIResponse{
			Success: true,
			Data:    map[string]string{"company": company, "narration": "skipped: insufficient data"},
		})
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.WriteHeader(http.StatusOK)
	w.Write(audio) //nolint:errcheck
}

func (s *Server) handleSources(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    s.eng.Sources(),
	})
}

func (s *Server) handleInvalidateCache(w http.ResponseWriter, r *http.Request) {
	company := chi.URLParam(r, "company")
	if company == "" {
		writeError(w, http.StatusBadRequest, "company is required")
		return
	}
	s.eng.InvalidateCache(company)
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    map[string]string{"invalidated": company},
	})
}

func (s *Server) handleGetConfigKeys(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    config.CheckAPIKeys(s.cfg),
	})
}

// ============================================================
// Helpers
// ============================================================

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, APIResponse{
		Success: false,
		Error:   msg,
	})
}

// ============================================================
// WebSocket Hub
// ============================================================

// WSMessage is a message sent over WebSocket connections.
type WSMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// WSHub manages WebSocket connections and message broadcasting.
type WSHub struct {
	mu         sync.RWMutex
	clients    map[*WSClient]bool
	broadcast  chan WSMessage
	register   chan *WSClient
	unregister chan *WSClient
}

// WSClient represents a single WebSocket connection.
type WSClient struct {
	hub  *WSHub
	send chan WSMessage
}

// NewWSHub creates a new WebSocket hub.
func NewWSHub() *WSHub {
	return &WSHub{
		clients:    make(map[*WSClient]bool),
		broadcast:  make(chan WSMessage, 256),
		register:   make(chan *WSClient),
		unregister: make(chan *WSClient),
	}
}

// Run starts the hub event loop.
func (h *WSHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
		case msg := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- msg:
				default:
					// Slow client; drop it from the hub. The send
					// channel stays open so the client's pumps can
					// never hit a closed channel; it is closed only
					// on Unregister, after the read pump has exited.
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast sends a message to all connected WebSocket clients.
func (h *WSHub) Broadcast(msg WSMessage) {
	select {
	case h.broadcast <- msg:
	default:
		// Drop message if broadcast channel is full
	}
}

// ClientCount returns the number of connected WebSocket clients.
func (h *WSHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Register adds a client to the hub.
func (h *WSHub) Register(client *WSClient) {
	h.register <- client
}

// Unregister removes a client from the hub.
func (h *WSHub) Unregister(client *WSClient) {
	h.unregister <- client
}
