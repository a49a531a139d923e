package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/howardmhl/TabletopAndBottoms/internal/coordinator"
)

// Server holds the HTTP server and its dependencies.
type Server struct {
	router      *chi.Mux
	coordinator *coordinator.Coordinator
	sse         *SSEHub
	log         *logrus.Logger
}

// NewServer creates a new HTTP server.
func NewServer(coord *coordinator.Coordinator, log *logrus.Logger) *Server {
	s := &Server{
		router:      chi.NewRouter(),
		coordinator: coord,
		sse:         NewSSEHub(log),
		log:         log,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := s.router

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Get("/healthz", s.handleHealthz)

	// SSE endpoint
	r.Get("/events", s.handleSSE)

	r.Route("/api", func(r chi.Router) {
		r.Get("/snapshot", s.handleSnapshot)
		r.Get("/leaderboard", s.handleLeaderboard)
		r.Get("/games", s.handleGames)
		r.Get("/standings", s.handleStandings)
		r.Get("/history", s.handleHistory)
		r.Get("/players", s.handlePlayers)
		r.Get("/campaign", s.handleCampaign)
		r.Post("/refresh", s.handleRefresh)
		r.Post("/select", s.handleSelect)
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// StartSSE starts the SSE hub goroutine.
func (s *Server) StartSSE(events <-chan coordinator.Event) {
	go s.sse.Run(events)
}

func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	s.sse.HandleConnection(w, r)
}
