package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/SaiPhaniAnirudh/invoice-manager/config"
	"github.com/SaiPhaniAnirudh/invoice-manager/internal/events"
	"github.com/SaiPhaniAnirudh/invoice-manager/internal/handlers"
	"github.com/SaiPhaniAnirudh/invoice-manager/internal/services"
	"github.com/SaiPhaniAnirudh/invoice-manager/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	publisher  events.Publisher
}

// New constructs a Server with basic middleware and defaults. It seeds the
// demo account into an empty data directory before accepting traffic.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	jwtSecret := strings.TrimSpace(cfg.JWTSecret)
	if jwtSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	userRepo := store.NewUserRepository(cfg.DataDir)
	clientRepo := store.NewClientRepository(cfg.DataDir)
	invoiceRepo := store.NewInvoiceRepository(cfg.DataDir)

	publisher, err := events.NewPublisher(ctx, cfg.Events)
	if err != nil {
		return nil, err
	}

	userService := services.NewUserService(userRepo)
	clientService := services.NewClientService(clientRepo)
	invoiceService := services.NewInvoiceService(invoiceRepo, clientService, publisher)
	dashboardService := services.NewDashboardService(clientRepo, invoiceRepo)

	if err := userService.EnsureSeedUser(ctx); err != nil {
		if publisher != nil {
			_ = publisher.Close()
		}
		return nil, fmt.Errorf("seed user: %w", err)
	}

	authMiddleware := handlers.RequireAuth(jwtSecret)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Get("/healthz", handlers.Healthz)
	router.Route("/auth", func(r chi.Router) {
		handlers.AuthRouter(r, userService, jwtSecret)
	})
	router.Route("/clients", func(r chi.Router) {
		r.Use(authMiddleware)
		handlers.ClientRouter(r, clientService)
	})
	router.Route("/invoices", func(r chi.Router) {
		r.Use(authMiddleware)
		handlers.InvoiceRouter(r, invoiceService)
	})
	router.Route("/dashboard", func(r chi.Router) {
		r.Use(authMiddleware)
		handlers.DashboardRouter(r, dashboardService)
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		publisher:  publisher,
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.publisher != nil {
		_ = s.publisher.Close()
	}
	return s.httpServer.Close()
}
