package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/promptpix/promptpix/internal/auth"
	"github.com/promptpix/promptpix/internal/config"
	"github.com/promptpix/promptpix/internal/service"
)

// Server is the browser-facing JSON API.
type Server struct {
	addr        string
	log         *slog.Logger
	tokens      *auth.TokenManager
	auths       *service.AuthService
	generations *service.GenerationService
	images      *service.ImageService
	plans       *service.PlanService
	payments    *service.PaymentService
	router      *chi.Mux
}

func NewServer(cfg config.Config, log *slog.Logger, tokens *auth.TokenManager, auths *service.AuthService, generations *service.GenerationService, images *service.ImageService, plans *service.PlanService, payments *service.PaymentService) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "token"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	s := &Server{
		addr:        cfg.ListenAddr,
		log:         log,
		tokens:      tokens,
		auths:       auths,
		generations: generations,
		images:      images,
		plans:       plans,
		payments:    payments,
		router:      r,
	}

	r.Route("/api/user", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)
		r.Get("/plans", s.handlePlans)
		r.Group(func(protected chi.Router) {
			protected.Use(s.tokenAuth)
			protected.Get("/credit", s.handleCredit)
			protected.Post("/pay-razor", s.handlePayRazor)
			protected.Post("/verify-razor", s.handleVerifyRazor)
		})
	})

	r.Route("/api/image", func(r chi.Router) {
		r.Use(s.tokenAuth)
		r.Post("/generate-image", s.handleGenerateImage)
		r.Get("/history", s.handleHistory)
		r.Get("/favorites", s.handleFavorites)
		r.Post("/toggle-favorite", s.handleToggleFavorite)
		r.Post("/delete-image", s.handleDeleteImage)
		r.Get("/raw/{imageID}", s.handleRawImage)
	})

	return s
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute, // generation responses carry the image payload
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Error("server shutdown error", "err", err)
		}
	}()

	s.log.Info("api listening", "addr", s.addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("api listen: %w", err)
	}
	return nil
}
