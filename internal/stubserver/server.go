package stubserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/devconnect/internal/auth"
	"github.com/sakif/devconnect/internal/middleware"
	"github.com/sakif/devconnect/internal/model"
)

// Config holds the stub's knobs.
type Config struct {
	// JWTSecret signs the stub's bearer tokens.
	JWTSecret string

	// AdminEmail, when set, makes the registration with that email an
	// admin account. The consumed API has no other way to mint one.
	AdminEmail string

	// PasswordCost overrides the bcrypt cost; tests set bcrypt.MinCost.
	// Zero means the production default.
	PasswordCost int
}

// Server is the stub backend: a chi router over the in-memory store.
type Server struct {
	router     *chi.Mux
	store      *store
	tokens     *auth.TokenService
	passwords  *auth.PasswordService
	logger     *slog.Logger
	adminEmail string
}

// New assembles the stub. The dependency chain mirrors a real service —
// router → handlers → store — so the fixture behaves like the collaborator
// it stands in for.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	tokens, err := auth.NewTokenService(cfg.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("stubserver: %w", err)
	}

	passwords := auth.NewPasswordService()
	if cfg.PasswordCost > 0 {
		passwords = auth.NewPasswordServiceForTest(cfg.PasswordCost)
	}

	s := &Server{
		router:     chi.NewRouter(),
		store:      newStore(),
		tokens:     tokens,
		passwords:  passwords,
		logger:     logger,
		adminEmail: strings.ToLower(cfg.AdminEmail),
	}
	s.setupRoutes()
	return s, nil
}

// Handler exposes the router, primarily for httptest.NewServer.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	r := s.router
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)

	r.Post("/auth/register", s.handleRegister)
	r.Post("/auth/login", s.handleLogin)

	// Everything below carries the bearer credential.
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(s.tokens))

		r.Get("/profile/me", s.handleMyProfile)
		r.Post("/profile", s.handleSaveProfile)
		r.Post("/profile/upload", s.handleUploadImage)
		r.Get("/profile/search", s.handleSearchProfiles)

		r.Get("/posts", s.handleListPosts)
		r.Post("/posts", s.handleCreatePost)
		r.Put("/posts/like/{id}", s.handleLikePost)
		r.Put("/posts/unlike/{id}", s.handleUnlikePost)
		r.Delete("/posts/{id}", s.handleDeletePost)
		r.Post("/posts/comment/{id}", s.handleAddComment)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAdmin)
			r.Get("/admin/users", s.handleAdminListUsers)
			r.Get("/admin/posts", s.handleAdminListPosts)
			r.Delete("/admin/user/{id}", s.handleAdminDeleteUser)
			r.Delete("/admin/post/{id}", s.handleAdminDeletePost)
		})
	})
}

// requireAdmin sits behind RequireAuth and additionally checks the admin
// flag on the stored user record.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := s.currentUser(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized", "valid authentication required")
			return
		}
		if !user.IsAdmin {
			writeError(w, http.StatusForbidden, "forbidden", "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// currentUser resolves the authenticated user record for a request that
// already passed RequireAuth.
func (s *Server) currentUser(r *http.Request) (*model.User, error) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		return nil, errors.New("stubserver: no user in context")
	}
	return s.store.userByID(userID)
}

// Start serves the stub on addr until SIGINT/SIGTERM, then drains for up
// to five seconds. Used by cmd/stubserver; tests use Handler instead.
func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("stub backend listening", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("stubserver: %w", err)
	case sig := <-stop:
		s.logger.Info("shutting down", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("stubserver: shutdown: %w", err)
	}
	return nil
}
