package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prince-yn/study-space-backend/internal/core/ports/driven"
	"github.com/prince-yn/study-space-backend/internal/core/ports/driving"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string

	// Services
	authService     driving.AuthService
	userService     driving.UserService
	spaceService    driving.SpaceService
	subjectService  driving.SubjectService
	materialService driving.MaterialService
	noteService     driving.NoteService
	chatService     driving.ChatService

	// Infrastructure
	taskQueue   driven.TaskQueue
	db          Pinger // PostgreSQL health check
	redisClient Pinger // Redis health check (optional)
}

// Config holds server configuration
type Config struct {
	Host    string
	Port    int
	Version string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:    "0.0.0.0",
		Port:    8080,
		Version: "dev",
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	authService driving.AuthService,
	userService driving.UserService,
	spaceService driving.SpaceService,
	subjectService driving.SubjectService,
	materialService driving.MaterialService,
	noteService driving.NoteService,
	chatService driving.ChatService,
	taskQueue driven.TaskQueue,
	db Pinger,
	redisClient Pinger, // can be nil
) *Server {
	s := &Server{
		router:          http.NewServeMux(),
		version:         cfg.Version,
		authService:     authService,
		userService:     userService,
		spaceService:    spaceService,
		subjectService:  subjectService,
		materialService: materialService,
		noteService:     noteService,
		chatService:     chatService,
		taskQueue:       taskQueue,
		db:              db,
		redisClient:     redisClient,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	// Create middleware
	authMiddleware := NewAuthMiddleware(s.authService)

	// Health endpoints (no auth)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)

	// Auth endpoints (public)
	s.router.HandleFunc("POST /api/v1/auth/register", s.handleRegister)
	s.router.HandleFunc("POST /api/v1/auth/login", s.handleLogin)
	s.router.HandleFunc("POST /api/v1/auth/refresh", s.handleRefresh)

	// Auth endpoints (authenticated)
	s.router.Handle("POST /api/v1/auth/logout",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleLogout)))

	// User endpoints
	s.router.Handle("GET /api/v1/me",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetMe)))

	// Admin-only user management
	s.router.Handle("GET /api/v1/users",
		authMiddleware.Authenticate(
			authMiddleware.RequireAdmin(http.HandlerFunc(s.handleListUsers))))
	s.router.Handle("DELETE /api/v1/users/{id}",
		authMiddleware.Authenticate(
			authMiddleware.RequireAdmin(http.HandlerFunc(s.handleDeleteUser))))

	// Space endpoints (authenticated)
	s.router.Handle("POST /api/v1/spaces",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleCreateSpace)))
	s.router.Handle("GET /api/v1/spaces",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleListSpaces)))
	s.router.Handle("GET /api/v1/spaces/{id}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetSpace)))
	s.router.Handle("PUT /api/v1/spaces/{id}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleUpdateSpace)))
	s.router.Handle("DELETE /api/v1/spaces/{id}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleDeleteSpace)))
	s.router.Handle("POST /api/v1/spaces/{id}/members",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleAddMember)))
	s.router.Handle("DELETE /api/v1/spaces/{id}/members/{userID}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleRemoveMember)))

	// Subject endpoints (authenticated)
	s.router.Handle("POST /api/v1/spaces/{id}/subjects",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleCreateSubject)))
	s.router.Handle("GET /api/v1/spaces/{id}/subjects",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleListSubjects)))
	s.router.Handle("GET /api/v1/subjects/{id}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetSubject)))
	s.router.Handle("DELETE /api/v1/subjects/{id}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleDeleteSubject)))

	// Material endpoints (authenticated)
	s.router.Handle("POST /api/v1/subjects/{id}/materials",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleCreateMaterial)))
	s.router.Handle("GET /api/v1/subjects/{id}/materials",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleListMaterials)))
	s.router.Handle("GET /api/v1/materials/{id}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetMaterial)))
	s.router.Handle("DELETE /api/v1/materials/{id}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleDeleteMaterial)))
	s.router.Handle("POST /api/v1/materials/{id}/regenerate",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleRegenerateMaterial)))

	// Note endpoints (authenticated, read-only)
	s.router.Handle("GET /api/v1/subjects/{id}/notes",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleListNotes)))
	s.router.Handle("GET /api/v1/notes/{id}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetNote)))

	// Chat endpoint (authenticated)
	s.router.Handle("POST /api/v1/subjects/{id}/chat",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleChat)))
}

// Start starts the HTTP server with graceful shutdown
func (s *Server) Start() error {
	// Channel to listen for OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-stop
	log.Println("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
