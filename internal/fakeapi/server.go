// Package fakeapi is an in-memory stand-in for the salon REST collaborator.
// It implements the endpoints the client uses so client and command tests can
// run end to end. It is not a production backend.
package fakeapi

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config controls a fake collaborator instance
type Config struct {
	JWTSecret    string
	TokenTTL     time.Duration
	DatabaseURL  string
	AllowOrigins []string
}

// Call is one request observed by the server
type Call struct {
	Method        string
	Path          string
	Status        int
	Authorization string
}

// Server represents the fake collaborator
type Server struct {
	router *gin.Engine
	db     *gorm.DB
	tokens *TokenIssuer
	logger zerolog.Logger

	mu    sync.Mutex
	calls []Call
}

// New creates a server backed by a fresh sqlite database
func New(cfg Config, zlog zerolog.Logger) (*Server, error) {
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "fakeapi-secret"
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = ":memory:"
	}
	if len(cfg.AllowOrigins) == 0 {
		cfg.AllowOrigins = []string{"http://localhost:5173"}
	}

	db, err := initDatabase(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	s := &Server{
		db:     db,
		tokens: NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL),
		logger: zlog,
	}
	s.setupRouter(cfg.AllowOrigins)

	return s, nil
}

func initDatabase(url string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(url), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// A second connection to :memory: would see an empty database
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := db.Exec("PRAGMA foreign_keys=1").Error; err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

func (s *Server) setupRouter(origins []string) {
	gin.SetMode(gin.ReleaseMode)

	s.router = gin.New()
	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())
	s.router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	s.router.GET("/health", s.healthCheck)

	// Public endpoints
	s.router.POST("/users/login", s.login)
	s.router.GET("/services", s.listServices)
	s.router.GET("/reviews/:serviceId", s.listReviews)
	s.router.GET("/working-hours", s.listWorkingHours)

	authed := s.router.Group("")
	authed.Use(s.authMiddleware())
	{
		authed.GET("/users/me", s.getCurrentUser)
		authed.PUT("/users/update", s.updateProfile)

		authed.GET("/appointments/me", s.listMyAppointments)
		authed.POST("/appointments", s.createAppointment)
		authed.DELETE("/appointments/:id", s.cancelAppointment)

		authed.POST("/reviews", s.createReview)

		authed.GET("/favorites", s.listFavorites)
		authed.POST("/favorites", s.addFavorite)
		authed.DELETE("/favorites", s.removeFavorite)
	}

	admin := s.router.Group("")
	admin.Use(s.authMiddleware(), s.adminOnlyMiddleware())
	{
		admin.GET("/users", s.listUsers)
		admin.PUT("/users/block", s.blockUser)
		admin.GET("/appointments", s.listAllAppointments)
		admin.PUT("/appointments/:id/status", s.updateAppointmentStatus)
		admin.POST("/working-hours", s.setWorkingHours)
	}
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "online",
		"timestamp": time.Now().UTC(),
		"service":   "salon-fakeapi",
	})
}

// Handler exposes the router, e.g. for httptest.NewServer
func (s *Server) Handler() http.Handler {
	return s.router
}

// DB returns the database connection used for seeding
func (s *Server) DB() *gorm.DB {
	return s.db
}

func (s *Server) record(call Call) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call)
}

// Calls returns the requests served so far
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// ResetCalls forgets recorded requests
func (s *Server) ResetCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}

// CreateUser seeds an account
func (s *Server) CreateUser(email, password, name string, isAdmin bool) (*User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &User{Email: strings.ToLower(email), PasswordHash: hash, Name: name, IsAdmin: isAdmin}
	if err := s.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// CreateService seeds a catalog entry
func (s *Server) CreateService(name, description string, price float64) (*Service, error) {
	service := &Service{Name: name, Description: description, Price: price}
	if err := s.db.Create(service).Error; err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return service, nil
}

// IssueToken signs a credential for a seeded user
func (s *Server) IssueToken(user *User) (string, error) {
	return s.tokens.Issue(user)
}

// Start serves on addr until SIGINT or SIGTERM
func (s *Server) Start(addr string) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 30 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("Starting fake salon API")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-sigChan:
	}

	s.logger.Info().Msg("Received shutdown signal, shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			s.logger.Error().Err(err).Msg("Error closing database")
		}
	}

	return nil
}
