// Package server contains the HTTP handlers and routing for the Blogly web application.
package server

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"blogly/internal/config"
	"blogly/internal/database"
	"blogly/internal/middleware"
	"blogly/internal/models"
	"blogly/internal/repository"
	"blogly/internal/views"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/session"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	sessions       *session.Store
	promMiddleware *fiberprometheus.FiberPrometheus
	userRepo       repository.UserRepository
	postRepo       repository.PostRepository
	tagRepo        repository.TagRepository
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	srv := NewServerWithDB(cfg, db)
	// Prometheus collectors register globally, so metrics are only wired
	// here and not in test servers.
	srv.promMiddleware = fiberprometheus.New("blogly")
	return srv, nil
}

// NewServerWithDB creates a Server using an already-initialized database.
// Use this in tests or when a bootstrap layer establishes the DB.
func NewServerWithDB(cfg *config.Config, db *gorm.DB) *Server {
	return &Server{
		config: cfg,
		db:     db,
		sessions: session.New(session.Config{
			Expiration:     24 * time.Hour,
			CookieHTTPOnly: true,
			CookieSameSite: "Lax",
		}),
		userRepo: repository.NewUserRepository(db),
		postRepo: repository.NewPostRepository(db),
		tagRepo:  repository.NewTagRepository(db),
	}
}

// NewApp builds the Fiber application with views, middleware, and routes.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Blogly",
		Views:        views.NewEngine(),
		ViewsLayout:  "layouts/main",
		ErrorHandler: s.errorHandler,
	})

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	return app
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Request ID for tracing
	app.Use(requestid.New())

	// Recover from handler panics with a 500 page instead of dropping the connection
	app.Use(recover.New())

	// Structured Logging middleware
	app.Use(middleware.StructuredLogger())

	// Session cookies are encrypted with a key derived from the session secret
	app.Use(encryptcookie.New(encryptcookie.Config{
		Key: cookieKey(s.config.SessionSecret),
	}))

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	app.Get("/healthz", s.HealthCheck)
	app.Static("/static", "./static")

	// Homepage: five most recent posts
	app.Get("/", s.Home)

	users := app.Group("/users")
	// Define /new routes BEFORE generic /:id routes
	users.Get("/new", s.NewUserForm)
	users.Post("/new", s.CreateUser)
	users.Get("/", s.ListUsers)
	users.Get("/:id/edit", s.EditUserForm)
	users.Post("/:id/edit", s.UpdateUser)
	users.Post("/:id/delete", s.DeleteUser)
	users.Get("/:id/posts/new", s.NewPostForm)
	users.Post("/:id/posts/new", s.CreatePost)
	users.Get("/:id", s.ShowUser)

	posts := app.Group("/posts")
	posts.Get("/:id/edit", s.EditPostForm)
	posts.Post("/:id/edit", s.UpdatePost)
	posts.Post("/:id/delete", s.DeletePost)
	posts.Get("/:id", s.ShowPost)

	tags := app.Group("/tags")
	tags.Get("/new", s.NewTagForm)
	tags.Post("/new", s.CreateTag)
	tags.Get("/", s.ListTags)
	tags.Get("/:id/edit", s.EditTagForm)
	tags.Post("/:id/edit", s.UpdateTag)
	tags.Post("/:id/delete", s.DeleteTag)
	tags.Get("/:id", s.ShowTag)
}

// HealthCheck handles health check requests
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	status := fiber.StatusOK
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"status": dbStatus,
		"checks": fiber.Map{
			"database": dbStatus,
		},
		"time": time.Now().UTC(),
	})
}

// errorHandler renders application errors as HTML pages.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "NOT_FOUND":
			return s.render(c, fiber.StatusNotFound, "errors/404", fiber.Map{
				"Message": appErr.Message,
			})
		case "VALIDATION_ERROR", "CONFLICT":
			return s.render(c, fiber.StatusBadRequest, "errors/400", fiber.Map{
				"Message": appErr.Message,
			})
		}
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) && fiberErr.Code == fiber.StatusNotFound {
		return s.render(c, fiber.StatusNotFound, "errors/404", fiber.Map{
			"Message": "Page not found",
		})
	}

	middleware.Logger.Error("unhandled error",
		slog.String("path", c.Path()),
		slog.String("error", err.Error()),
	)
	return s.render(c, fiber.StatusInternalServerError, "errors/500", fiber.Map{})
}

// Shutdown releases server resources.
func (s *Server) Shutdown(ctx context.Context) error {
	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", slog.String("error", cerr.Error()))
		}
	}
	middleware.Logger.Info("Server shutdown complete")
	return nil
}

// cookieKey derives the 32-byte base64 key encryptcookie expects from the
// configured session secret.
func cookieKey(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return base64.StdEncoding.EncodeToString(sum[:])
}
