// Package server contains the HTTP handlers for the exchange API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"retroexchange/internal/config"
	"retroexchange/internal/database"
	"retroexchange/internal/middleware"
	"retroexchange/internal/models"
	"retroexchange/internal/repository"
)

// Server holds all dependencies and provides handlers.
type Server struct {
	config    *config.Config
	db        *gorm.DB
	redis     *redis.Client
	userRepo  repository.UserRepository
	gameRepo  repository.GameRepository
	offerRepo repository.OfferRepository
}

// NewServer creates a new server instance with all dependencies.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisURL})
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("Redis unavailable, per-route rate limiting disabled: %v", err)
		} else {
			redisClient = client
		}
	}

	return NewServerWithDeps(cfg, db, redisClient), nil
}

// NewServerWithDeps wires a server around an existing database connection.
// Tests use this with an in-memory database.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	return &Server{
		config:    cfg,
		db:        db,
		redis:     redisClient,
		userRepo:  repository.NewUserRepository(db),
		gameRepo:  repository.NewGameRepository(db),
		offerRepo: repository.NewOfferRepository(db),
	}
}

// SetupMiddleware configures middleware for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(requestid.New())
	app.Use(helmet.New())
	app.Use(recover.New())
	app.Use(middleware.StructuredLogger())

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return models.RespondWithError(c, fiber.StatusTooManyRequests,
				&models.AppError{Code: "RATE_LIMITED", Message: "Too many requests, please try again later"})
		},
	}))

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		MaxAge:       86400,
	}))
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Get("/", s.APIRoot)
	api.Get("/healthz", s.HealthCheck)

	// Public endpoints
	api.Post("/users", middleware.RateLimit(s.redis, 3, 10*time.Minute, "register"), s.RegisterUser)
	api.Post("/auth/token", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.IssueToken)

	// Protected routes
	protected := api.Group("", s.AuthRequired())

	users := protected.Group("/users")
	users.Get("/me", s.GetMe)
	users.Get("/:id", s.GetUser)
	users.Put("/:id", s.UpdateUser)
	users.Delete("/:id", s.DeleteUser)

	games := protected.Group("/games")
	games.Post("/", s.CreateGame)
	games.Get("/", s.ListGames)
	games.Get("/:id", s.GetGame)
	games.Put("/:id", s.UpdateGame)
	games.Delete("/:id", s.DeleteGame)

	offers := protected.Group("/offers")
	offers.Post("/", s.CreateOffer)
	// Specific /incoming and /outgoing routes before generic /:id
	offers.Get("/incoming", s.IncomingOffers)
	offers.Get("/outgoing", s.OutgoingOffers)
	offers.Get("/:id", s.GetOffer)
	offers.Post("/:id/decision", s.DecideOffer)
}

// HealthCheck handles health check requests.
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
		"time":   time.Now(),
	})
}

// AuthRequired returns the authentication middleware. It resolves the caller
// from the bearer token and stores the user record for downstream ownership
// checks. A missing credential fails with its own code; every bad-credential
// cause (signature, expiry, subject, deleted user) is deliberately collapsed
// into one.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		tokenString := ""
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewAuthRequiredError())
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(s.config.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewInvalidTokenError("Invalid or expired token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewInvalidTokenError("Invalid token claims"))
		}

		sub, ok := claims["sub"].(string)
		if !ok || sub == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewInvalidTokenError("Token missing subject"))
		}

		userID, err := strconv.ParseUint(sub, 10, 32)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewInvalidTokenError("Invalid subject claim"))
		}

		user, err := s.userRepo.GetByID(c.Context(), uint(userID))
		if err != nil {
			// Same code as a malformed token: callers cannot probe
			// whether a subject once existed.
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewInvalidTokenError("Invalid or expired token"))
		}

		c.Locals("userID", user.ID)
		c.Locals("currentUser", user)

		return c.Next()
	}
}

// currentUser returns the caller resolved by AuthRequired.
func (s *Server) currentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("currentUser").(*models.User)
	return user
}

// Start starts the server.
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Retro Game Exchange API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown releases server resources.
func (s *Server) Shutdown(ctx context.Context) error {
	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
