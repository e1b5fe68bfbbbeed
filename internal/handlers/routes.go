package handlers

import (
	"log/slog"
	"time"

	"github.com/arzan03/LandMarket/internal/auth"
	"github.com/arzan03/LandMarket/internal/metrics"
	"github.com/arzan03/LandMarket/internal/middleware"
	"github.com/arzan03/LandMarket/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// Deps carries everything the HTTP layer needs.
type Deps struct {
	Auth      *services.AuthService
	Lands     *services.LandService
	Users     *services.UserService
	Wishlists *services.WishlistService
	Media     MediaSource
	Tokens    *auth.TokenManager
	Log       *slog.Logger

	BodyLimitMB  int
	RateLimitRPM int
	AccessLog    bool
}

// NewApp builds the fiber app with middleware and every route mounted.
func NewApp(d Deps) *fiber.App {
	bodyLimit := d.BodyLimitMB << 20
	if bodyLimit <= 0 {
		bodyLimit = fiber.DefaultBodyLimit
	}

	app := fiber.New(fiber.Config{
		AppName:      "LandMarket",
		BodyLimit:    bodyLimit,
		ErrorHandler: ErrorHandler(d.Log),
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	if d.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		}))
	}
	app.Use(cors.New())
	app.Use(metrics.Middleware())
	if d.RateLimitRPM > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        d.RateLimitRPM,
			Expiration: time.Minute,
			Next: func(c *fiber.Ctx) bool {
				return c.Path() == "/health" || c.Path() == "/metrics"
			},
		}))
	}

	RegisterRoutes(app, d)
	return app
}

func RegisterRoutes(app *fiber.App, d Deps) {
	authHandler := NewAuthHandler(d.Auth, d.Log)
	landHandler := NewLandHandler(d.Lands, d.Log)
	userHandler := NewUserHandler(d.Users, d.Log)
	adminHandler := NewAdminHandler(d.Users, d.Lands, d.Log)
	wishlistHandler := NewWishlistHandler(d.Wishlists, d.Log)
	mediaHandler := NewMediaHandler(d.Media, d.Log)

	protect := middleware.Protect(d.Tokens)
	adminOnly := middleware.AdminOnly()

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", metrics.Handler())

	api := app.Group("/api/v1")

	// Auth Routes
	authRoutes := api.Group("/auth")
	authRoutes.Post("/signup", authHandler.Signup)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Post("/logout", authHandler.Logout)

	// Land Routes
	lands := api.Group("/lands")
	lands.Get("/", landHandler.GetAllLands)
	lands.Get("/user/:userId", landHandler.GetLandsByUser)
	lands.Get("/:id", landHandler.GetLand)
	lands.Post("/", protect, landHandler.CreateLand)
	lands.Put("/:id", protect, landHandler.UpdateLand)
	lands.Delete("/:id", protect, landHandler.DeleteLand)
	lands.Put("/:id/images", protect, landHandler.UpdateLandImages)
	lands.Delete("/:id/images", protect, landHandler.RemoveImages)
	lands.Patch("/:id/approval", protect, adminOnly, adminHandler.SetApproval)

	// User Routes
	users := api.Group("/user", protect)
	users.Get("/", adminOnly, adminHandler.ListUsers)
	users.Get("/:id", userHandler.GetUser)
	users.Put("/:id", userHandler.UpdateUser)
	users.Delete("/:id", userHandler.DeleteUser)
	users.Put("/:id/role", adminOnly, adminHandler.UpdateUserRole)

	// Wishlist Routes
	wishlist := api.Group("/wishlist", protect)
	wishlist.Post("/", wishlistHandler.Add)
	wishlist.Get("/", wishlistHandler.Get)
	wishlist.Delete("/:landId", wishlistHandler.Remove)
	wishlist.Delete("/", wishlistHandler.Clear)

	// Hosted images
	api.Get("/media/upload/*", mediaHandler.Serve)
}
