package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/stockwise/inventory-system/internal/api/handler"
	"github.com/stockwise/inventory-system/internal/api/middleware"
	"github.com/stockwise/inventory-system/internal/core/domain"
	"github.com/stockwise/inventory-system/internal/core/ports"
)

// RouterConfig carries the wired services and infrastructure handles the
// router needs.
type RouterConfig struct {
	DB        *mongo.Database
	Redis     *redis.Client
	JWTSecret string
	Logger    zerolog.Logger

	Categories ports.CategoryService
	Products   ports.ProductService
	Users      ports.UserService
	Auth       ports.AuthService
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("inventory"))

	authMiddleware := middleware.Auth(cfg.JWTSecret)
	readOnly := middleware.RBAC(domain.RoleUser, domain.RoleManager, domain.RoleAdmin)
	readWrite := middleware.RBAC(domain.RoleManager, domain.RoleAdmin)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(cfg.Auth)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/register", authHandler.Register)

	// --- Categories ---
	categoryHandler := handler.NewCategoryHandler(cfg.Categories)
	categories := e.Group("/categories", authMiddleware)
	categories.POST("", categoryHandler.Create, readWrite)
	categories.GET("", categoryHandler.List, readOnly)
	categories.GET("/:id", categoryHandler.Get, readOnly)
	categories.PUT("/:id", categoryHandler.Update, readWrite)
	categories.DELETE("/:id", categoryHandler.Delete, adminOnly)

	// --- Products ---
	productHandler := handler.NewProductHandler(cfg.Products)
	products := e.Group("/products", authMiddleware)
	products.POST("", productHandler.Create, readWrite)
	products.GET("", productHandler.List, readOnly)
	products.GET("/search", productHandler.Search, readOnly)
	products.GET("/low-stock", productHandler.ListLowStock, readWrite)
	products.GET("/category/:id", productHandler.ListByCategory, readOnly)
	products.GET("/:id", productHandler.Get, readOnly)
	products.PUT("/:id", productHandler.Update, readWrite)
	products.PATCH("/:id/stock", productHandler.UpdateStock, readWrite)
	products.DELETE("/:id", productHandler.Delete, adminOnly)

	// --- Users (admin management) ---
	userHandler := handler.NewUserHandler(cfg.Users)
	users := e.Group("/users", authMiddleware, adminOnly)
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(cfg.DB, cfg.Redis)
	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
