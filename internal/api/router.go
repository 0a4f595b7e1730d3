package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskboard/task-tracker/internal/api/handler"
	"github.com/taskboard/task-tracker/internal/api/middleware"
	"github.com/taskboard/task-tracker/internal/core/ports"
)

// Deps carries everything the router needs. Services and the token verifier
// are constructed in cmd/server so the purge dispatcher's lifecycle stays
// under main's control.
type Deps struct {
	Auth     ports.AuthService
	Tasks    ports.TaskService
	Users    ports.UserService
	Verifier middleware.TokenVerifier
	Mongo    *mongo.Database
	Redis    *redis.Client
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())

	authHandler := handler.NewAuthHandler(d.Auth)
	taskHandler := handler.NewTaskHandler(d.Tasks)
	userHandler := handler.NewUserHandler(d.Users)
	authGate := middleware.Auth(d.Verifier)

	// --- Auth routes (public) ---
	e.POST("/api/auth/signup", authHandler.Signup)
	e.POST("/api/auth/login", authHandler.Login)

	// --- Profile routes ---
	users := e.Group("/api/users", authGate)
	users.GET("/me", userHandler.Me)
	users.PUT("/me", userHandler.UpdateMe)
	users.DELETE("/me", userHandler.DeleteMe)

	// --- Task routes ---
	tasks := e.Group("/api/tasks", authGate)
	tasks.GET("", taskHandler.List)
	tasks.POST("", taskHandler.Create)
	tasks.GET("/:id", taskHandler.Get)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Mongo, d.Redis)

	e.GET("/", healthHandler.Welcome)
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
