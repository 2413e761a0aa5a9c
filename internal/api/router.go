package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/traveltracker/travel-log-api/internal/api/handler"
	"github.com/traveltracker/travel-log-api/internal/api/middleware"
	"github.com/traveltracker/travel-log-api/internal/core/ports"
	"github.com/traveltracker/travel-log-api/internal/core/service"
	mongorepo "github.com/traveltracker/travel-log-api/internal/infrastructure/db/mongo"
	"github.com/traveltracker/travel-log-api/pkg/logger"
)

// Options carries the collaborators the router cannot build itself.
// Provider and Recorder are optional: when Provider is nil the assistant
// endpoint responds 503.
type Options struct {
	JWTSecret string
	Provider  ports.ChatProvider
	History   ports.ConversationStore
	Recorder  service.TurnRecorder
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger.Get())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("traveltracker"))

	// --- Repositories ---
	locationRepo := mongorepo.NewLocationRepository(db)
	typeRepo := mongorepo.NewLocationTypeRepository(db)
	parkRepo := mongorepo.NewParkRepository(db)
	userRepo := mongorepo.NewUserRepository(db)

	// --- Services ---
	log := logger.Get()
	typeValidator := service.NewTypeValidator(typeRepo, parkRepo)
	locationService := service.NewLocationService(locationRepo, typeValidator, log)
	importService := service.NewImportService(locationRepo, typeValidator, log)
	exportService := service.NewExportService(locationRepo, log)
	parkService := service.NewParkService(parkRepo, locationRepo)
	typeService := service.NewLocationTypeService(typeRepo)
	authService := service.NewAuthService(userRepo, opts.JWTSecret, 24*time.Hour)

	var assistantService ports.AssistantService
	if opts.Provider != nil {
		assistantService = service.NewAssistantService(
			locationRepo, parkRepo, typeRepo,
			opts.Provider, opts.History, opts.Recorder, log,
		)
	}

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	locationHandler := handler.NewLocationHandler(locationService)
	transferHandler := handler.NewTransferHandler(importService, exportService)
	parkHandler := handler.NewParkHandler(parkService)
	typeHandler := handler.NewLocationTypeHandler(typeService)
	assistantHandler := handler.NewAssistantHandler(assistantService)
	authMiddleware := middleware.Auth(opts.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Protected API ---
	v1 := e.Group("/v1", authMiddleware)

	v1.GET("/locations", locationHandler.List)
	v1.POST("/locations", locationHandler.Create)
	v1.GET("/locations/stats/states", locationHandler.StateCounts)
	v1.POST("/locations/import", transferHandler.Import)
	v1.POST("/locations/import/validate", transferHandler.Validate)
	v1.GET("/locations/export", transferHandler.Export)
	v1.GET("/locations/:id", locationHandler.Get)
	v1.PUT("/locations/:id", locationHandler.Update)
	v1.DELETE("/locations/:id", locationHandler.Delete)

	v1.GET("/location-types", typeHandler.List)
	v1.GET("/location-types/:name", typeHandler.Get)

	v1.GET("/parks", parkHandler.List)
	v1.GET("/parks/visited", parkHandler.Visited)

	v1.POST("/assistant/chat", assistantHandler.Chat)

	// --- Operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
