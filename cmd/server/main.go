// Package main runs the events console HTTP server with live sockets and graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fec-cms/console/config"
	"github.com/fec-cms/console/internal/applications"
	"github.com/fec-cms/console/internal/auth"
	"github.com/fec-cms/console/internal/cache"
	"github.com/fec-cms/console/internal/events"
	"github.com/fec-cms/console/internal/features"
	"github.com/fec-cms/console/internal/gateway"
	"github.com/fec-cms/console/internal/geo"
	"github.com/fec-cms/console/internal/listview"
	"github.com/fec-cms/console/internal/live"
	"github.com/fec-cms/console/internal/lookup"
	"github.com/fec-cms/console/internal/middleware"
	"github.com/fec-cms/console/internal/models"
	"github.com/fec-cms/console/internal/organizations"
	"github.com/fec-cms/console/internal/regions"
	"github.com/fec-cms/console/internal/session"
	"github.com/fec-cms/console/internal/uploads"
	"github.com/fec-cms/console/pkg/redis"
	"github.com/fec-cms/console/pkg/response"
	"github.com/fec-cms/console/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	level := "info"
	if cfg != nil {
		level = cfg.Log.Level
	}
	logger := newLogger(level)
	defer logger.Sync()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	rdb, err := redis.NewClient(ctx, redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	pubsub := live.NewRedisPubSub(rdb.Client, logger)
	hub := live.NewHub(logger, pubsub, pubsub)

	sessions := session.NewRegistry(cfg.Session.StorageKey, session.NewRedisPersister(rdb.Client, cfg.Session.TTL()), logger)
	sessions.OnLogout(live.LogoutNotifier(hub))

	api := gateway.NewClient(cfg.API.BaseURL, gateway.NewHTTPClient(cfg.API.Timeout(), cfg.API.Proxy, logger), logger)
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)
	finders := lookup.NewRegistry(cfg.Lookup.PageSize)
	uploader := storage.NewUploader(storage.Config{
		EndpointTemplate: cfg.Storage.EndpointTemplate,
		PartSize:         int64(cfg.Storage.PartSizeMB) * 1024 * 1024,
	}, logger)

	authHandler := auth.NewHandler(api, sessions, jwtService, logger)
	eventHandler := events.NewHandler(api, cfg.Console.Location(), logger)
	orgHandler := organizations.NewHandler(api, logger)
	regionHandler := regions.NewHandler(api, logger)
	featureHandler := features.NewHandler(api, logger)
	appHandler := applications.NewHandler(api, logger)
	lookupHandler := lookup.NewHandler(api, finders, logger)
	uploadHandler := uploads.NewHandler(api, uploader, int64(cfg.Storage.MaxUploadMB)*1024*1024, logger)
	geoHandler := geo.NewHandler(api, logger)
	cacheHandler := cache.NewHandler(api, logger)

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))

	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })
	router.POST("/auth/login", authHandler.Login)

	// WebSocket (token in query; no Authorization header required)
	router.GET("/ws", live.ServeWs(hub, live.TokenAuthenticator(jwtService, sessions), live.Options{
		API:      api,
		Finders:  finders,
		Debounce: cfg.Lookup.Debounce(),
		Origins:  strings.Split(cfg.Server.CORSAllowedOrigins, ","),
	}, logger))

	authGroup := router.Group("")
	authGroup.Use(middleware.JWT(jwtService, sessions, logger))
	{
		authGroup.GET("/auth/me", authHandler.Me)
		authGroup.POST("/auth/logout", authHandler.Logout)

		authGroup.POST("/listview/change", listview.ChangeHandler)

		authGroup.GET("/events", eventHandler.List)
		authGroup.GET("/events/new", eventHandler.New)
		authGroup.POST("/events/field", eventHandler.SetField)
		authGroup.POST("/events/rows", eventHandler.Rows)
		authGroup.POST("/events/validate", eventHandler.ValidateDraft)
		authGroup.POST("/events/slug", eventHandler.Slug)
		authGroup.POST("/events", eventHandler.Create)
		authGroup.GET("/events/:id", eventHandler.Get)
		authGroup.POST("/events/:id", eventHandler.Update)
		authGroup.DELETE("/events/:id", eventHandler.Delete)
		authGroup.POST("/events/:id/cache", eventHandler.RefreshCache)

		authGroup.GET("/organizations", orgHandler.List)
		authGroup.GET("/organizations/new", orgHandler.New)
		authGroup.POST("/organizations/field", orgHandler.SetField)
		authGroup.POST("/organizations", orgHandler.Create)
		authGroup.GET("/organizations/:id", orgHandler.Get)
		authGroup.POST("/organizations/:id", orgHandler.Update)
		authGroup.DELETE("/organizations/:id", orgHandler.Delete)
		authGroup.POST("/organizations/:id/cache", orgHandler.RefreshCache)

		authGroup.GET("/regions", regionHandler.List)
		authGroup.GET("/regions/new", regionHandler.New)
		authGroup.POST("/regions/field", regionHandler.SetField)
		authGroup.POST("/regions", regionHandler.Create)
		authGroup.GET("/regions/:id", regionHandler.Get)
		authGroup.POST("/regions/:id", regionHandler.Update)
		authGroup.DELETE("/regions/:id", regionHandler.Delete)

		authGroup.GET("/features", featureHandler.List)
		authGroup.GET("/features/new", featureHandler.New)
		authGroup.POST("/features/field", featureHandler.SetField)
		authGroup.POST("/features", featureHandler.Create)
		authGroup.GET("/features/:id", featureHandler.Get)
		authGroup.POST("/features/:id", featureHandler.Update)
		authGroup.DELETE("/features/:id", featureHandler.Delete)

		authGroup.GET("/applications", middleware.RequireRole(models.RoleAdmin, models.RoleDeveloper), appHandler.List)

		authGroup.GET("/lookup/:kind", lookupHandler.Search)
		authGroup.GET("/lookup/:kind/resolve", lookupHandler.Resolve)
		authGroup.POST("/uploads", uploadHandler.Upload)
		authGroup.POST("/geo/suggestion", geoHandler.Suggest)
		authGroup.POST("/cache/clean", cacheHandler.Clean)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port), zap.String("api", cfg.API.BaseURL))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger(level string) *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if lvl, err := zapcore.ParseLevel(level); err == nil {
		config.Level = zap.NewAtomicLevelAt(lvl)
	}
	logger, _ := config.Build()
	return logger
}
