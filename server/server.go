package server

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/liuhaochen/site-analytics/config"
	"github.com/liuhaochen/site-analytics/docs"
	reportHandler "github.com/liuhaochen/site-analytics/internal/handler/report"
	trackHandler "github.com/liuhaochen/site-analytics/internal/handler/track"
	"github.com/liuhaochen/site-analytics/internal/repository"
	"github.com/liuhaochen/site-analytics/internal/service/tracker"
	"github.com/liuhaochen/site-analytics/middleware"
	"github.com/liuhaochen/site-analytics/pkg/utils"
)

type RouterHandler struct {
	trackHandler  *trackHandler.TrackHandler
	reportHandler *reportHandler.ReportHandler
}

func RunServer(config *config.Config) {
	env := config.Env
	switch env {
	case "prod", "production":
		gin.SetMode(gin.ReleaseMode)
		log.Println("🚀 Starting server in PRODUCTION mode")
	case "dev", "development":
		gin.SetMode(gin.DebugMode)
		log.Println("🔧 Starting server in DEVELOPMENT mode")
	default:
		gin.SetMode(gin.DebugMode)
		log.Println("🔧 Starting server in DEVELOPMENT mode (default)")
	}

	store := buildEventStore(config)
	loc := utils.LoadLocation(config.Timezone)

	trackerSvc := tracker.New(store, loc, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	trackerSvc.LoadToday(ctx)
	go trackerSvc.Start(ctx)

	routerHandler := &RouterHandler{
		trackHandler:  trackHandler.NewTrackHandler(trackerSvc),
		reportHandler: reportHandler.NewReportHandler(trackerSvc, store),
	}

	r := setupRouter(routerHandler)

	srv := &http.Server{
		Addr:    ":" + config.Server.Port,
		Handler: r,
	}

	go func() {
		log.Printf("✅ Server starting on port %s", config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to start server: %v", err)
		}
	}()

	gracefulShutdown(srv, cancel, trackerSvc)
}

func buildEventStore(config *config.Config) repository.EventStore {
	switch config.Storage.Driver {
	case "postgres":
		db, err := repository.NewRepository(config.DB)
		if err != nil {
			log.Fatal("❌ Failed to connect to database:", err)
		}
		return repository.NewPostgresEventStore(db)
	default:
		store, err := repository.NewFileEventStore(config.Storage.DataDir)
		if err != nil {
			log.Fatal("❌ Failed to prepare data directory:", err)
		}
		return store
	}
}

func gracefulShutdown(srv *http.Server, cancel context.CancelFunc, trackerSvc tracker.TrackerService) {
	quit := make(chan os.Signal, 1)

	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Println("🔄 Shutting down server...")

	cancel()

	// Drain the buffer so records appended since the last periodic flush
	// survive the restart.
	if trackerSvc.Records() > 0 {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := trackerSvc.Flush(flushCtx); err != nil {
			log.Printf("❌ Final flush failed: %v", err)
		}
		flushCancel()
	}

	ctx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("❌ Server forced to shutdown: %v", err)
		return
	}

	select {
	case <-ctx.Done():
		log.Println("⚠️ Server shutdown timeout exceeded")
	default:
		log.Println("✅ Server gracefully stopped")
	}
}

func setupRouter(routerHandler *RouterHandler) *gin.Engine {
	r := gin.Default()
	r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestIDMiddleware())

	docs.SwaggerInfo.Title = "Site Analytics API"
	docs.SwaggerInfo.Description = "Privacy-first web analytics collector"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.BasePath = "/api"
	docs.SwaggerInfo.Schemes = []string{"http", "https"}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		api.POST("/track", routerHandler.trackHandler.Track)
		// "latest" shares the :date segment; dispatch by value to keep
		// both under one route.
		api.GET("/report/:date", func(c *gin.Context) {
			if c.Param("date") == "latest" {
				routerHandler.reportHandler.Latest(c)
				return
			}
			routerHandler.reportHandler.ByDate(c)
		})
		api.GET("/dates", routerHandler.reportHandler.Dates)
		api.GET("/health", routerHandler.reportHandler.Health)
	}

	return r
}
