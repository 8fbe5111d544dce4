package main

import (
	"fmt"
	"os"
	"time"

	"github.com/lrmsph/lrms-backend/internal/db"
	"github.com/lrmsph/lrms-backend/internal/handlers"
	"github.com/lrmsph/lrms-backend/internal/logger"
	"github.com/lrmsph/lrms-backend/internal/middleware"
	"github.com/lrmsph/lrms-backend/internal/presence"
	"github.com/lrmsph/lrms-backend/internal/repos"
	"github.com/lrmsph/lrms-backend/internal/sendgrid"
	"github.com/lrmsph/lrms-backend/internal/server"
	"github.com/lrmsph/lrms-backend/internal/services"
	"github.com/lrmsph/lrms-backend/internal/sse"
	"github.com/lrmsph/lrms-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 86400, log)
	uploadDir := utils.GetEnv("UPLOAD_DIR", "uploads", log)
	listenAddr := utils.GetEnv("LISTEN_ADDR", ":8080", log)

	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		log.Fatal("Could not create upload directory", "dir", uploadDir, "error", err)
	}

	// Database
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("Database init failed", "error", err)
	}
	if err := postgresService.AutoMigrateAll(); err != nil {
		log.Fatal("Database auto migration failed", "error", err)
	}
	gdb := postgresService.DB()

	// Repos
	log.Info("Setting up repos...")
	userRepo := repos.NewUserRepo(gdb, log)
	materialRepo := repos.NewMaterialRepo(gdb, log)
	taxonomyRepo := repos.NewTaxonomyRepo(gdb, log)

	// Realtime
	log.Info("Setting up presence tracker and SSE hub...")
	tracker := presence.NewTracker(log)
	hub := sse.NewHub(log, tracker)

	// Mailer: SendGrid when configured, console fallback otherwise.
	var mailer services.Mailer
	sgCfg := sendgrid.ConfigFromEnv(log)
	if sgCfg.APIKey != "" {
		sgClient, err := sendgrid.New(log, sgCfg)
		if err != nil {
			log.Fatal("Could not init SendGrid client", "error", err)
		}
		mailer = services.NewSendgridMailer(log, sgClient)
	} else {
		log.Warn("SENDGRID_API_KEY not set, password reset emails go to the log")
		mailer = services.NewConsoleMailer(log)
	}

	// Services
	log.Info("Setting up services...")
	ingestService := services.NewIngestService(log, taxonomyRepo, materialRepo)
	materialService := services.NewMaterialService(log, materialRepo)
	taxonomyService := services.NewTaxonomyService(log, taxonomyRepo)
	userService := services.NewUserService(gdb, log, userRepo, mailer, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second)

	// Handlers
	log.Info("Setting up handlers...")
	materialHandler := handlers.NewMaterialHandler(log, ingestService, materialService, hub, uploadDir)
	taxonomyHandler := handlers.NewTaxonomyHandler(log, taxonomyService)
	userHandler := handlers.NewUserHandler(log, userService)
	presenceHandler := handlers.NewPresenceHandler(log, tracker, hub)
	authMiddleware := middleware.NewAuthMiddleware(log, jwtSecretKey)

	router := server.NewRouter(server.RouterConfig{
		MaterialHandler: materialHandler,
		TaxonomyHandler: taxonomyHandler,
		UserHandler:     userHandler,
		PresenceHandler: presenceHandler,
		AuthMiddleware:  authMiddleware,
	})

	log.Info("Starting HTTP server", "addr", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("HTTP server exited", "error", err)
	}
}
