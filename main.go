package main

import (
	"fmt"
	"os"

	"assetdesk/cmd"
	"assetdesk/internal/config"
	"assetdesk/internal/container"
	"assetdesk/internal/database"
	"assetdesk/internal/database/migration"
	"assetdesk/internal/logger"
	"assetdesk/internal/middleware"
	"assetdesk/internal/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env file, but don't overwrite system environment variables.
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: No .env file found, falling back to system environment variables.")
	}

	// Subcommands (migrate) run and exit before the server starts.
	if len(os.Args) > 1 {
		cmd.Execute()
		return
	}

	log := logger.NewLogger()
	defer log.Sync()
	zap.ReplaceGlobals(log)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	if err := migration.Migrate(cfg.DatabaseURL, fmt.Sprintf("file://%s", cfg.MigrationsDir), log); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to the database", zap.Error(err))
	}
	defer db.Close()

	log.Info("Connected to the database")

	appContainer := container.NewAppContainer(db)

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.TimeoutMiddleware(cfg.RequestTimeout()))

	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	routes.RegisterUtilityRoutes(router)
	routes.RegisterAPIRoutes(router, appContainer)

	log.Info("Starting server", zap.String("addr", cfg.ListenAddr))
	if err := router.Run(cfg.ListenAddr); err != nil {
		log.Fatal("Server stopped", zap.Error(err))
	}
}
