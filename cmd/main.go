package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"civilregistry/database"
	"civilregistry/docs"
	"civilregistry/internal/cache"
	"civilregistry/internal/config"
	"civilregistry/internal/controllers"
	"civilregistry/internal/events"
	"civilregistry/internal/logger"
	"civilregistry/internal/metrics"
	"civilregistry/internal/middleware"
	"civilregistry/internal/repository"
	"civilregistry/internal/services"
	"civilregistry/internal/storage"
	"civilregistry/internal/utils"
	"civilregistry/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// @title Civil Registry API
// @version 1.0
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.LoadConfig(".env", "../.env")
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	gin.SetMode(cfg.GinMode)

	// Swagger Documentation
	docs.SwaggerInfo.Title = "Civil Registry API"
	docs.SwaggerInfo.Description = "Birth certificates, national ID cards and death records with a review workflow."
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Schemes = []string{"http", "https"}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.ConnectDatabase(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("database unavailable")
	}
	if err := database.MigrateDatabase(db, log); err != nil {
		log.WithError(err).Fatal("failed to run database migrations")
	}
	database.MonitorDBConnections(ctx, db, log)

	m := metrics.New(prometheus.DefaultRegisterer)

	// The stats cache is optional; without Redis every request recomputes.
	var (
		snapshotCache services.SnapshotCache
		invalidator   services.StatsInvalidator
		cacheStatus   controllers.CacheStatus
	)
	if cfg.RedisURL != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.WithError(err).Warn("redis unavailable, stats cache disabled")
		} else {
			statsCache := cache.NewStatsCache(redisClient, cfg.StatsCacheTTL)
			defer statsCache.Close()
			snapshotCache, invalidator, cacheStatus = statsCache, statsCache, statsCache
			log.Info("stats cache enabled")
		}
	}

	var publisher events.Publisher = &events.LogPublisher{Log: log}
	if cfg.RabbitMQURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.RabbitMQURL, cfg.EventsExchange, log)
		if err != nil {
			log.WithError(err).Warn("rabbitmq unavailable, status events will only be logged")
		} else {
			publisher = amqpPublisher
		}
	}
	defer publisher.Close()

	photos, err := storage.NewLocalPhotoStore(cfg.UploadDir)
	if err != nil {
		log.WithError(err).Fatal("upload directory unavailable")
	}

	userRepo := repository.NewUserRepository(db)
	birthRepo := repository.NewBirthRepository(db)
	idCardRepo := repository.NewIDCardRepository(db)
	deathRepo := repository.NewDeathRecordRepository(db)

	tokens := utils.NewTokenIssuer(cfg.JWTSecretKey, cfg.JWTTTL)
	mailer := utils.NewSMTPNotifier(utils.MailConfigFrom(cfg), log)

	userService := services.NewUserService(userRepo, tokens, invalidator, log)
	birthService := services.NewBirthService(birthRepo, invalidator, m, log)
	idCardService := services.NewIDCardService(idCardRepo, photos, invalidator, m, log)
	deathService := services.NewDeathService(deathRepo, invalidator, log)
	statsService := services.NewStatsService(userRepo, birthRepo, idCardRepo, deathRepo, snapshotCache, m, log)

	statusNotifier := controllers.NewStatusNotifier(mailer, publisher, log)
	maxUpload := cfg.MaxUploadBytes()

	authController := controllers.NewAuthController(userService)
	userController := controllers.NewUserController(userService, statsService)
	birthController := controllers.NewBirthController(birthService, statusNotifier, maxUpload)
	idCardController := controllers.NewIDCardController(idCardService, statusNotifier, maxUpload)
	deathController := controllers.NewDeathController(deathService)
	citizenController := controllers.NewCitizenController(birthService, idCardService)
	notificationController := controllers.NewNotificationController(mailer)
	healthController := controllers.NewHealthController(func(ctx context.Context) error {
		return database.Ping(ctx, db)
	}, cacheStatus)

	router := gin.New()
	router.Use(gin.Recovery(), logger.RequestLogger(log))
	router.Use(cors.New(corsConfig(cfg.AllowedOrigins())))
	router.MaxMultipartMemory = maxUpload + 1<<20

	auth := middleware.AuthMiddleware(tokens)
	api := router.Group("/api")
	routes.RegisterAuthRoutes(api, auth, authController)
	routes.RegisterUserRoutes(api, auth, userController)
	routes.RegisterBirthRoutes(api, auth, birthController)
	routes.RegisterIDCardRoutes(api, auth, idCardController)
	routes.RegisterDeathRoutes(api, auth, deathController)
	routes.RegisterCitizenRoutes(api, auth, citizenController)
	routes.RegisterNotificationRoutes(api, auth, notificationController)
	routes.RegisterSystemRoutes(router, healthController, prometheus.DefaultGatherer)
	routes.RegisterUploadRoutes(router, photos.Dir())
	routes.RegisterSwaggerRoutes(router)

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        router,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("Civil Registry API server starting")
		log.Infof("API Documentation: http://localhost:%s/swagger/index.html", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
	statusNotifier.Wait()
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", logger.RequestIDHeader},
		ExposeHeaders: []string{logger.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}
