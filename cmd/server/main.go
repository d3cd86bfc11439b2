package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"fintrack/internal/api"
	"fintrack/internal/config"
	"fintrack/internal/rates"
	"fintrack/internal/repo"
	"fintrack/internal/service"
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig()

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Repositories, unit of work and the external rate provider
	repos := repo.New(db)
	uow := repo.NewUnitOfWork(db)
	rateClient := rates.NewClient(cfg.RatesBaseURL, nil)
	reportCache := service.NewReportCache(redisClient)

	// Application services
	deps := api.Deps{
		Auth:       service.NewAuthService(repos, uow, cfg.JWTSecret),
		Users:      service.NewUserService(repos, uow),
		Wallets:    service.NewWalletService(repos, uow, reportCache),
		Types:      service.NewOperationTypeService(repos, uow),
		Operations: service.NewOperationService(repos, uow, rateClient, reportCache),
		Currencies: service.NewCurrencyService(repos, uow, rateClient, redisClient),
		Reports:    service.NewReportService(repos, redisClient),
		JWTSecret:  cfg.JWTSecret,
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default()
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}
	api.RegisterRoutes(r, deps)

	log.Println("Server running on " + cfg.AppPort)
	r.Run(":" + cfg.AppPort)
}
