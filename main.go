package main

import (
	"context"
	"log"

	"federation-backend/config"
	"federation-backend/controllers"
	"federation-backend/database"
	"federation-backend/middleware"
	"federation-backend/models"
	"federation-backend/pkg/logger"
	"federation-backend/repository"
	"federation-backend/routes"
	"federation-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; system environment wins
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, using system environment variables")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("[Federation] Failed to load config:", err)
	}

	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	if err := database.Connect(cfg); err != nil {
		log.Fatal("[Federation] Failed to connect to DB:", err)
	}

	if err := database.DB.AutoMigrate(
		&models.Club{},
		&models.Season{},
		&models.Athlete{},
		&models.ClubManager{},
		&models.InsurancePayment{},
	); err != nil {
		log.Fatal("[Federation] Failed to migrate models:", err)
	}

	redisClient := database.NewRedisClient(cfg.RedisURL)

	publisher, err := services.NewSNSPublisher(context.Background())
	if err != nil {
		log.Fatal("[Federation] Failed to initialize SNS publisher:", err)
	}

	stripeSvc := services.NewStripeService(cfg.StripeSecretKey, cfg.StripeWebhookKey, cfg.AppBaseURL)
	paymentRepo := repository.NewGormInsurancePaymentRepo(database.DB)
	insuranceSvc := services.NewInsuranceService(
		stripeSvc,
		paymentRepo,
		services.NewRedisStatusCache(redisClient),
		publisher,
		cfg.PaymentTopicARN,
		logger.Log,
	)
	tokens := services.NewTokenService(cfg.JWTSecret)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())
	r.Use(middleware.SecurityHeaders())

	ctl := routes.Controllers{
		Payments: &controllers.PaymentController{
			Stripe:    stripeSvc,
			Insurance: insuranceSvc,
			Logger:    logger.Log,
		},
		Auth: &controllers.AuthController{
			Managers:        repository.NewGormManagerRepo(database.DB),
			Tokens:          tokens,
			Passwords:       services.NewPasswordValidator(),
			AdminAccessCode: cfg.AdminAccessCode,
			Logger:          logger.Log,
		},
		Athletes: &controllers.AthleteController{
			Repo:   repository.NewGormAthleteRepo(database.DB),
			Logger: logger.Log,
		},
		Clubs: &controllers.ClubController{
			Repo:     repository.NewGormClubRepo(database.DB),
			Managers: repository.NewGormManagerRepo(database.DB),
			Logger:   logger.Log,
		},
		Seasons: &controllers.SeasonController{
			Repo:   repository.NewGormSeasonRepo(database.DB),
			Logger: logger.Log,
		},
	}
	routes.Register(r, ctl, tokens)

	log.Println("[Federation] Running on port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("[Federation] Server failed:", err)
	}
}
