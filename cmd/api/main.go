package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"weddingstudio/internal/config"
	"weddingstudio/internal/database"
	"weddingstudio/internal/middleware"
	"weddingstudio/internal/modules/auth"
	"weddingstudio/internal/modules/booking"
	"weddingstudio/internal/modules/pendingedit"
	"weddingstudio/internal/modules/referral"
	"weddingstudio/internal/modules/reservation"
	"weddingstudio/internal/modules/review"
	"weddingstudio/internal/notification"
	"weddingstudio/internal/pkg/cipher"
	jwtsvc "weddingstudio/internal/pkg/jwt"
	"weddingstudio/internal/pkg/logger"
	"weddingstudio/internal/pkg/validator"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logger.Setup(cfg.AppEnv)

	fieldCipher, err := cipher.New(cfg.FieldCipherKey)
	if err != nil {
		log.Fatal().Err(err).Msg("field cipher init failed")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database connect failed")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("database migrate failed")
	}

	staffJWT := jwtsvc.New(cfg.JWTSecret, cfg.StaffTokenTTL)
	customerJWT := jwtsvc.New(cfg.JWTSecret, cfg.CustomerTokenTTL)

	publisher := notification.NewPublisher(cfg.AMQPURL)
	if publisher == nil {
		log.Info().Msg("AMQP_URL not set, notification dispatch disabled")
	}

	reservationService := reservation.NewService(db, fieldCipher, publisher)
	reservationHandler := reservation.NewHandler(reservationService)

	authService := auth.NewService(db, staffJWT, customerJWT, reservationService)
	authHandler := auth.NewHandler(authService)

	referralService := referral.NewService(db)
	referralHandler := referral.NewHandler(referralService)

	reviewService := review.NewService(db, review.NewChromeScraper(cfg.ChromePath))
	reviewHandler := review.NewHandler(reviewService)

	editService := pendingedit.NewService(db, fieldCipher)
	editHandler := pendingedit.NewHandler(editService)

	bookingService := booking.NewService(db, fieldCipher, publisher)
	bookingHandler := booking.NewHandler(bookingService)

	validator.Register()
	if config.IsProdLike(cfg.AppEnv) {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		reservationHandler.RegisterPublicRoutes(v1)
		referralHandler.RegisterPublicRoutes(v1)

		// customer mypage, token scoped to one reservation
		customerGroup := v1.Group("/")
		customerGroup.Use(middleware.Auth(staffJWT), middleware.CustomerOnly())
		{
			reservationHandler.RegisterCustomerRoutes(customerGroup)
			reviewHandler.RegisterCustomerRoutes(customerGroup)
			editHandler.RegisterCustomerRoutes(customerGroup)
		}

		// staff
		staffGroup := v1.Group("/")
		staffGroup.Use(middleware.Auth(staffJWT), middleware.StaffOnly())
		{
			reservationHandler.RegisterStaffRoutes(staffGroup)
			reviewHandler.RegisterStaffRoutes(staffGroup)
			editHandler.RegisterStaffRoutes(staffGroup)
			bookingHandler.RegisterStaffRoutes(staffGroup)
		}
	}

	log.Info().Str("port", cfg.Port).Str("env", cfg.AppEnv).Msg("starting api server")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
